package service

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec carries plain Go message structs over Connect. It replaces the
// default protojson codec registered under the same name, so clients send
// application/json.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

// WithJSON is the codec option every handler and client in this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
