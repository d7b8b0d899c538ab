package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// groupScoped is implemented by request messages addressed to one group.
type groupScoped interface {
	GetGroupID() string
}

// transferReporter is implemented by response messages carrying a settlement.
type transferReporter interface {
	TransferCount() int
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, duration and outcome. Calls addressed to a group carry
// the requested group and whether the caller's token grants it; responses
// that carry a settlement add its transfer count.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			attrs := []any{"procedure", req.Spec().Procedure}
			if msg, ok := req.Any().(groupScoped); ok {
				groupID := msg.GetGroupID()
				attrs = append(attrs, "group_id", groupID, "authorized", groupID != "" && GetGroupID(ctx) == groupID)
			}

			resp, err := next(ctx, req)
			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())

			var connectErr *connect.Error
			switch {
			case err == nil:
				if msg, ok := resp.Any().(transferReporter); ok {
					attrs = append(attrs, "transfers", msg.TransferCount())
				}
				slog.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal && connectErr.Code() != connect.CodeUnknown:
				slog.Warn("RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				slog.Error("RPC failed", append(attrs, "code", connect.CodeOf(err), "error", err)...)
			}

			return resp, err
		}
	}
}
