package middleware

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
)

type probe struct{}

func TestAuthInterceptors(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate("group-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var seen string
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetGroupID(ctx)
		return connect.NewResponse(&probe{}), nil
	}

	tests := []struct {
		name        string
		header      string
		interceptor connect.UnaryInterceptorFunc
		wantGroup   string
		wantCode    connect.Code
	}{
		{name: "required with token", header: "Bearer " + token, interceptor: RequireAuth(jwtManager), wantGroup: "group-1"},
		{name: "required without header", interceptor: RequireAuth(jwtManager), wantCode: connect.CodeUnauthenticated},
		{name: "required with bad scheme", header: "Basic abc", interceptor: RequireAuth(jwtManager), wantCode: connect.CodeUnauthenticated},
		{name: "required with bad token", header: "Bearer nope", interceptor: RequireAuth(jwtManager), wantCode: connect.CodeUnauthenticated},
		{name: "optional with token", header: "Bearer " + token, interceptor: OptionalAuth(jwtManager), wantGroup: "group-1"},
		{name: "optional without header", interceptor: OptionalAuth(jwtManager)},
		{name: "optional with bad token", header: "Bearer nope", interceptor: OptionalAuth(jwtManager)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := connect.NewRequest(&probe{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := tt.interceptor(next)(context.Background(), req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected code %v, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen != tt.wantGroup {
				t.Errorf("group in context = %q, want %q", seen, tt.wantGroup)
			}
		})
	}
}

func TestObserveSettlementNilReceiver(t *testing.T) {
	var m *Metrics
	m.ObserveSettlement(3)
}
