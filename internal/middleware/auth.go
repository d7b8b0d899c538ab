// Package middleware provides Connect interceptors for authentication,
// logging and metrics.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// GroupIDKey is the context key for the group the caller holds a token for.
const GroupIDKey contextKey = "group_id"

// GetGroupID extracts the authenticated group ID from the context.
// Returns empty string if not found.
func GetGroupID(ctx context.Context) string {
	groupID, _ := ctx.Value(GroupIDKey).(string)
	return groupID
}

// WithGroupID returns a copy of ctx carrying groupID.
func WithGroupID(ctx context.Context, groupID string) context.Context {
	return context.WithValue(ctx, GroupIDKey, groupID)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth returns an interceptor that rejects requests without a valid
// group token and adds the group ID to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithGroupID(ctx, claims.GroupID), req)
		}
	}
}

// OptionalAuth returns an interceptor that adds the group ID to the context
// when a valid token is present, and passes other requests through unchanged.
// Handlers decide which operations need a token.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithGroupID(ctx, claims.GroupID)
				}
			}
			return next(ctx, req)
		}
	}
}
