// Package reqctx carries per-request values (request ID, operator session)
// through context.Context so loggers and handlers can read them.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

type operatorKey struct{}

// NewRequestID generates a random UUID v4 request ID.
func NewRequestID() string {
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns "" if absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithOperator records whether the request carries a valid admin session.
func WithOperator(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, operatorKey{}, ok)
}

func IsOperator(ctx context.Context) bool {
	ok, _ := ctx.Value(operatorKey{}).(bool)
	return ok
}
