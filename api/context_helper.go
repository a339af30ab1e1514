package api

import (
	"context"
)

type requestIDKey struct{}

// RequestIDHeader carries the request id back to the client
const RequestIDHeader = "X-Request-ID"

// WithRequestID stores a request id on the context
func WithRequestID(parent context.Context, requestID string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id set by RequestLogger, or ""
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
