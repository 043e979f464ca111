// Package requestctx carries the per-request correlation id through
// context.Context without any HTTP dependency, so domain code can log it.
package requestctx

import "context"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the id attached by WithRequestID, or "" outside a
// request.
func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey{}).(string); ok {
		return value
	}
	return ""
}
