package context

import (
	"context"
)

// Current describes the request a piece of work is running for.
type Current struct {
	RequestID string
	ClientIP  string
	Method    string
	Path      string
	UserAgent string
}

type contextKey string

const currentKey contextKey = "current"

func WithCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	if ctx == nil {
		return nil, false
	}

	current, ok := ctx.Value(currentKey).(*Current)
	return current, ok && current != nil
}

// RequestID returns "" outside a request.
func RequestID(ctx context.Context) string {
	if current, ok := FromContext(ctx); ok {
		return current.RequestID
	}
	return ""
}
