package logger

import "context"

type contextKey string

const requestIDKey contextKey = "libros.request_id"

// WithRequestID returns ctx carrying the gateway request ID. Loggers
// bound to the context with WithContext add it as "request_id".
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
