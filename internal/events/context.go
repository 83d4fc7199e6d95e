package events

import "context"

type contextKey int

const (
	loggerKey contextKey = iota
	accountKey
)

var defaultLogger = Discard()

// FromContext extracts the logger from ctx, falling back to a logger
// that discards everything.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// WithLogger adds a logger to ctx.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithAccount tags ctx and its logger with the account name being
// operated on.
func WithAccount(ctx context.Context, name string) context.Context {
	logger := FromContext(ctx).WithField("account", name)
	ctx = context.WithValue(ctx, accountKey, name)
	return WithLogger(ctx, logger)
}

// GetAccount retrieves the account name from ctx.
func GetAccount(ctx context.Context) string {
	if name, ok := ctx.Value(accountKey).(string); ok {
		return name
	}
	return ""
}
