// Package logging defines the minimal structured-logging surface used
// across the client. The concrete implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are
// alternating key–value pairs:
//
//	log.Info(ctx, "deck saved", "deck_id", id, "cards", n)
type Logger interface {
	// Debug logs details useful only when troubleshooting.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs a routine event.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs an unusual but non-fatal condition.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key–value pairs.
	With(args ...any) Logger
}
