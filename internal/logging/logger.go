// Package logging defines the small structured-logging interface used across
// the client. The concrete implementation wraps log/slog; stores and the API
// client only ever see the interface.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key/value pairs, e.g.:
//
//	log.Warn(ctx, "fetch failed", "resource", "cookbooks", "page", 2)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
