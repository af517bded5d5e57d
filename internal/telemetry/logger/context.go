// Package logger provides structured logging for MeterMesh.
package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "metermesh.logger"
	// scrapeIDKey is the context key for the scrape request ID.
	scrapeIDKey contextKey = "metermesh.scrape_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithScrapeID adds a scrape request ID to the context.
func WithScrapeID(ctx context.Context, scrapeID string) context.Context {
	return context.WithValue(ctx, scrapeIDKey, scrapeID)
}

// ScrapeIDFromContext extracts the scrape request ID from context.
func ScrapeIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(scrapeIDKey).(string); ok {
		return id
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the scrape request ID from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if scrapeID := ScrapeIDFromContext(ctx); scrapeID != "" {
		l = l.With("scrape_id", scrapeID)
	}

	return l
}
