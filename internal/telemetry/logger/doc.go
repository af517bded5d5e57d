// Package logger provides structured logging for MeterMesh.
//
// The package wraps log/slog with a small Logger interface so that
// components can be handed an isolated logger in tests. A process-wide
// default logger backs the package-level convenience functions, and
// the log level can be adjusted at runtime through SetLevel (used by
// the config hot-reload path).
package logger
