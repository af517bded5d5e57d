// Package shutdown provides graceful shutdown for MeterMesh.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup hook registration, executed in reverse order
//   - Programmatic shutdown for tests and embedding
package shutdown
