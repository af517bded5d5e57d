// Package buildinfo provides build information for MeterMesh.
//
// This package exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//
// The server publishes these values through its own build_info gauge.
package buildinfo
