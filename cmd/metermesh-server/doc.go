// Package main provides the entry point for metermesh-server.
//
// The server is a standalone exposition host that provides:
//
//   - A Prometheus exposition endpoint on GET /metrics
//   - Built-in process metrics (build_info, uptime)
//   - Hot reload of the log level on config file changes
//
// Usage:
//
//	metermesh-server [flags]
//	metermesh-server --config /path/to/config.yaml
//
// The server loads configuration, opens the exposer, publishes it on
// the hub, and serves until a termination signal arrives.
package main
