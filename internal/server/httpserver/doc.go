// Package httpserver provides the HTTP server fronting the MeterMesh
// exposition endpoint.
//
// The server is a thin wrapper around net/http. It serves a pre-bound
// listener (the exposer binds the endpoint itself so bind failures
// surface synchronously) and composes a middleware chain for the
// scrape path:
//
//   - Recover: panic isolation
//   - ScrapeID: per-request ID for log correlation
//   - RateLimit: per-IP token bucket on the scrape path
//   - Logging: request logging at debug level
package httpserver
