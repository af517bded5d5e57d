// Package connection provides connection management for MeterMesh CLI.
//
// This package manages HTTP connections to exposition endpoints:
//
//   - http.go: HTTP client for scraping exposition text
//
// Features:
//
//   - Scheme normalization (bare host:port becomes http://)
//   - Request timeouts
//   - Exposition body retrieval with status handling
package connection
