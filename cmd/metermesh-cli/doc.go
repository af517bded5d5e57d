// Package main provides the entry point for metermesh-cli.
//
// The CLI tool provides command-line access to MeterMesh exposition
// endpoints:
//
//   - Scraping the exposition text (optionally filtered by prefix)
//   - Printing build information
//
// Usage:
//
//	metermesh-cli [command] [flags]
//	metermesh-cli --endpoint localhost:9090 scrape
//	metermesh-cli scrape --filter jobs_
package main
