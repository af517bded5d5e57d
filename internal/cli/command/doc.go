// Package command provides CLI command definitions for MeterMesh.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command and global flags
//   - scrape.go: Exposition scraping command
//   - version.go: Build information command
//
// Commands follow a consistent pattern of parsing flags, calling the
// exposition endpoint over HTTP, and printing the result.
package command
