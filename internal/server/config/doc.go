// Package config defines the configuration structure for
// metermesh-server.
//
// Configuration is split into:
//
//   - spec.go: Structure definitions with koanf tags
//   - default.go: Default values
//   - verify.go: Validation logic
//
// Values are loaded through internal/infra/confloader with priority
// Env > File > Default.
package config
