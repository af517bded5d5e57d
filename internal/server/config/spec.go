// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for metermesh-server.
type ServerConfig struct {
	Exposer ExposerSection `koanf:"exposer"`
	Log     LogSection     `koanf:"log"`
}

// ExposerSection configures the exposition endpoint.
type ExposerSection struct {
	// Endpoint is the host:port the exposer binds.
	Endpoint string `koanf:"endpoint"`

	// Name is the publication name the handle is stored under.
	Name string `koanf:"name"`

	// RateLimit is the per-IP scrape limit in requests per second.
	// Zero disables limiting.
	RateLimit int `koanf:"ratelimit"`
}

// LogSection configures logging behavior.
type LogSection struct {
	// Level is the log level (debug, info, warn, error).
	Level string `koanf:"level"`

	// Format is the log output format (json, text).
	Format string `koanf:"format"`
}
