// Package config defines the server configuration structure.
package config

// Default configuration values.
const (
	// DefaultEndpoint is the default exposition endpoint. MeterMesh
	// standardizes on port 9090.
	DefaultEndpoint = "127.0.0.1:9090"

	// DefaultExposerName is the default publication name.
	DefaultExposerName = "default"

	// DefaultRateLimit disables scrape rate limiting.
	DefaultRateLimit = 0

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Exposer: ExposerSection{
			Endpoint:  DefaultEndpoint,
			Name:      DefaultExposerName,
			RateLimit: DefaultRateLimit,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
