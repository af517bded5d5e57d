// Package config defines the server configuration structure.
package config

import (
	"errors"
	"net"
	"strconv"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyExposer(&cfg.Exposer); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyExposer(cfg *ExposerSection) error {
	if cfg.Endpoint == "" {
		return errors.New("exposer.endpoint is required")
	}

	host, port, err := net.SplitHostPort(cfg.Endpoint)
	if err != nil {
		return errors.New("exposer.endpoint must be host:port: " + err.Error())
	}
	if host == "" {
		return errors.New("exposer.endpoint must include a host")
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		return errors.New("exposer.endpoint has an invalid port: " + port)
	}

	if cfg.Name == "" {
		return errors.New("exposer.name is required")
	}

	if cfg.RateLimit < 0 {
		return errors.New("exposer.ratelimit must not be negative")
	}

	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}

	switch cfg.Format {
	case "json", "text":
	default:
		return errors.New("log.format must be json or text")
	}

	return nil
}
