// Package main provides the entry point for metermesh-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yndnr/metermesh-go/internal/exposer"
	"github.com/yndnr/metermesh-go/internal/infra/buildinfo"
	"github.com/yndnr/metermesh-go/internal/infra/confloader"
	"github.com/yndnr/metermesh-go/internal/infra/shutdown"
	"github.com/yndnr/metermesh-go/internal/op"
	"github.com/yndnr/metermesh-go/internal/server/config"
	"github.com/yndnr/metermesh-go/internal/telemetry/logger"
)

const uptimeTick = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("metermesh-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting metermesh-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	// Open the exposer: listener binds here, bind errors are fatal
	handle, err := exposer.Open(cfg.Exposer.Endpoint,
		exposer.WithLogger(log),
		exposer.WithScrapeRateLimit(cfg.Exposer.RateLimit),
	)
	if err != nil {
		return fmt.Errorf("open exposer: %w", err)
	}

	hub := exposer.NewHub()
	if err := hub.Publish(cfg.Exposer.Name, handle); err != nil {
		handle.Close()
		return fmt.Errorf("publish exposer: %w", err)
	}

	stopUptime, err := bindProcessMetrics(hub, cfg.Exposer.Name)
	if err != nil {
		handle.Close()
		return fmt.Errorf("bind process metrics: %w", err)
	}

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing exposer", "id", handle.ID())
		return handle.Close()
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		stopUptime()
		return nil
	})

	// Watch the config file for log level changes
	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("exposer published",
		"name", cfg.Exposer.Name,
		"addr", handle.Addr(),
		"id", handle.ID())

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// bindProcessMetrics publishes the server's own build_info and uptime
// metrics on the exposer. Returns a stop func for the uptime ticker.
func bindProcessMetrics(hub *exposer.Hub, exposerName string) (func(), error) {
	info := op.NewGauge(op.Config{
		Name:    "metermesh_build_info",
		Label:   "version",
		Value:   buildinfo.Version,
		Exposer: exposerName,
	})
	if err := info.Bind(hub); err != nil {
		return nil, err
	}
	if err := info.Invoke(1); err != nil {
		return nil, err
	}

	uptime := op.NewGauge(op.Config{
		Name:    "metermesh_uptime_seconds",
		Exposer: exposerName,
	})
	if err := uptime.Bind(hub); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := uptime.Invoke(0); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(uptimeTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				uptime.Invoke(time.Since(start).Seconds())
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// startConfigWatcher reloads the log level when the config file changes.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}

	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})

	watcher.StartAsync()
	return watcher, nil
}
