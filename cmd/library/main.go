// Package main is the entry point for the library registry demo.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/go-library-registry/internal/app"
	"github.com/jsamuelsen/go-library-registry/internal/platform/config"
	"github.com/jsamuelsen/go-library-registry/internal/platform/logging"
	"github.com/jsamuelsen/go-library-registry/internal/platform/telemetry"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the registry and plays the demonstration. Console output goes
// to stdout, diagnostics to stderr.
func run(ctx context.Context, stdout, stderr io.Writer) error {
	// 1. Determine profile from environment
	profile := os.Getenv(config.EnvironmentVar)
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, stderr)
	logging.SetDefault(logger)

	ctx = logging.WithRunID(logging.WithContext(ctx, logger), uuid.NewString())

	logging.FromContext(ctx).InfoContext(ctx, "starting library demo",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled); metrics are exposed on a
	// local Prometheus registry when enabled
	telCfg := &telemetry.Config{
		Enabled:          cfg.Telemetry.Enabled,
		Endpoint:         cfg.Telemetry.Endpoint,
		ServiceName:      cfg.Telemetry.ServiceName,
		Version:          cfg.App.Version,
		Environment:      cfg.App.Environment,
		SamplingRate:     cfg.Telemetry.SamplingRate,
		MetricsNamespace: cfg.Metrics.Namespace,
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		telCfg.Registerer = registry
	}

	telProvider, err := telemetry.New(ctx, telCfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create registry instruments
	metrics, err := app.NewMetrics(telProvider.MeterProvider().Meter(app.MeterName))
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	// 6. Create the registry
	library := app.NewLibrary(app.LibraryConfig{
		Console:        stdout,
		Logger:         logger,
		TracerProvider: telProvider.TracerProvider(),
		Metrics:        metrics,
	})

	// 7. Run the demonstration
	if err := runDemo(ctx, library, stdout); err != nil {
		return fmt.Errorf("running demo: %w", err)
	}

	if registry != nil {
		if err := logMetrics(ctx, registry); err != nil {
			return fmt.Errorf("reporting metrics: %w", err)
		}
	}

	logging.FromContext(ctx).InfoContext(ctx, "library demo finished")

	return nil
}
