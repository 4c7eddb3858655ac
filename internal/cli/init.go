// Package cli provides the bootstrap shared by every muscu command:
// env file, logger, config, catalog, backend and services.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"muscu/internal/backend"
	"muscu/internal/catalog"
	"muscu/internal/config"
	"muscu/internal/events"
	applog "muscu/internal/log"
	"muscu/internal/services"
)

// SetupLogger initializes structured logging at the given level, writing
// to w (stderr when nil). The logger becomes the slog default.
func SetupLogger(level string, w io.Writer) *applog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(level),
		Component: applog.ComponentCLI,
		Output:    w,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App holds everything a command needs. Close releases the backend.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Bus      *events.Bus
	Ledger   *services.Ledger
	Settings *services.SettingsService
	Tracker  *services.Tracker

	backend *backend.BackendResult
}

// Bootstrap opens the configured backend and wires the services on top.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(slog.Default()).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus(cfg.EventBuffer)
	ledger := services.NewLedger(res.Backend, cat, bus)
	settings := services.NewSettingsService(res.Backend, cat, bus)

	slog.DebugContext(ctx, "Application bootstrapped",
		applog.FieldBackend, bcfg.Type.String(),
		"activities", len(cat.Activities()))

	return &App{
		Config:   cfg,
		Catalog:  cat,
		Bus:      bus,
		Ledger:   ledger,
		Settings: settings,
		Tracker:  services.NewTracker(ledger, settings, cat),
		backend:  res,
	}, nil
}

// Close closes the event bus and the backend.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	return a.backend.Close()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM. The
// returned stop func releases the signal handler.
func SignalContext(parent context.Context, logger *applog.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.WarnContext(ctx, "Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
