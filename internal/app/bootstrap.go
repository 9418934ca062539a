package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"browsershell/internal/config"
	"browsershell/pkg/logging"
)

// Application is the main application structure that bootstraps and runs
// the shell.
type Application struct {
	config   *Config
	settings config.Config
	services *Services
}

// NewApplication loads the configuration and wires the services. Progress
// is logged to stderr until a mode takes over the output.
func NewApplication(ctx context.Context, cfg *Config) (*Application, error) {
	return newApplication(ctx, cfg, os.Stderr)
}

func newApplication(ctx context.Context, cfg *Config, logOut io.Writer) (*Application, error) {
	logging.InitForCLI(logLevel(cfg, ""), logOut)

	settings, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	settings = cfg.applyOverrides(settings)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logging.InitForCLI(logLevel(cfg, settings.LogLevel), logOut)

	services, err := InitializeServices(ctx, settings, logging.NewSink())
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		settings: settings,
		services: services,
	}, nil
}

func logLevel(cfg *Config, configured string) logging.LogLevel {
	if cfg.Debug {
		return logging.LevelDebug
	}
	if configured == "" {
		return logging.LevelInfo
	}
	return logging.ParseLevel(configured)
}

// Run executes the application in the appropriate mode and releases the
// services when it ends.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.services.Close(); err != nil {
			logging.Warn("Bootstrap", "Shutdown: %v", err)
		}
	}()

	if a.config.NoTUI {
		return runHeadlessMode(ctx, a)
	}
	return runTUIMode(ctx, a)
}

// start opens the first tab. Called by the modes once logging is switched.
func (a *Application) start() error {
	if err := a.services.Shell.Start(a.config.startURL(a.settings)); err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	return nil
}

func (a *Application) level() logging.LogLevel {
	return logLevel(a.config, a.settings.LogLevel)
}
