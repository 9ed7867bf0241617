package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vk/scrapec/internal/config"
	"github.com/vk/scrapec/internal/ctxlog"
	"github.com/vk/scrapec/internal/hcl"
	"github.com/vk/scrapec/internal/registry"
	"github.com/vk/scrapec/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	runID    string
}

// DefaultLoaders returns the rules loaders for every supported file format.
func DefaultLoaders() []config.RulesLoader {
	return []config.RulesLoader{hcl.NewLoader(), yamlconf.NewLoader()}
}

// NewApp is the constructor for the main application. It configures an
// isolated logger writing to outW, loads the rules and builds the registry.
// With no loaders given, DefaultLoaders is used.
func NewApp(outW io.Writer, cfg *Config, loaders ...config.RulesLoader) (*App, error) {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = DefaultLoaders()
	}

	rules, err := loadRules(ctx, cfg.RulesPath, loaders)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	logger.Debug("Rules loaded.", "opcodes", len(rules.Supported), "entry", rules.EntryOpcode)

	reg, err := registry.New(rules)
	if err != nil {
		return nil, err
	}
	logger.Debug("Registry created.", "opcodes", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		runID:    runID,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// RunID returns the identifier attached to every log line of this App.
func (a *App) RunID() string {
	return a.runID
}
