package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/hcl"
	"github.com/vk/techgridgo/internal/registry"
	"github.com/vk/techgridgo/internal/resolver"
	"github.com/vk/techgridgo/internal/yaml"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: a fully loaded registry and a resolver bound to it.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	resolver *resolver.Resolver
}

// defaultLoaders returns the format loaders enabled out of the box.
func defaultLoaders() []config.Loader {
	return []config.Loader{hcl.NewLoader(), yaml.NewLoader()}
}

// NewApp is the constructor for the main application. It loads the base
// library and optional scenario overlay through every loader, validates
// the resulting registry, and builds the resolver. Any configuration error
// at this stage is fatal and panics; cmd/cli recovers it into a clean exit.
func NewApp(outW, logW io.Writer, appConfig *Config, loaders ...config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = defaultLoaders()
	}

	reg := registry.New()
	if err := addLayer(ctx, reg, "library", appConfig.LibraryPath, loaders); err != nil {
		panic(fmt.Errorf("failed to load library: %w", err))
	}
	if appConfig.ScenarioPath != "" {
		if err := addLayer(ctx, reg, "scenario", appConfig.ScenarioPath, loaders); err != nil {
			panic(fmt.Errorf("failed to load scenario: %w", err))
		}
	}
	logger.Debug("All layers loaded into registry.", "techs", reg.Len())

	res, err := resolver.New(ctx, reg)
	if err != nil {
		// Structural config errors (missing defaults, bad parents, cycles)
		// cannot be recovered by retrying, so they are fatal at startup.
		panic(fmt.Errorf("invalid tech library: %w", err))
	}
	logger.Debug("Registry validated and inheritance forest built.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		resolver: res,
	}
}

// addLayer runs every loader over one path and merges the combined
// definitions into the registry as a single layer. A tech defined twice
// under the same path, even across formats, is a duplicate.
func addLayer(ctx context.Context, reg *registry.Registry, layer, path string, loaders []config.Loader) error {
	combined := &config.Model{}
	for _, loader := range loaders {
		model, err := loader.Load(ctx, path)
		if err != nil {
			return err
		}
		combined.Techs = append(combined.Techs, model.Techs...)
	}
	return reg.AddLayer(ctx, layer, combined)
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Resolver returns the application's resolver. This is primarily for testing.
func (a *App) Resolver() *resolver.Resolver {
	return a.resolver
}
