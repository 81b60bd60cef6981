// Package app wires the pagetree CLI: configuration, logging, the lazily
// created pagetree client and the cobra command tree.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree"
	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/registry"
	"github.com/agentstation/pagetree/internal/store"
	"github.com/agentstation/pagetree/internal/transport"
	"github.com/agentstation/pagetree/pkg/errors"
)

// App represents the pagetree application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// client is created on first use
	mu     sync.RWMutex
	client pagetree.Client
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App with configuration loaded from the default
// sources. Options run after loading and may replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string { return a.config.Format }

// Layout reads the configured page layout file. No layout configured
// yields nil.
func (a *App) Layout() ([]byte, error) {
	if a.config.Layout == "" {
		return nil, nil
	}
	data, err := os.ReadFile(a.config.Layout)
	if err != nil {
		return nil, errors.WrapIO("read", a.config.Layout, err)
	}
	return data, nil
}

// RegionDescriptions returns the configured region descriptions.
func (a *App) RegionDescriptions() map[string]string { return a.config.Regions }

// ServerSettings returns the serve command defaults from the configuration.
func (a *App) ServerSettings() application.ServerSettings {
	return application.ServerSettings{
		Listen:      a.config.Listen,
		APIKey:      a.config.APIKey,
		CORSOrigins: a.config.CORSOrigins,
		AutoSync:    a.config.AutoSyncInterval,
	}
}

// Client returns the pagetree client, creating it lazily. Safe for
// concurrent use; only one client is ever created.
func (a *App) Client() (pagetree.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.buildClientOptions(context.Background())
	if err != nil {
		return nil, err
	}
	c, err := pagetree.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = c
	return c, nil
}

// Shutdown stops background work and closes the catalog store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions(ctx context.Context) ([]pagetree.Option, error) {
	kv, err := store.Open(ctx, a.config.Store)
	if err != nil {
		return nil, err
	}

	opts := []pagetree.Option{
		pagetree.WithStore(kv),
		pagetree.WithStoreKey(a.config.StoreKey),
		pagetree.WithSlotFallback(a.config.SlotFallback),
		pagetree.WithRegionFallback(a.config.RegionFallback),
		pagetree.WithAllowEmptyDiscovery(a.config.AllowEmptyDiscovery),
		pagetree.WithLogger(a.logger),
	}
	if a.config.Registry != "" {
		opts = append(opts,
			pagetree.WithRegistry(registry.Open(a.config.Registry,
				transport.ForToken(a.config.RegistryToken, a.config.RegistryTokenHeader))),
			pagetree.WithRegistryName(a.config.Registry),
		)
	}
	if a.config.DiscoveryTimeout > 0 {
		opts = append(opts, pagetree.WithDiscoveryTimeout(a.config.DiscoveryTimeout))
	}
	if a.config.AutoSyncInterval > 0 {
		opts = append(opts, pagetree.WithAutoSync(a.config.AutoSyncInterval))
	}
	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a ready-made client, typically in tests.
func WithClient(c pagetree.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
