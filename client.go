package pagetree

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree/internal/store"
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/logging"
	"github.com/agentstation/pagetree/pkg/metadata"
	"github.com/agentstation/pagetree/pkg/reconcile"
)

// Client compiles component documents and keeps the component catalog in
// sync with the live registry.
type Client interface {
	// Discoverer reads the live registry
	Discoverer

	// Compiler turns authored documents into operations
	Compiler

	// Syncer reconciles the stored catalog with the registry
	Syncer

	// Contexter serves catalog snapshots to authoring tools
	Contexter

	// AutoSyncer provides access to periodic sync controls
	AutoSyncer

	// Hooks provides access to event callback registration
	Hooks

	// Close stops background work and releases the store.
	Close() error
}

// Discoverer reads the live registry.
type Discoverer interface {
	Discover(ctx context.Context) components.Discovery
}

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	logger  *zerolog.Logger

	catalog *metadata.Catalog
	store   *store.Store
	engine  *reconcile.Engine

	// syncMu serializes syncs in this process; the store revision guards
	// against writers elsewhere.
	syncMu sync.Mutex

	// auto sync state
	autoMu     sync.Mutex
	ticker     *time.Ticker
	stopCh     chan struct{}
	syncCancel context.CancelFunc

	hooks *hooks
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	logger := o.logger
	if logger == nil {
		logger = logging.Default()
	}
	kv := o.kv
	if kv == nil {
		kv = store.NewMemory()
	}

	engineOpts := []reconcile.Option{reconcile.WithAllowEmptyDiscovery(o.allowEmpty)}
	if o.authorities != nil {
		engineOpts = append(engineOpts, reconcile.WithAuthorities(o.authorities))
	}

	c := &client{
		options: o,
		logger:  logger,
		catalog: metadata.New(o.registry,
			metadata.WithLogger(logger),
			metadata.WithTimeout(o.discoveryTimeout),
			metadata.WithName(o.registryName),
		),
		store:  store.New(kv, o.storeKey),
		engine: reconcile.New(engineOpts...),
		stopCh: make(chan struct{}),
		hooks:  newHooks(),
	}

	logger.Debug().
		Bool("registry", o.registry != nil).
		Str("store_key", c.store.Key()).
		Bool("slot_fallback", o.slotFallback).
		Msg("Client created")
	return c, nil
}

// Discover reads the live registry. See metadata.Catalog.Discover.
func (c *client) Discover(ctx context.Context) components.Discovery {
	return c.catalog.Discover(c.context(ctx))
}

// context attaches the client logger to ctx unless one is already set.
func (c *client) context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, c.logger)
	}
	return ctx
}

// Close stops auto sync and closes the store.
func (c *client) Close() error {
	if err := c.AutoSyncOff(); err != nil {
		return err
	}
	return c.store.Close()
}
