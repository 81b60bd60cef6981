package pagetree

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree/internal/store"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/metadata"
	"github.com/agentstation/pagetree/pkg/reconcile"
)

// options holds the client configuration.
type options struct {
	registry         metadata.Registry
	registryName     string
	kv               store.KV
	storeKey         string
	slotFallback     bool
	regionFallback   bool
	allowEmpty       bool
	authorities      reconcile.Authorities
	discoveryTimeout time.Duration
	autoSyncInterval time.Duration
	logger           *zerolog.Logger
}

// Option is a function that configures a Client.
type Option func(*options)

func defaults() *options {
	return &options{
		discoveryTimeout: constants.DiscoveryTimeout,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRegistry configures the live component registry.
func WithRegistry(registry metadata.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithRegistryName names the registry in logs and discovery errors.
func WithRegistryName(name string) Option {
	return func(o *options) {
		o.registryName = name
	}
}

// WithStore configures the key/value store holding the catalog. Without
// one the catalog lives in memory.
func WithStore(kv store.KV) Option {
	return func(o *options) {
		o.kv = kv
	}
}

// WithStoreKey sets the key the catalog is stored under.
func WithStoreKey(key string) Option {
	return func(o *options) {
		o.storeKey = key
	}
}

// WithSlotFallback resolves unknown slots to index 0 instead of failing.
func WithSlotFallback(enabled bool) Option {
	return func(o *options) {
		o.slotFallback = enabled
	}
}

// WithRegionFallback places components of unknown regions at index 0
// instead of failing.
func WithRegionFallback(enabled bool) Option {
	return func(o *options) {
		o.regionFallback = enabled
	}
}

// WithAllowEmptyDiscovery lets an empty registry answer clear the catalog.
func WithAllowEmptyDiscovery(allow bool) Option {
	return func(o *options) {
		o.allowEmpty = allow
	}
}

// WithAuthorities replaces the field ownership rules used by Sync.
func WithAuthorities(authorities reconcile.Authorities) Option {
	return func(o *options) {
		o.authorities = authorities
	}
}

// WithDiscoveryTimeout bounds each registry call.
func WithDiscoveryTimeout(d time.Duration) Option {
	return func(o *options) {
		o.discoveryTimeout = d
	}
}

// WithAutoSync configures how often AutoSyncOn synchronizes the catalog.
func WithAutoSync(interval time.Duration) Option {
	return func(o *options) {
		o.autoSyncInterval = interval
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
