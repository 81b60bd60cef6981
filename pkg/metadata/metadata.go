// Package metadata normalizes component records from the live registry
// into components.ComponentType values. Three origins are understood:
// declarative schema components, dynamic code components and blocks.
package metadata

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
)

// Registry is the live source of component records. Implementations fetch
// the records; this package only interprets them.
type Registry interface {
	Records(ctx context.Context) ([]Record, error)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(ctx context.Context) ([]Record, error)

// Records implements Registry.
func (f RegistryFunc) Records(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for dropped records.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithTimeout bounds each registry call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Catalog) {
		c.timeout = d
	}
}

// WithName sets the registry name reported in discovery errors.
func WithName(name string) Option {
	return func(c *Catalog) {
		c.name = name
	}
}

// Catalog discovers component types from a registry.
type Catalog struct {
	registry Registry
	logger   *zerolog.Logger
	timeout  time.Duration
	name     string
}

// New creates a Catalog over registry.
func New(registry Registry, opts ...Option) *Catalog {
	c := &Catalog{registry: registry}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover reads the registry and normalizes every record. It never
// returns an error: a registry failure yields a discovery with
// StatusFailed and the cause in Err, and a registry with no usable records
// yields StatusEmpty. Records that cannot be normalized are dropped with a
// warning.
func (c *Catalog) Discover(ctx context.Context) components.Discovery {
	logger := c.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	if c.registry == nil {
		return components.Failed(errors.NewDiscoveryError(c.name, errors.New("no registry configured")))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	records, err := c.registry.Records(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("registry", c.name).Msg("Component discovery failed")
		return components.Failed(errors.NewDiscoveryError(c.name, err))
	}

	d := components.NewDiscovery()
	for _, rec := range records {
		t, err := rec.normalize()
		if err != nil {
			logger.Warn().
				Err(err).
				Str("component_id", rec.ComponentID()).
				Str("source", rec.Kind().String()).
				Msg("Dropping component with unusable metadata")
			continue
		}
		d.Add(rec.SourceLabel(), t)
	}

	logger.Debug().
		Int("records", len(records)).
		Int("components", d.Count()).
		Str("status", string(d.Status)).
		Msg("Component discovery finished")
	return d
}
