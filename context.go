package pagetree

import (
	"context"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/logging"
)

// Contexter serves catalog snapshots to authoring tools.
type Contexter interface {
	// Catalog returns a copy of the stored catalog.
	Catalog(ctx context.Context) (catalog.Catalog, error)

	// Context returns the component context: the stored catalog with
	// hidden entries and disabled sources removed, gaps filled from live
	// discovery.
	Context(ctx context.Context) ([]catalog.Entry, error)

	// ComponentContext returns the context entry of one component.
	ComponentContext(ctx context.Context, id string) (catalog.Entry, error)
}

// Compile-time interface check to ensure proper implementation.
var _ Contexter = (*client)(nil)

// Catalog returns the stored catalog. It is a fresh decode, so callers may
// modify it.
func (c *client) Catalog(ctx context.Context) (catalog.Catalog, error) {
	cat, _, err := c.store.Load(c.context(ctx))
	if err != nil {
		return nil, err
	}
	if cat == nil {
		cat = catalog.Catalog{}
	}
	return cat, nil
}

// Context returns the component context.
func (c *client) Context(ctx context.Context) ([]catalog.Entry, error) {
	ctx = logging.WithOperation(c.context(ctx), "context")
	cat, _, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	live := c.catalog.Discover(ctx)
	return catalog.Context(cat, live), nil
}

// ComponentContext returns the context entry of one component, or a
// NotFoundError.
func (c *client) ComponentContext(ctx context.Context, id string) (catalog.Entry, error) {
	entries, err := c.Context(ctx)
	if err != nil {
		return catalog.Entry{}, err
	}
	return catalog.ComponentContext(entries, id)
}
