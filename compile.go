package pagetree

import (
	"context"

	"github.com/agentstation/pagetree/pkg/flatten"
	"github.com/agentstation/pagetree/pkg/logging"
	"github.com/agentstation/pagetree/pkg/nodepath"
	"github.com/agentstation/pagetree/pkg/regions"
	"github.com/agentstation/pagetree/pkg/slots"
)

// Compiler turns authored documents into flat ADD operations.
type Compiler interface {
	// Compile compiles a component document (YAML or JSON).
	Compile(ctx context.Context, data []byte) (*flatten.Result, error)

	// CompileRegions compiles a region-keyed document against a page
	// layout. A non-empty ref places every region's components below it.
	CompileRegions(ctx context.Context, data, layout []byte, ref nodepath.Path) (*flatten.Result, error)

	// Regions lists the regions of a page layout.
	Regions(layout []byte, descriptions map[string]string) ([]regions.Region, error)
}

// Compile-time interface check to ensure proper implementation.
var _ Compiler = (*client)(nil)

// Compile compiles a component document. Slot positions come from a fresh
// discovery, never from the cached catalog.
func (c *client) Compile(ctx context.Context, data []byte) (*flatten.Result, error) {
	doc, err := flatten.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(c.context(ctx), "compile")
	return c.flattener(ctx).Compile(doc)
}

// CompileRegions compiles a region-keyed document.
func (c *client) CompileRegions(ctx context.Context, data, layout []byte, ref nodepath.Path) (*flatten.Result, error) {
	idx, err := regions.ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	doc, err := flatten.ParseRegionDocument(data)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithOperation(c.context(ctx), "compile_regions")
	return c.flattener(ctx).CompileRegions(doc, idx, ref)
}

// Regions lists the regions of a page layout in index order.
func (c *client) Regions(layout []byte, descriptions map[string]string) ([]regions.Region, error) {
	idx, err := regions.ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	return regions.Available(idx, descriptions), nil
}

// flattener builds a flattener over a fresh discovery.
func (c *client) flattener(ctx context.Context) *flatten.Flattener {
	logger := logging.FromContext(ctx)
	d := c.catalog.Discover(ctx)
	if !d.OK() {
		logger.Warn().
			Str("status", string(d.Status)).
			Msg("No live component types; slotted components will not resolve")
	}
	resolver := slots.NewResolver(d, slots.WithFallback(c.options.slotFallback))
	return flatten.New(resolver,
		flatten.WithRegionFallback(c.options.regionFallback),
		flatten.WithLogger(logger),
	)
}
