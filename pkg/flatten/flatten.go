package flatten

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
	"github.com/agentstation/pagetree/pkg/nodepath"
	"github.com/agentstation/pagetree/pkg/regions"
)

// SlotResolver maps a slot name of a component type to its ordinal index.
type SlotResolver interface {
	Resolve(typeID, slot string) (int, error)
}

// Operation adds one component at a node path.
type Operation struct {
	ID          string         `json:"id" yaml:"id"`
	NodePath    nodepath.Path  `json:"nodePath" yaml:"nodePath"`
	FieldValues map[string]any `json:"fieldValues" yaml:"fieldValues"`
}

// Batch is a group of operations of the same kind.
type Batch struct {
	Operation  string      `json:"operation" yaml:"operation"`
	Components []Operation `json:"components" yaml:"components"`
}

// Result is the compiled output handed to the renderer.
type Result struct {
	Operations []Batch `json:"operations" yaml:"operations"`
	Message    string  `json:"message" yaml:"message"`
}

// NewResult wraps operations in a single ADD batch.
func NewResult(ops []Operation, message string) *Result {
	if ops == nil {
		ops = []Operation{}
	}
	if message == "" {
		message = constants.DefaultMessage
	}
	return &Result{
		Operations: []Batch{{Operation: constants.OperationAdd, Components: ops}},
		Message:    message,
	}
}

// Components returns every operation of the result in order.
func (r *Result) Components() []Operation {
	var out []Operation
	for _, b := range r.Operations {
		out = append(out, b.Components...)
	}
	return out
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithRegionFallback places components of unknown regions at index 0
// instead of failing.
func WithRegionFallback(enabled bool) Option {
	return func(f *Flattener) {
		f.regionFallback = enabled
	}
}

// WithLogger sets the logger used for skipped input.
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *Flattener) {
		f.logger = logger
	}
}

// Flattener turns node trees into operations.
type Flattener struct {
	slots          SlotResolver
	regionFallback bool
	logger         *zerolog.Logger
}

// New creates a Flattener that resolves slot indices with slots.
func New(slots SlotResolver, opts ...Option) *Flattener {
	f := &Flattener{slots: slots, logger: logging.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten places nodes relative to ref and returns one operation per node,
// parents before their children, in input order.
func (f *Flattener) Flatten(nodes []Node, ref nodepath.Path, placement nodepath.Placement) ([]Operation, error) {
	paths, err := nodepath.Allocate(ref, placement, len(nodes))
	if err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, len(nodes))
	for i, node := range nodes {
		if ops, err = f.walk(ops, node, paths[i]); err != nil {
			return nil, err
		}
	}
	return ops, nil
}

// Compile flattens an authored document into a renderer result.
func (f *Flattener) Compile(doc *Document) (*Result, error) {
	if doc == nil {
		return NewResult(nil, ""), nil
	}
	ops, err := f.Flatten(doc.Components, doc.ReferenceNodePath, doc.Placement)
	if err != nil {
		return nil, err
	}
	return NewResult(ops, doc.Message), nil
}

// FlattenRegions compiles a region-keyed document. With a reference path
// every region's components are placed below it as one run, in region
// order. Otherwise each region starts at its base index from idx and its
// components are addressed [regionIndex, i].
func (f *Flattener) FlattenRegions(doc *RegionDocument, idx regions.Index, ref nodepath.Path) ([]Operation, error) {
	if doc == nil {
		return []Operation{}, nil
	}

	if len(ref) > 0 {
		var nodes []Node
		for _, region := range doc.Regions {
			nodes = append(nodes, region.Components...)
		}
		return f.Flatten(nodes, ref, nodepath.Below)
	}

	ops := []Operation{}
	for _, region := range doc.Regions {
		base, err := idx.Lookup(region.Name)
		if err != nil {
			if !f.regionFallback {
				return nil, err
			}
			f.logger.Warn().Str("region", region.Name).Msg("Region not in layout, using index 0")
		}
		for i, node := range region.Components {
			if ops, err = f.walk(ops, node, nodepath.Path{base, i}); err != nil {
				return nil, err
			}
		}
	}
	return ops, nil
}

// CompileRegions flattens a region-keyed document into a renderer result.
func (f *Flattener) CompileRegions(doc *RegionDocument, idx regions.Index, ref nodepath.Path) (*Result, error) {
	ops, err := f.FlattenRegions(doc, idx, ref)
	if err != nil {
		return nil, err
	}
	return NewResult(ops, ""), nil
}

// walk appends the operation for node at path and recurses into its slots.
func (f *Flattener) walk(ops []Operation, node Node, path nodepath.Path) ([]Operation, error) {
	props := node.Props
	if props == nil {
		props = map[string]any{}
	}
	ops = append(ops, Operation{ID: node.TypeID, NodePath: path, FieldValues: props})

	for _, slot := range node.Slots {
		if len(slot.Children) == 0 {
			f.logger.Debug().
				Str("component_id", node.TypeID).
				Str("slot", slot.Name).
				Msg("Skipping empty slot")
			continue
		}
		if f.slots == nil {
			return nil, &errors.UnresolvedSlotError{TypeID: node.TypeID, Slot: slot.Name, UnknownType: true}
		}
		slotIndex, err := f.slots.Resolve(node.TypeID, slot.Name)
		if err != nil {
			return nil, err
		}
		for j, child := range slot.Children {
			if ops, err = f.walk(ops, child, path.Child(slotIndex, j)); err != nil {
				return nil, err
			}
		}
	}
	return ops, nil
}
