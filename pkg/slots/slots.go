// Package slots maps slot names to the ordinal index their component type
// declares. Indices come only from live component metadata, never from the
// cached catalog.
package slots

import (
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
)

// Types looks component types up by id. components.Discovery satisfies it.
type Types interface {
	Lookup(typeID string) (components.ComponentType, bool)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFallback makes unresolved slots resolve to index 0 instead of failing.
func WithFallback(enabled bool) Option {
	return func(r *Resolver) {
		r.fallback = enabled
	}
}

// Resolver resolves slot names against a snapshot of component types.
type Resolver struct {
	types    Types
	fallback bool
}

// NewResolver creates a strict resolver over types.
func NewResolver(types Types, opts ...Option) *Resolver {
	r := &Resolver{types: types}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fallback reports whether unresolved slots fall back to index 0.
func (r *Resolver) Fallback() bool {
	return r.fallback
}

// Resolve returns the zero-based position of slot within typeID's slots.
func (r *Resolver) Resolve(typeID, slot string) (int, error) {
	var t components.ComponentType
	ok := false
	if r.types != nil {
		t, ok = r.types.Lookup(typeID)
	}
	if !ok {
		return r.miss(&errors.UnresolvedSlotError{TypeID: typeID, Slot: slot, UnknownType: true})
	}
	if i := t.SlotIndex(slot); i >= 0 {
		return i, nil
	}
	return r.miss(&errors.UnresolvedSlotError{TypeID: typeID, Slot: slot})
}

func (r *Resolver) miss(err *errors.UnresolvedSlotError) (int, error) {
	if !r.fallback {
		return 0, err
	}
	logging.Warn().
		Str("component_id", err.TypeID).
		Str("slot", err.Slot).
		Msg("Slot not resolved, using index 0")
	return 0, nil
}
