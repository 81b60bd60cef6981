package pagetree

import (
	"sync"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/differ"
)

// Hook function types for catalog entry events
type (
	// EntryAddedHook is called when a component entry is added to the catalog
	EntryAddedHook func(kind components.SourceKind, entry catalog.Entry)

	// EntryUpdatedHook is called when a component entry is updated in the catalog
	EntryUpdatedHook func(kind components.SourceKind, old, updated catalog.Entry)

	// EntryRemovedHook is called when a component entry is removed from the catalog
	EntryRemovedHook func(kind components.SourceKind, entry catalog.Entry)
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks provides event callback registration. Hooks fire after a sync has
// been written to the store, never on dry runs.
type Hooks interface {
	OnEntryAdded(EntryAddedHook)
	OnEntryUpdated(EntryUpdatedHook)
	OnEntryRemoved(EntryRemovedHook)
}

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu             sync.RWMutex
	onEntryAdded   []EntryAddedHook
	onEntryUpdated []EntryUpdatedHook
	onEntryRemoved []EntryRemovedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnEntryAdded registers a callback for when entries are added.
func (c *client) OnEntryAdded(fn EntryAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onEntryAdded = append(c.hooks.onEntryAdded, fn)
}

// OnEntryUpdated registers a callback for when entries are updated.
func (c *client) OnEntryUpdated(fn EntryUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onEntryUpdated = append(c.hooks.onEntryUpdated, fn)
}

// OnEntryRemoved registers a callback for when entries are removed.
func (c *client) OnEntryRemoved(fn EntryRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onEntryRemoved = append(c.hooks.onEntryRemoved, fn)
}

// trigger fires the hooks for every entry change in changeset, source
// kinds in canonical order.
func (h *hooks) trigger(changeset *differ.Changeset) {
	if changeset == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, kind := range changeset.Kinds() {
		entries := changeset.Sources[kind].Entries
		if entries == nil {
			continue
		}
		for _, e := range entries.Added {
			for _, hook := range h.onEntryAdded {
				hook(kind, e)
			}
		}
		for _, u := range entries.Updated {
			for _, hook := range h.onEntryUpdated {
				hook(kind, u.Existing, u.New)
			}
		}
		for _, e := range entries.Removed {
			for _, hook := range h.onEntryRemoved {
				hook(kind, e)
			}
		}
	}
}
