package reconcile

import (
	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
)

// mergeEntries keeps the cached entries that were discovered again and adds
// the new ones.
func (e *Engine) mergeEntries(cached map[string]catalog.Entry, discovered map[string]components.ComponentType) map[string]catalog.Entry {
	out := make(map[string]catalog.Entry, len(discovered))
	for id, t := range discovered {
		if prev, ok := cached[id]; ok {
			out[id] = e.mergeEntry(prev, t)
			continue
		}
		out[id] = catalog.FromComponentType(t)
	}
	return out
}

// mergeEntry rebuilds an entry from its discovered type and carries the
// catalog-owned fields of prev forward. Curated descriptions are copied even
// when empty: an editor may clear one on purpose.
func (e *Engine) mergeEntry(prev catalog.Entry, t components.ComponentType) catalog.Entry {
	next := catalog.FromComponentType(t)

	if e.authorities.Curated("name") && prev.Name != "" {
		next.Name = prev.Name
	}
	if e.authorities.Curated("description") {
		next.Description = prev.Description
	}
	if e.authorities.Curated("group") {
		next.Group = prev.Group
	}
	if e.authorities.Curated("hidden") {
		next.Hidden = prev.Hidden
	}

	for i, prop := range next.Props {
		old, ok := prev.Props.Get(prop.Key)
		if !ok {
			continue
		}
		path := "props." + prop.Key
		if e.authorities.Curated(path+".description") {
			next.Props[i].Description = old.Description
		}
		if e.authorities.Curated(path+".name") && old.Name != "" {
			next.Props[i].Name = old.Name
		}
	}

	for i, slot := range next.Slots {
		old, ok := prev.Slots.Get(slot.Key)
		if !ok {
			continue
		}
		path := "slots." + slot.Key
		if e.authorities.Curated(path+".description") {
			next.Slots[i].Description = old.Description
		}
		if e.authorities.Curated(path+".name") && old.Name != "" {
			next.Slots[i].Name = old.Name
		}
	}

	return next
}
