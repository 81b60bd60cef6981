package catalog

import (
	"github.com/goccy/go-yaml"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
)

// Context builds the component context handed to authoring tools. Curated
// catalog entries come first and win field by field; live component types
// fill in whatever the catalog leaves empty and add types the catalog does
// not know yet. Disabled sources and hidden entries are left out, including
// their live counterparts.
func Context(c Catalog, live components.Discovery) []Entry {
	visible := c.Snapshot()

	var out []Entry
	index := map[string]int{}
	for _, kind := range visible.Kinds() {
		src := visible[kind]
		for _, id := range src.IDs() {
			index[id] = len(out)
			out = append(out, src.Entries[id])
		}
	}

	for _, kind := range live.Kinds() {
		_, known := c[kind]
		if _, shown := visible[kind]; known && !shown {
			continue
		}
		for _, id := range live.IDs(kind) {
			t := live.Groups[kind].Components[id]
			if i, ok := index[id]; ok {
				out[i] = fillGaps(out[i], t)
				continue
			}
			if _, _, stored := c.Lookup(id); stored {
				continue // hidden
			}
			index[id] = len(out)
			out = append(out, FromComponentType(t))
		}
	}
	return out
}

func fillGaps(e Entry, t components.ComponentType) Entry {
	if e.Name == "" {
		e.Name = t.Label
	}
	if e.Description == "" {
		e.Description = t.Description
	}
	if e.Group == "" {
		e.Group = t.Group
	}
	if len(e.Props) == 0 {
		e.Props = t.Props.Clone()
	}
	if len(e.Slots) == 0 {
		e.Slots = t.Slots.Clone()
	}
	return e
}

// ContextYAML renders context entries as a YAML mapping of id -> entry.
func ContextYAML(entries []Entry) ([]byte, error) {
	doc := make(yaml.MapSlice, 0, len(entries))
	for _, e := range entries {
		doc = append(doc, yaml.MapItem{Key: e.ID, Value: e})
	}
	return yaml.Marshal(doc)
}

// ComponentContext returns the context entry of a single component.
func ComponentContext(entries []Entry, id string) (Entry, error) {
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, errors.NewNotFoundError("component", id)
}
