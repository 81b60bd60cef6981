// Package catalog holds the persisted component catalog: per source kind an
// enabled flag and the curated entries of every component type. It also
// builds the snapshots handed to authoring tools.
package catalog

import (
	"sort"

	"github.com/agentstation/pagetree/pkg/components"
)

// Source is the catalog section of one source kind.
type Source struct {
	Enabled bool             `yaml:"enabled" json:"enabled"`
	Entries map[string]Entry `yaml:"entries" json:"entries"`
}

// IDs returns the entry ids in sorted order.
func (s Source) IDs() []string {
	ids := make([]string, 0, len(s.Entries))
	for id := range s.Entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the source.
func (s Source) Clone() Source {
	out := Source{Enabled: s.Enabled, Entries: make(map[string]Entry, len(s.Entries))}
	for id, e := range s.Entries {
		out.Entries[id] = e.Clone()
	}
	return out
}

// Catalog maps source kinds to their catalog section.
type Catalog map[components.SourceKind]Source

// FromDiscovery seeds a catalog from a first discovery. Every discovered
// source kind is enabled.
func FromDiscovery(d components.Discovery) Catalog {
	cat := Catalog{}
	for kind, group := range d.Groups {
		src := Source{Enabled: true, Entries: make(map[string]Entry, len(group.Components))}
		for id, t := range group.Components {
			src.Entries[id] = FromComponentType(t)
		}
		cat[kind] = src
	}
	return cat
}

// Kinds returns the source kinds in canonical order followed by unknown
// kinds sorted by name.
func (c Catalog) Kinds() []components.SourceKind {
	out := make([]components.SourceKind, 0, len(c))
	for _, k := range components.Kinds() {
		if _, ok := c[k]; ok {
			out = append(out, k)
		}
	}
	var extra []components.SourceKind
	for k := range c {
		if !k.IsValid() {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Lookup finds an entry by id in any source.
func (c Catalog) Lookup(id string) (Entry, components.SourceKind, bool) {
	for _, kind := range c.Kinds() {
		if e, ok := c[kind].Entries[id]; ok {
			return e, kind, true
		}
	}
	return Entry{}, "", false
}

// Count returns the number of entries across all sources.
func (c Catalog) Count() int {
	n := 0
	for _, src := range c {
		n += len(src.Entries)
	}
	return n
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for k, src := range c {
		out[k] = src.Clone()
	}
	return out
}

// Snapshot returns the part of the catalog authoring tools may see:
// enabled sources only, hidden entries removed. c is not modified.
func (c Catalog) Snapshot() Catalog {
	out := Catalog{}
	for kind, src := range c {
		if !src.Enabled {
			continue
		}
		visible := Source{Enabled: true, Entries: make(map[string]Entry, len(src.Entries))}
		for id, e := range src.Entries {
			if e.Hidden {
				continue
			}
			visible.Entries[id] = e.Clone()
		}
		out[kind] = visible
	}
	return out
}
