package components

import (
	"sort"
)

// Status describes how a discovery call ended.
type Status string

const (
	// StatusComplete means the registry answered with at least one component.
	StatusComplete Status = "complete"
	// StatusEmpty means the registry answered but listed no components.
	StatusEmpty Status = "empty"
	// StatusFailed means the registry could not be read.
	StatusFailed Status = "failed"
)

// Group holds the discovered component types of one source kind.
type Group struct {
	Label      string                   `yaml:"label" json:"label"`
	Components map[string]ComponentType `yaml:"components" json:"components"`
}

// Discovery is one snapshot of the live registry, keyed by source kind.
// A failed or empty discovery carries no groups; Status tells the two apart
// from a legitimate registry answer.
type Discovery struct {
	Groups map[SourceKind]Group `yaml:"groups" json:"groups"`
	Status Status               `yaml:"status" json:"status"`
	Err    error                `yaml:"-" json:"-"`
}

// NewDiscovery builds a complete discovery from component types.
func NewDiscovery(types ...ComponentType) Discovery {
	d := Discovery{Groups: make(map[SourceKind]Group), Status: StatusEmpty}
	for _, t := range types {
		d.Add("", t)
	}
	return d
}

// Failed returns a discovery that records a registry failure.
func Failed(err error) Discovery {
	return Discovery{Groups: map[SourceKind]Group{}, Status: StatusFailed, Err: err}
}

// Add places t in the group of its source kind. An empty label keeps the
// current group label or falls back to the kind's default label.
func (d *Discovery) Add(label string, t ComponentType) {
	if d.Groups == nil {
		d.Groups = make(map[SourceKind]Group)
	}
	g, ok := d.Groups[t.Source]
	if !ok {
		g = Group{Label: t.Source.DefaultLabel(), Components: make(map[string]ComponentType)}
	}
	if label != "" {
		g.Label = label
	}
	g.Components[t.ID] = t
	d.Groups[t.Source] = g
	d.Status = StatusComplete
}

// OK reports whether the discovery reflects a successful, non-empty registry read.
func (d Discovery) OK() bool {
	return d.Status == StatusComplete
}

// Lookup finds a component type by id in any group.
func (d Discovery) Lookup(typeID string) (ComponentType, bool) {
	for _, g := range d.Groups {
		if t, ok := g.Components[typeID]; ok {
			return t, true
		}
	}
	return ComponentType{}, false
}

// Count returns the number of discovered component types.
func (d Discovery) Count() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Components)
	}
	return n
}

// Kinds returns the discovered source kinds in canonical order, followed by
// any unknown kinds sorted by name.
func (d Discovery) Kinds() []SourceKind {
	out := make([]SourceKind, 0, len(d.Groups))
	for _, k := range Kinds() {
		if _, ok := d.Groups[k]; ok {
			out = append(out, k)
		}
	}
	var extra []SourceKind
	for k := range d.Groups {
		if !k.IsValid() {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// IDs returns the sorted component ids of one source kind.
func (d Discovery) IDs(kind SourceKind) []string {
	g, ok := d.Groups[kind]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(g.Components))
	for id := range g.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
