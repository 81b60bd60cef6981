// Package reconcile merges freshly discovered component metadata into the
// cached catalog. Discovery decides which components, props and slots
// exist; the catalog keeps the text people curated. The merge is pure: it
// returns a new catalog and a change flag and never touches its inputs.
package reconcile

import (
	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/differ"
)

// Option configures an Engine.
type Option func(*Engine)

// WithAllowEmptyDiscovery lets an empty discovery remove every cached
// entry. By default an empty discovery is treated as untrustworthy.
func WithAllowEmptyDiscovery(allow bool) Option {
	return func(e *Engine) {
		e.allowEmpty = allow
	}
}

// WithAuthorities replaces the field ownership rules.
func WithAuthorities(authorities Authorities) Option {
	return func(e *Engine) {
		e.authorities = authorities
	}
}

// Engine reconciles cached catalogs against discoveries.
type Engine struct {
	allowEmpty  bool
	authorities Authorities
}

// New creates an Engine with the default field ownership rules.
func New(opts ...Option) *Engine {
	e := &Engine{authorities: DefaultAuthorities()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reconcile merges discovered into cached.
//
// Per source kind, entries whose id is no longer discovered are dropped and
// newly discovered ids are added. Retained entries take their props and
// slots from discovery, with curated descriptions carried forward. Source
// kinds seen for the first time are added enabled. Changed is set when
// membership, prop or slot key sets, key order or any non-curated field
// differs.
func (e *Engine) Reconcile(cached catalog.Catalog, discovered components.Discovery) *Result {
	switch {
	case discovered.Status == components.StatusFailed:
		return e.skip(cached, SkipDiscoveryFailed, discovered.Err)
	case !e.allowEmpty && (discovered.Status == components.StatusEmpty || discovered.Count() == 0):
		return e.skip(cached, SkipEmptyDiscovery, nil)
	}

	merged := catalog.Catalog{}
	for kind, src := range cached {
		merged[kind] = catalog.Source{
			Enabled: src.Enabled,
			Entries: e.mergeEntries(src.Entries, discovered.Groups[kind].Components),
		}
	}
	for kind, group := range discovered.Groups {
		if _, ok := merged[kind]; ok {
			continue
		}
		merged[kind] = catalog.Source{
			Enabled: true,
			Entries: e.mergeEntries(nil, group.Components),
		}
	}

	changeset := differ.New(differ.WithIgnoredFields(e.authorities.CuratedFields()...)).Catalogs(cached, merged)
	return &Result{
		Merged:    merged,
		Changed:   changeset.HasChanges(),
		Changeset: changeset,
	}
}

func (e *Engine) skip(cached catalog.Catalog, reason SkipReason, err error) *Result {
	merged := cached.Clone()
	if merged == nil {
		merged = catalog.Catalog{}
	}
	return &Result{
		Merged:     merged,
		Changeset:  differ.New().Catalogs(cached, merged),
		Skipped:    true,
		SkipReason: reason,
		Err:        err,
	}
}
