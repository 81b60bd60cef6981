package sync

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/differ"
	"github.com/agentstation/pagetree/pkg/reconcile"
)

// Result represents the complete result of a sync operation.
type Result struct {
	// Overall statistics
	TotalChanges   int                                     `json:"total_changes" yaml:"total_changes"`
	SourcesChanged int                                     `json:"sources_changed" yaml:"sources_changed"`
	SourceResults  map[components.SourceKind]*SourceResult `json:"sources" yaml:"sources"`

	// Outcome
	Changed    bool                 `json:"changed" yaml:"changed"`
	Saved      bool                 `json:"saved" yaml:"saved"`
	Skipped    bool                 `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	SkipReason reconcile.SkipReason `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Revision   string               `json:"revision,omitempty" yaml:"revision,omitempty"`
	DryRun     bool                 `json:"dry_run" yaml:"dry_run"`

	// Catalog is the reconciled catalog; Changeset the differences behind it.
	Catalog   catalog.Catalog   `json:"-" yaml:"-"`
	Changeset *differ.Changeset `json:"-" yaml:"-"`
}

// SourceResult represents sync results for a single source kind.
type SourceResult struct {
	Kind    components.SourceKind `json:"kind" yaml:"kind"`
	Added   []string              `json:"added,omitempty" yaml:"added,omitempty"`
	Updated []string              `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed []string              `json:"removed,omitempty" yaml:"removed,omitempty"`

	// New is true when the source kind was seen for the first time.
	New bool `json:"new,omitempty" yaml:"new,omitempty"`
}

// HasChanges returns true if the sync result contains any changes.
func (r *Result) HasChanges() bool {
	return r.Changed
}

// HasChanges returns true if the source result contains any changes.
func (s *SourceResult) HasChanges() bool {
	return s.New || len(s.Added) > 0 || len(s.Updated) > 0 || len(s.Removed) > 0
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	if r.Skipped {
		return fmt.Sprintf("Sync skipped: %s", r.SkipReason)
	}
	if !r.HasChanges() {
		return "No changes detected"
	}

	summary := fmt.Sprintf("%d total changes across %d sources", r.TotalChanges, r.SourcesChanged)
	if r.DryRun {
		summary += " (Dry run)"
	}
	return summary
}

// Summary returns a human-readable summary of the source result.
func (s *SourceResult) Summary() string {
	if !s.HasChanges() {
		return fmt.Sprintf("%s: No changes", s.Kind)
	}
	parts := []string{fmt.Sprintf("%d added", len(s.Added)), fmt.Sprintf("%d updated", len(s.Updated)), fmt.Sprintf("%d removed", len(s.Removed))}
	if s.New {
		parts = append([]string{"new source"}, parts...)
	}
	return fmt.Sprintf("%s: %s", s.Kind, strings.Join(parts, ", "))
}

// FromReconcile converts a reconciliation result to a sync Result.
func FromReconcile(rr *reconcile.Result, dryRun bool) *Result {
	result := &Result{
		SourceResults: make(map[components.SourceKind]*SourceResult),
		Changed:       rr.Changed,
		Skipped:       rr.Skipped,
		SkipReason:    rr.SkipReason,
		DryRun:        dryRun,
		Catalog:       rr.Merged,
		Changeset:     rr.Changeset,
	}
	if rr.Changeset == nil {
		return result
	}
	result.TotalChanges = rr.Changeset.Summary.TotalChanges

	for kind, sc := range rr.Changeset.Sources {
		sr := &SourceResult{Kind: kind, New: sc.Added}
		if sc.Entries != nil {
			for _, e := range sc.Entries.Added {
				sr.Added = append(sr.Added, e.ID)
			}
			for _, u := range sc.Entries.Updated {
				sr.Updated = append(sr.Updated, u.ID)
			}
			for _, e := range sc.Entries.Removed {
				sr.Removed = append(sr.Removed, e.ID)
			}
		}
		result.SourceResults[kind] = sr
		if sr.HasChanges() || sc.HasChanges() {
			result.SourcesChanged++
		}
	}
	return result
}

// Kinds returns the source kinds of the result in canonical order.
func (r *Result) Kinds() []components.SourceKind {
	var out []components.SourceKind
	for _, k := range components.Kinds() {
		if _, ok := r.SourceResults[k]; ok {
			out = append(out, k)
		}
	}
	var extra []components.SourceKind
	for k := range r.SourceResults {
		if !k.IsValid() {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
