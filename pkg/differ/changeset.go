// Package differ provides functionality for comparing catalogs and detecting changes.
package differ

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`         // Field path (e.g., "props.title.default")
	OldValue string     `json:"old,omitempty" yaml:"old"` // Previous value (string representation)
	NewValue string     `json:"new,omitempty" yaml:"new"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`         // Type of change
}

// EntryUpdate represents an update to an existing catalog entry.
type EntryUpdate struct {
	ID       string        `json:"id" yaml:"id"`
	Existing catalog.Entry `json:"-" yaml:"-"`
	New      catalog.Entry `json:"-" yaml:"-"`
	Changes  []FieldChange `json:"changes" yaml:"changes"`
}

// EntryChangeset represents changes to the entries of one source kind.
type EntryChangeset struct {
	Added   []catalog.Entry `json:"added" yaml:"added"`
	Updated []EntryUpdate   `json:"updated" yaml:"updated"`
	Removed []catalog.Entry `json:"removed" yaml:"removed"`
}

// HasChanges returns true if the entry changeset contains any changes.
func (e *EntryChangeset) HasChanges() bool {
	return e != nil && (len(e.Added) > 0 || len(e.Updated) > 0 || len(e.Removed) > 0)
}

// SourceChangeset represents the changes to one source kind.
type SourceChangeset struct {
	Kind          components.SourceKind `json:"kind" yaml:"kind"`
	Added         bool                  `json:"added,omitempty" yaml:"added,omitempty"`
	Removed       bool                  `json:"removed,omitempty" yaml:"removed,omitempty"`
	EnabledChange *FieldChange          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Entries       *EntryChangeset       `json:"entries" yaml:"entries"`
}

// HasChanges returns true if the source changed in any way.
func (s *SourceChangeset) HasChanges() bool {
	return s.Added || s.Removed || s.EnabledChange != nil || s.Entries.HasChanges()
}

// Changeset represents all changes between two catalogs.
type Changeset struct {
	Sources map[components.SourceKind]*SourceChangeset `json:"sources" yaml:"sources"`
	Summary ChangesetSummary                           `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	SourcesAdded   int `json:"sources_added" yaml:"sources_added"`
	SourcesRemoved int `json:"sources_removed" yaml:"sources_removed"`
	SourcesToggled int `json:"sources_toggled" yaml:"sources_toggled"`
	EntriesAdded   int `json:"entries_added" yaml:"entries_added"`
	EntriesUpdated int `json:"entries_updated" yaml:"entries_updated"`
	EntriesRemoved int `json:"entries_removed" yaml:"entries_removed"`
	TotalChanges   int `json:"total_changes" yaml:"total_changes"`
}

// calculateSummary computes the summary for a changeset.
func calculateSummary(sources map[components.SourceKind]*SourceChangeset) ChangesetSummary {
	var s ChangesetSummary
	for _, sc := range sources {
		if sc.Added {
			s.SourcesAdded++
		}
		if sc.Removed {
			s.SourcesRemoved++
		}
		if sc.EnabledChange != nil {
			s.SourcesToggled++
		}
		if sc.Entries != nil {
			s.EntriesAdded += len(sc.Entries.Added)
			s.EntriesUpdated += len(sc.Entries.Updated)
			s.EntriesRemoved += len(sc.Entries.Removed)
		}
	}
	s.TotalChanges = s.SourcesAdded + s.SourcesRemoved + s.SourcesToggled +
		s.EntriesAdded + s.EntriesUpdated + s.EntriesRemoved
	return s
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c != nil && c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return !c.HasChanges()
}

// Kinds returns the changed source kinds in sorted order.
func (c *Changeset) Kinds() []components.SourceKind {
	kinds := make([]components.SourceKind, 0, len(c.Sources))
	for k := range c.Sources {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Updated returns every entry update across sources.
func (c *Changeset) Updated() []EntryUpdate {
	var out []EntryUpdate
	for _, k := range c.Kinds() {
		out = append(out, c.Sources[k].Entries.Updated...)
	}
	return out
}

// Added returns every added entry across sources.
func (c *Changeset) Added() []catalog.Entry {
	var out []catalog.Entry
	for _, k := range c.Kinds() {
		out = append(out, c.Sources[k].Entries.Added...)
	}
	return out
}

// Removed returns every removed entry across sources.
func (c *Changeset) Removed() []catalog.Entry {
	var out []catalog.Entry
	for _, k := range c.Kinds() {
		out = append(out, c.Sources[k].Entries.Removed...)
	}
	return out
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	parts := make([]string, 0, len(c.Sources))
	for _, kind := range c.Kinds() {
		sc := c.Sources[kind]
		sourceParts := []string{}
		if sc.Added {
			sourceParts = append(sourceParts, "new source")
		}
		if sc.Removed {
			sourceParts = append(sourceParts, "source removed")
		}
		if sc.EnabledChange != nil {
			sourceParts = append(sourceParts, "enabled "+sc.EnabledChange.NewValue)
		}
		if n := len(sc.Entries.Added); n > 0 {
			sourceParts = append(sourceParts, fmt.Sprintf("%d added", n))
		}
		if n := len(sc.Entries.Updated); n > 0 {
			sourceParts = append(sourceParts, fmt.Sprintf("%d updated", n))
		}
		if n := len(sc.Entries.Removed); n > 0 {
			sourceParts = append(sourceParts, fmt.Sprintf("%d removed", n))
		}
		parts = append(parts, fmt.Sprintf("%s: %s", kind, strings.Join(sourceParts, ", ")))
	}

	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, "; "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Print(w io.Writer) {
	fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, kind := range c.Kinds() {
		fmt.Fprintf(w, "\n[%s]\n", kind)
		c.Sources[kind].Entries.Print(w)
	}
}

// Print writes entry changes in a human-readable format.
func (e *EntryChangeset) Print(w io.Writer) {
	if e == nil {
		return
	}

	if len(e.Added) > 0 {
		fmt.Fprintf(w, "\n➕ Added Components (%d):\n", len(e.Added))
		for _, entry := range e.Added {
			fmt.Fprintf(w, "  • %s", entry.ID)
			if entry.Name != "" && entry.Name != entry.ID {
				fmt.Fprintf(w, " (%s)", entry.Name)
			}
			fmt.Fprintln(w)
		}
	}

	if len(e.Updated) > 0 {
		fmt.Fprintf(w, "\n🔄 Updated Components (%d):\n", len(e.Updated))
		for _, update := range e.Updated {
			fmt.Fprintf(w, "  • %s:\n", update.ID)
			for _, change := range update.Changes {
				fmt.Fprintf(w, "    - %s: %s → %s\n", change.Path, change.OldValue, change.NewValue)
			}
		}
	}

	if len(e.Removed) > 0 {
		fmt.Fprintf(w, "\n⚠️  Removed Components (%d):\n", len(e.Removed))
		for _, entry := range e.Removed {
			fmt.Fprintf(w, "  • %s", entry.ID)
			if entry.Name != "" && entry.Name != entry.ID {
				fmt.Fprintf(w, " (%s)", entry.Name)
			}
			fmt.Fprintln(w)
		}
	}
}
