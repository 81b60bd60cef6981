package differ

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
)

// Differ handles change detection between catalogs.
type Differ interface {
	// Entries compares the entries of one source kind.
	Entries(existing, updated map[string]catalog.Entry) *EntryChangeset

	// Entry compares two versions of the same entry and returns nil when
	// nothing but ignored fields differ.
	Entry(existing, updated catalog.Entry) *EntryUpdate

	// Catalogs compares two complete catalogs.
	Catalogs(existing, updated catalog.Catalog) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields   map[string]bool
	deepComparison bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields:   make(map[string]bool),
		deepComparison: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Entries compares two sets of entries and returns changes.
func (diff *differ) Entries(existing, updated map[string]catalog.Entry) *EntryChangeset {
	changeset := &EntryChangeset{
		Added:   []catalog.Entry{},
		Updated: []EntryUpdate{},
		Removed: []catalog.Entry{},
	}

	for id, newEntry := range updated {
		if existingEntry, exists := existing[id]; exists {
			if update := diff.Entry(existingEntry, newEntry); update != nil {
				changeset.Updated = append(changeset.Updated, *update)
			}
		} else {
			changeset.Added = append(changeset.Added, newEntry)
		}
	}

	for id, existingEntry := range existing {
		if _, exists := updated[id]; !exists {
			changeset.Removed = append(changeset.Removed, existingEntry)
		}
	}

	sortEntryChangeset(changeset)

	return changeset
}

// Catalogs compares two complete catalogs.
func (diff *differ) Catalogs(existing, updated catalog.Catalog) *Changeset {
	changeset := &Changeset{Sources: map[components.SourceKind]*SourceChangeset{}}

	kinds := map[components.SourceKind]bool{}
	for k := range existing {
		kinds[k] = true
	}
	for k := range updated {
		kinds[k] = true
	}

	for kind := range kinds {
		oldSrc, hadSrc := existing[kind]
		newSrc, hasSrc := updated[kind]

		sc := &SourceChangeset{
			Kind:    kind,
			Added:   hasSrc && !hadSrc,
			Removed: hadSrc && !hasSrc,
			Entries: diff.Entries(oldSrc.Entries, newSrc.Entries),
		}
		if hadSrc && hasSrc && oldSrc.Enabled != newSrc.Enabled && !diff.ignoreFields["enabled"] {
			sc.EnabledChange = &FieldChange{
				Path:     string(kind) + ".enabled",
				OldValue: fmt.Sprintf("%v", oldSrc.Enabled),
				NewValue: fmt.Sprintf("%v", newSrc.Enabled),
				Type:     ChangeTypeUpdate,
			}
		}
		if sc.HasChanges() {
			changeset.Sources[kind] = sc
		}
	}

	changeset.Summary = calculateSummary(changeset.Sources)

	return changeset
}

// Entry compares two entries and returns an update if they differ.
func (diff *differ) Entry(existing, updated catalog.Entry) *EntryUpdate {
	changes := []FieldChange{}

	changes = diff.appendString(changes, "name", existing.Name, updated.Name)
	changes = diff.appendString(changes, "description", truncateString(existing.Description, 50), truncateString(updated.Description, 50))
	changes = diff.appendString(changes, "group", existing.Group, updated.Group)
	if existing.Hidden != updated.Hidden && !diff.ignoreFields["hidden"] {
		changes = append(changes, FieldChange{
			Path:     "hidden",
			OldValue: fmt.Sprintf("%v", existing.Hidden),
			NewValue: fmt.Sprintf("%v", updated.Hidden),
			Type:     ChangeTypeUpdate,
		})
	}

	if !diff.ignoreFields["props"] {
		changes = append(changes, diff.props(existing.Props, updated.Props)...)
	}
	if !diff.ignoreFields["slots"] {
		changes = append(changes, diff.slots(existing.Slots, updated.Slots)...)
	}

	if len(changes) == 0 {
		return nil
	}

	return &EntryUpdate{
		ID:       existing.ID,
		Existing: existing,
		New:      updated,
		Changes:  changes,
	}
}

// props compares prop key sets, key order and, with deep comparison, the
// fields of props present on both sides.
func (diff *differ) props(existing, updated components.Props) []FieldChange {
	changes := diffKeys("props", existing.Keys(), updated.Keys())
	if !diff.deepComparison {
		return changes
	}

	for _, newProp := range updated {
		oldProp, ok := existing.Get(newProp.Key)
		if !ok {
			continue
		}
		path := "props." + newProp.Key
		changes = diff.appendString(changes, path+".name", oldProp.Name, newProp.Name)
		changes = diff.appendString(changes, path+".description", truncateString(oldProp.Description, 50), truncateString(newProp.Description, 50))
		changes = diff.appendString(changes, path+".type", string(oldProp.Type), string(newProp.Type))
		changes = diff.appendString(changes, path+".format", oldProp.Format, newProp.Format)
		if oldProp.Required != newProp.Required && !diff.ignoreFields["required"] {
			changes = append(changes, FieldChange{
				Path:     path + ".required",
				OldValue: fmt.Sprintf("%v", oldProp.Required),
				NewValue: fmt.Sprintf("%v", newProp.Required),
				Type:     ChangeTypeUpdate,
			})
		}
		changes = diff.appendValue(changes, path+".default", "default", oldProp.Default, newProp.Default)
		changes = diff.appendValue(changes, path+".enum", "enum", emptyAsNil(oldProp.Enum), emptyAsNil(newProp.Enum))
	}
	return changes
}

// slots compares slot key sets, key order and slot fields. Slot order is
// significant: it defines slot indices in node paths.
func (diff *differ) slots(existing, updated components.Slots) []FieldChange {
	changes := diffKeys("slots", existing.Keys(), updated.Keys())
	if !diff.deepComparison {
		return changes
	}

	for _, newSlot := range updated {
		oldSlot, ok := existing.Get(newSlot.Key)
		if !ok {
			continue
		}
		path := "slots." + newSlot.Key
		changes = diff.appendString(changes, path+".name", oldSlot.Name, newSlot.Name)
		changes = diff.appendString(changes, path+".description", truncateString(oldSlot.Description, 50), truncateString(newSlot.Description, 50))
	}
	return changes
}

// appendString records a change of a string field unless the field's last
// path segment is ignored.
func (diff *differ) appendString(changes []FieldChange, path, oldValue, newValue string) []FieldChange {
	if oldValue == newValue || diff.ignoreFields[lastSegment(path)] {
		return changes
	}
	return append(changes, FieldChange{
		Path:     path,
		OldValue: oldValue,
		NewValue: newValue,
		Type:     ChangeTypeUpdate,
	})
}

// appendValue records a change of a dynamically typed field.
func (diff *differ) appendValue(changes []FieldChange, path, field string, oldValue, newValue any) []FieldChange {
	if diff.ignoreFields[field] || Equal(oldValue, newValue) {
		return changes
	}
	return append(changes, FieldChange{
		Path:     path,
		OldValue: formatValue(oldValue),
		NewValue: formatValue(newValue),
		Type:     ChangeTypeUpdate,
	})
}

// diffKeys reports added and removed keys, and a reorder when both sides
// hold the same keys in a different order.
func diffKeys(prefix string, existing, updated []string) []FieldChange {
	changes := []FieldChange{}

	oldSet := make(map[string]bool, len(existing))
	for _, k := range existing {
		oldSet[k] = true
	}
	newSet := make(map[string]bool, len(updated))
	for _, k := range updated {
		newSet[k] = true
	}

	for _, k := range updated {
		if !oldSet[k] {
			changes = append(changes, FieldChange{Path: prefix + "." + k, NewValue: k, Type: ChangeTypeAdd})
		}
	}
	for _, k := range existing {
		if !newSet[k] {
			changes = append(changes, FieldChange{Path: prefix + "." + k, OldValue: k, Type: ChangeTypeRemove})
		}
	}

	if len(changes) == 0 && !equalStrings(existing, updated) {
		changes = append(changes, FieldChange{
			Path:     prefix,
			OldValue: strings.Join(existing, ","),
			NewValue: strings.Join(updated, ","),
			Type:     ChangeTypeUpdate,
		})
	}
	return changes
}

// sortEntryChangeset sorts all slices in the changeset.
func sortEntryChangeset(changeset *EntryChangeset) {
	sort.Slice(changeset.Added, func(i, j int) bool {
		return changeset.Added[i].ID < changeset.Added[j].ID
	})
	sort.Slice(changeset.Updated, func(i, j int) bool {
		return changeset.Updated[i].ID < changeset.Updated[j].ID
	})
	sort.Slice(changeset.Removed, func(i, j int) bool {
		return changeset.Removed[i].ID < changeset.Removed[j].ID
	})
}

// Helper functions

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func emptyAsNil(v []any) any {
	if len(v) == 0 {
		return nil
	}
	return v
}
