package catalog

import (
	"github.com/goccy/go-yaml"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/constants"
)

// Entry is the persisted, human-editable description of one component
// type. Descriptions and the hidden flag are owned by people; everything
// else is refreshed from discovery.
type Entry struct {
	ID          string           `yaml:"id" json:"id"`
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	Group       string           `yaml:"group,omitempty" json:"group,omitempty"`
	Hidden      bool             `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Props       components.Props `yaml:"props" json:"props"`
	Slots       components.Slots `yaml:"slots" json:"slots"`
}

// FromComponentType creates the initial catalog entry for a discovered type.
func FromComponentType(t components.ComponentType) Entry {
	return Entry{
		ID:          t.ID,
		Name:        t.Label,
		Description: t.Description,
		Group:       t.Group,
		Props:       t.Props.Clone(),
		Slots:       t.Slots.Clone(),
	}
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Props = e.Props.Clone()
	e.Slots = e.Slots.Clone()
	return e
}

// MarshalYAML writes the entry with "No props" / "No slots" in place of
// empty mappings so that stored catalogs stay self-describing.
func (e Entry) MarshalYAML() (any, error) {
	out := yaml.MapSlice{
		{Key: "id", Value: e.ID},
		{Key: "name", Value: e.Name},
		{Key: "description", Value: e.Description},
	}
	if e.Group != "" {
		out = append(out, yaml.MapItem{Key: "group", Value: e.Group})
	}
	if e.Hidden {
		out = append(out, yaml.MapItem{Key: "hidden", Value: true})
	}

	var props any = constants.NoProps
	if len(e.Props) > 0 {
		props = e.Props
	}
	var slots any = constants.NoSlots
	if len(e.Slots) > 0 {
		slots = e.Slots
	}
	return append(out,
		yaml.MapItem{Key: "props", Value: props},
		yaml.MapItem{Key: "slots", Value: slots},
	), nil
}
