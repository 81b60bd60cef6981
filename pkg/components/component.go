package components

// ComponentType is the normalized description of a reusable component: its
// declared props and named child slots.
type ComponentType struct {
	ID          string     `yaml:"id" json:"id"`
	Source      SourceKind `yaml:"-" json:"source"`
	Label       string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Group       string     `yaml:"group,omitempty" json:"group,omitempty"`
	Props       Props      `yaml:"props" json:"props"`
	Slots       Slots      `yaml:"slots" json:"slots"`
}

// Clone returns a deep copy of the component type.
func (c ComponentType) Clone() ComponentType {
	c.Props = c.Props.Clone()
	c.Slots = c.Slots.Clone()
	return c
}

// SlotIndex returns the ordinal position of a slot, or -1.
func (c ComponentType) SlotIndex(slot string) int {
	return c.Slots.Index(slot)
}
