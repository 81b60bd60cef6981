package components

import "strings"

// PropType is the JSON-ish type of a component prop.
type PropType string

// Prop types understood by the page builder.
const (
	TypeString  PropType = "string"
	TypeNumber  PropType = "number"
	TypeInteger PropType = "integer"
	TypeBoolean PropType = "boolean"
	TypeObject  PropType = "object"
	TypeArray   PropType = "array"
)

// ParsePropType normalizes a schema type name. Unknown names are kept verbatim
// so that reconciliation still sees them change.
func ParsePropType(s string) PropType {
	return PropType(strings.ToLower(strings.TrimSpace(s)))
}

// PropSpec describes one prop of a component type.
type PropSpec struct {
	// Key is the machine name; it is the mapping key when serialized.
	Key         string   `yaml:"-" json:"-"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Type        PropType `yaml:"type,omitempty" json:"type,omitempty"`
	Default     any      `yaml:"default" json:"default"`
	Required    bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Enum        []any    `yaml:"enum,omitempty" json:"enum,omitempty"`
	Format      string   `yaml:"format,omitempty" json:"format,omitempty"`
}

// Props is an ordered mapping of prop key to PropSpec.
type Props []PropSpec

func propKey(p PropSpec) string { return p.Key }

// Keys returns the prop keys in declaration order.
func (p Props) Keys() []string {
	keys := make([]string, len(p))
	for i, prop := range p {
		keys[i] = prop.Key
	}
	return keys
}

// Index returns the position of key, or -1.
func (p Props) Index(key string) int {
	for i, prop := range p {
		if prop.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the prop with the given key.
func (p Props) Get(key string) (PropSpec, bool) {
	if i := p.Index(key); i >= 0 {
		return p[i], true
	}
	return PropSpec{}, false
}

// Has reports whether key is declared.
func (p Props) Has(key string) bool {
	return p.Index(key) >= 0
}

// Clone returns a copy that shares no slices with p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for i, prop := range p {
		if prop.Enum != nil {
			prop.Enum = append([]any(nil), prop.Enum...)
		}
		out[i] = prop
	}
	return out
}

// MarshalYAML renders props as an ordered mapping.
func (p Props) MarshalYAML() (any, error) {
	return orderedYAML(p, propKey), nil
}

// UnmarshalYAML reads an ordered mapping or the "No props" marker.
func (p *Props) UnmarshalYAML(unmarshal func(any) error) error {
	items, err := decodeOrdered(unmarshal, func(prop *PropSpec, key string) {
		prop.Key = key
		if prop.Name == "" {
			prop.Name = key
		}
	})
	if err != nil {
		return err
	}
	*p = items
	return nil
}

// MarshalJSON renders props as an ordered JSON object.
func (p Props) MarshalJSON() ([]byte, error) {
	return orderedJSON(p, propKey)
}
