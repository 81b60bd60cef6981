package metadata

import (
	"bytes"
	"fmt"

	"github.com/agentstation/pagetree/pkg/components"
)

// normalize implements Record for dynamic code components. Their
// descriptors carry no human text, so descriptions repeat the key.
func (r *DynamicRecord) normalize() (components.ComponentType, error) {
	t := components.ComponentType{
		ID:          r.ID,
		Source:      components.SourceDynamic,
		Label:       r.Label,
		Description: r.Label,
	}

	for _, p := range r.Props {
		prop := components.PropSpec{
			Key:         p.Key,
			Name:        p.Key,
			Description: p.Key,
			Default:     p.Default,
		}
		if prop.Default == nil {
			prop.Default = ""
		}
		if len(bytes.TrimSpace(p.JSONSchema)) > 0 {
			sch, err := compileSchema(r.ID+"/"+p.Key, p.JSONSchema)
			if err != nil {
				return t, fmt.Errorf("prop %s: %w", p.Key, err)
			}
			prop.Type = schemaType(sch)
			prop.Format = schemaFormat(p.JSONSchema)
			if sch.Enum != nil {
				for _, v := range sch.Enum.Values {
					prop.Enum = append(prop.Enum, plainJSON(v))
				}
			}
		}
		prop.Default = plainJSON(prop.Default)
		t.Props = append(t.Props, prop)
	}

	for _, s := range r.Slots {
		name := s.Title
		if name == "" {
			name = s.Key
		}
		t.Slots = append(t.Slots, components.SlotSpec{Key: s.Key, Name: name, Description: s.Key})
	}
	return t, nil
}
