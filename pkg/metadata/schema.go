package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/logging"
)

// attributesProp is the framework-provided prop that is never authored.
const attributesProp = "attributes"

// refLoader resolves every external $ref to an empty schema. Registries
// export schemas whose shared definitions live elsewhere; only the
// component's own keywords matter here.
type refLoader struct{}

func (refLoader) Load(string) (any, error) {
	return map[string]any{}, nil
}

// compileSchema compiles a raw JSON schema.
func compileSchema(id string, raw []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	loc := "mem://components/" + url.PathEscape(id) + ".json"
	c := jsonschema.NewCompiler()
	c.UseLoader(refLoader{})
	if err := c.AddResource(loc, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	sch, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return sch, nil
}

// outline is what the compiled schema does not keep: property order and
// the format annotation, which the compiler only retains when asserting it.
type outline struct {
	order   []string
	formats map[string]string
}

// schemaOutline reads the keys of "properties" in document order together
// with each property's "format".
func schemaOutline(raw []byte) (outline, error) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(raw, &doc, yaml.UseOrderedMap()); err != nil {
		return outline{}, err
	}
	o := outline{formats: map[string]string{}}
	props, _ := mapValue(doc, "properties").(yaml.MapSlice)
	for _, p := range props {
		key := fmt.Sprint(p.Key)
		o.order = append(o.order, key)
		if body, ok := p.Value.(yaml.MapSlice); ok {
			if f, ok := mapValue(body, "format").(string); ok {
				o.formats[key] = f
			}
		}
	}
	return o, nil
}

// schemaFormat returns the top-level "format" of a raw schema.
func schemaFormat(raw []byte) string {
	var doc struct {
		Format string `json:"format"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	return doc.Format
}

func mapValue(m yaml.MapSlice, key string) any {
	for _, item := range m {
		if fmt.Sprint(item.Key) == key {
			return item.Value
		}
	}
	return nil
}

// normalize implements Record for declarative schema components.
func (r *SchemaRecord) normalize() (components.ComponentType, error) {
	name := r.Name
	if name == "" {
		name = r.Label
	}
	description := r.Description
	if description == "" {
		description = name
	}

	t := components.ComponentType{
		ID:          r.ID,
		Source:      components.SourceSchema,
		Label:       name,
		Description: description,
		Group:       r.Group,
	}

	for _, s := range r.Slots {
		slot := components.SlotSpec{Key: s.Key, Name: s.Title, Description: s.Description}
		if slot.Name == "" {
			slot.Name = s.Key
		}
		if slot.Description == "" {
			slot.Description = constants.NoDescription
		}
		t.Slots = append(t.Slots, slot)
	}

	if len(bytes.TrimSpace(r.Props)) == 0 {
		return t, nil
	}

	sch, err := compileSchema(r.ID, r.Props)
	if err != nil {
		return t, err
	}
	ol, err := schemaOutline(r.Props)
	if err != nil {
		return t, fmt.Errorf("reading property order: %w", err)
	}

	required := map[string]bool{}
	for _, key := range sch.Required {
		required[key] = true
	}

	for _, key := range ol.order {
		if key == attributesProp {
			continue
		}
		ps, ok := sch.Properties[key]
		if !ok || ps == nil {
			continue
		}
		prop := schemaProp(key, ps)
		prop.Format = ol.formats[key]
		prop.Required = required[key]
		t.Props = append(t.Props, prop)
	}
	return t, nil
}

// schemaProp converts one compiled property schema.
func schemaProp(key string, ps *jsonschema.Schema) components.PropSpec {
	prop := components.PropSpec{
		Key:         key,
		Name:        ps.Title,
		Description: ps.Description,
		Type:        schemaType(ps),
	}
	if prop.Name == "" {
		prop.Name = key
	}
	if ps.Enum != nil {
		for _, v := range ps.Enum.Values {
			prop.Enum = append(prop.Enum, plainJSON(v))
		}
	}

	var example any
	if len(ps.Examples) > 0 {
		example = plainJSON(ps.Examples[0])
	}
	switch {
	case ps.Default != nil && *ps.Default != nil:
		prop.Default = plainJSON(*ps.Default)
	case example != nil:
		prop.Default = example
	}
	if prop.Default != nil {
		if err := ps.Validate(toSchemaValue(prop.Default)); err != nil {
			logging.Debug().Str("prop", key).Err(err).Msg("Default does not satisfy its schema")
		}
	}

	if prop.Type == components.TypeObject && isMediaExample(example) {
		prop.Type = components.TypeNumber
		prop.Default = constants.MediaReferenceDefault
		prop.Description += constants.MediaReferenceHint
	}
	if prop.Description == "" {
		prop.Description = constants.NoDescription
	}
	return prop
}

// schemaType returns the first non-null declared type.
func schemaType(ps *jsonschema.Schema) components.PropType {
	if ps.Types == nil {
		return ""
	}
	for _, t := range ps.Types.ToStrings() {
		if t != "null" {
			return components.ParsePropType(t)
		}
	}
	return ""
}

// isMediaExample reports whether an example value is a media reference.
func isMediaExample(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m["src"]
	return ok
}

// plainJSON replaces json.Number values with int64 or float64.
func plainJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainJSON(e)
		}
		return out
	default:
		return v
	}
}

// toSchemaValue converts a Go value into the form the validator expects.
func toSchemaValue(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	out, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return v
	}
	return out
}
