package metadata

import (
	"encoding/json"

	"github.com/agentstation/pagetree/pkg/components"
)

// Record is one raw component definition from the registry. The set of
// record types is closed: SchemaRecord, DynamicRecord and BlockRecord.
type Record interface {
	ComponentID() string
	Kind() components.SourceKind
	// SourceLabel is the registry's label for the record's source kind.
	SourceLabel() string

	normalize() (components.ComponentType, error)
}

// base holds the fields every record carries.
type base struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Source string `json:"source_label,omitempty"`
}

// ComponentID returns the component id.
func (b base) ComponentID() string { return b.ID }

// SourceLabel returns the registry's label for the source kind.
func (b base) SourceLabel() string { return b.Source }

// SchemaSlot is a slot declared by a schema component definition.
type SchemaSlot struct {
	Key         string `json:"key"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// SchemaRecord is a declarative component whose props are a JSON schema.
type SchemaRecord struct {
	base
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Group       string          `json:"group,omitempty"`
	Props       json.RawMessage `json:"props,omitempty"`
	Slots       []SchemaSlot    `json:"slots,omitempty"`
}

// NewSchemaRecord creates a schema record.
func NewSchemaRecord(id, label string) *SchemaRecord {
	return &SchemaRecord{base: base{ID: id, Label: label}, Name: label}
}

// Kind implements Record.
func (r *SchemaRecord) Kind() components.SourceKind { return components.SourceSchema }

// DynamicProp is a prop of a dynamic component with its embedded schema.
type DynamicProp struct {
	Key        string          `json:"key"`
	JSONSchema json.RawMessage `json:"jsonSchema,omitempty"`
	// Default is the resolved default value, if any.
	Default any `json:"default,omitempty"`
}

// DynamicSlot is a slot of a dynamic component.
type DynamicSlot struct {
	Key   string `json:"key"`
	Title string `json:"title,omitempty"`
}

// DynamicRecord is a code component described by a live descriptor.
type DynamicRecord struct {
	base
	Props []DynamicProp `json:"props,omitempty"`
	Slots []DynamicSlot `json:"slots,omitempty"`
}

// NewDynamicRecord creates a dynamic record.
func NewDynamicRecord(id, label string) *DynamicRecord {
	return &DynamicRecord{base: base{ID: id, Label: label}}
}

// Kind implements Record.
func (r *DynamicRecord) Kind() components.SourceKind { return components.SourceDynamic }

// ConfigValue is one key of a block's default configuration.
type ConfigValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// BlockRecord is a block plugin with an introspectable default configuration.
type BlockRecord struct {
	base
	DefaultConfig []ConfigValue `json:"default_config,omitempty"`
}

// NewBlockRecord creates a block record.
func NewBlockRecord(id, label string, config ...ConfigValue) *BlockRecord {
	return &BlockRecord{base: base{ID: id, Label: label}, DefaultConfig: config}
}

// Kind implements Record.
func (r *BlockRecord) Kind() components.SourceKind { return components.SourceBlock }
