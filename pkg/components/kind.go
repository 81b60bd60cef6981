package components

import "slices"

// SourceKind identifies where a component definition comes from.
type SourceKind string

// Supported component origins.
const (
	// SourceSchema is a declarative single-directory component described by a JSON schema.
	SourceSchema SourceKind = "sdc"
	// SourceDynamic is a code component whose props come from a live descriptor.
	SourceDynamic SourceKind = "js"
	// SourceBlock is a block plugin with an introspectable default configuration.
	SourceBlock SourceKind = "block"
)

// Kinds returns all source kinds in their canonical order.
func Kinds() []SourceKind {
	return []SourceKind{SourceSchema, SourceDynamic, SourceBlock}
}

// String returns the string representation of a source kind.
func (k SourceKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the defined constants.
func (k SourceKind) IsValid() bool {
	return slices.Contains(Kinds(), k)
}

// DefaultLabel is the human label used when the registry does not provide one.
func (k SourceKind) DefaultLabel() string {
	switch k {
	case SourceSchema:
		return "Single-Directory Components"
	case SourceDynamic:
		return "Code Components"
	case SourceBlock:
		return "Blocks"
	default:
		return string(k)
	}
}
