// Package components defines the normalized component metadata shared by the
// metadata catalog, the slot resolver, the tree flattener and the
// reconciliation engine.
//
// A ComponentType is rebuilt from the live registry on every discovery and is
// treated as an immutable snapshot. Props and slots are ordered mappings: slot
// order is significant because a slot's ordinal position becomes part of every
// child node path.
package components
