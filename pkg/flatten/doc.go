// Package flatten compiles a nested component document into the flat,
// address-ordered list of ADD operations a page renderer applies.
//
// The top-level run of components is placed relative to a reference node
// path (above or below it). Every deeper level is addressed as
// parent ++ [slotIndex, childIndex], where slotIndex comes from the live
// component metadata of the parent's type.
package flatten
