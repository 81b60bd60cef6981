package reconcile

import (
	"path/filepath"
	"strings"
)

// Owner names the side whose value wins for a field during reconciliation.
type Owner string

const (
	// OwnerCatalog means the curated catalog value is carried forward.
	OwnerCatalog Owner = "catalog"
	// OwnerDiscovery means the freshly discovered value replaces the cached one.
	OwnerDiscovery Owner = "discovery"
)

// FieldAuthority assigns an owner to the fields matching a path pattern.
// Patterns use filepath.Match syntax on dotted paths such as
// "props.*.description".
type FieldAuthority struct {
	FieldPath string `json:"field_path" yaml:"field_path"`
	Owner     Owner  `json:"owner" yaml:"owner"`
}

// Authorities is an ordered list of field authorities. Fields that match no
// pattern are owned by discovery.
type Authorities []FieldAuthority

// DefaultAuthorities keeps human-edited text and the hidden flag.
func DefaultAuthorities() Authorities {
	return Authorities{
		{FieldPath: "description", Owner: OwnerCatalog},
		{FieldPath: "hidden", Owner: OwnerCatalog},
		{FieldPath: "props.*.description", Owner: OwnerCatalog},
		{FieldPath: "slots.*.description", Owner: OwnerCatalog},
	}
}

// Owner returns the owner of fieldPath. The most specific matching pattern
// wins; ties go to the earlier pattern.
func (a Authorities) Owner(fieldPath string) Owner {
	best := OwnerDiscovery
	bestLen := -1
	for _, auth := range a {
		if MatchesPattern(fieldPath, auth.FieldPath) && len(auth.FieldPath) > bestLen {
			best = auth.Owner
			bestLen = len(auth.FieldPath)
		}
	}
	return best
}

// Curated reports whether the catalog owns fieldPath.
func (a Authorities) Curated(fieldPath string) bool {
	return a.Owner(fieldPath) == OwnerCatalog
}

// CuratedFields returns the last path segment of every catalog-owned
// pattern, the form the differ ignores fields by.
func (a Authorities) CuratedFields() []string {
	seen := map[string]bool{}
	var out []string
	for _, auth := range a {
		if auth.Owner != OwnerCatalog {
			continue
		}
		field := auth.FieldPath
		if i := strings.LastIndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if !seen[field] {
			seen[field] = true
			out = append(out, field)
		}
	}
	return out
}

// MatchesPattern checks if a field path matches a pattern.
func MatchesPattern(fieldPath, pattern string) bool {
	if pattern == fieldPath {
		return true
	}
	// Dots act as separators; translate them so "*" stays within one segment.
	matched, err := filepath.Match(strings.ReplaceAll(pattern, ".", "/"), strings.ReplaceAll(fieldPath, ".", "/"))
	return err == nil && matched
}
