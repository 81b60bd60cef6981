// Package regions reads the top-level region layout of a page. Each region
// owns a base index; components placed into a region are numbered from that
// index.
package regions

import (
	"encoding/json"
	"sort"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Index maps region names to their base top-level index.
type Index map[string]int

// Region is a region the authoring step may place components into.
type Region struct {
	Name           string `json:"name" yaml:"name"`
	NodePathPrefix int    `json:"nodePathPrefix" yaml:"nodePathPrefix"`
	Description    string `json:"description" yaml:"description"`
}

type layoutDocument struct {
	Layout map[string]struct {
		NodePathPrefix []int `json:"nodePathPrefix"`
	} `json:"layout"`
}

// ParseLayout extracts the region index from a page layout document of the
// form {"layout": {"<region>": {"nodePathPrefix": [n, ...]}}}. Regions
// without a prefix are ignored. An empty document yields an empty index.
func ParseLayout(data []byte) (Index, error) {
	idx := Index{}
	if len(data) == 0 {
		return idx, nil
	}

	var doc layoutDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", "layout", err)
	}
	for name, region := range doc.Layout {
		if len(region.NodePathPrefix) == 0 {
			continue
		}
		if region.NodePathPrefix[0] < 0 {
			return nil, errors.NewValidationError("layout."+name+".nodePathPrefix", region.NodePathPrefix[0], "must be non-negative")
		}
		idx[name] = region.NodePathPrefix[0]
	}
	return idx, nil
}

// Lookup returns the base index of region.
func (idx Index) Lookup(region string) (int, error) {
	if i, ok := idx[region]; ok {
		return i, nil
	}
	return 0, &errors.UnresolvedRegionError{Region: region, Available: idx.Names()}
}

// Names returns the region names ordered by base index, then name.
func (idx Index) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if idx[names[i]] != idx[names[j]] {
			return idx[names[i]] < idx[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Available lists the regions of idx with their configured descriptions.
// Regions without a description get an empty one.
func Available(idx Index, descriptions map[string]string) []Region {
	out := make([]Region, 0, len(idx))
	for _, name := range idx.Names() {
		out = append(out, Region{
			Name:           name,
			NodePathPrefix: idx[name],
			Description:    descriptions[name],
		})
	}
	return out
}
