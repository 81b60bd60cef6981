package flatten

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/nodepath"
)

// Node is one component instance in an authored document.
type Node struct {
	TypeID string
	Props  map[string]any
	Slots  []Slot
}

// Slot is an ordered list of child nodes under a named slot.
type Slot struct {
	Name     string
	Children []Node
}

// Document is an authored page change placed relative to a reference node.
type Document struct {
	ReferenceNodePath nodepath.Path
	Placement         nodepath.Placement
	Message           string
	Components        []Node
}

// Region is the list of components authored for one page region.
type Region struct {
	Name       string
	Components []Node
}

// RegionDocument is an authored page keyed by region name, in input order.
type RegionDocument struct {
	Regions []Region
}

// ParseDocument reads an authored document (YAML or JSON). Missing keys get
// defaults: no reference path, placement below and the default message.
func ParseDocument(data []byte) (*Document, error) {
	root, err := decodeMapping(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{Placement: nodepath.Below, Message: constants.DefaultMessage}
	for _, item := range root {
		switch fmt.Sprint(item.Key) {
		case "reference_nodepath":
			path, err := parsePath(item.Value)
			if err != nil {
				return nil, err
			}
			doc.ReferenceNodePath = path
		case "placement":
			if item.Value == nil {
				continue
			}
			placement, err := nodepath.ParsePlacement(fmt.Sprint(item.Value))
			if err != nil {
				return nil, err
			}
			doc.Placement = placement
		case "message":
			if s, ok := item.Value.(string); ok && s != "" {
				doc.Message = s
			}
		case "components":
			doc.Components = parseNodes(item.Value)
		}
	}
	return doc, nil
}

// ParseRegionDocument reads a document whose top-level keys are region names
// and whose values are component lists. Non-list region values are skipped.
func ParseRegionDocument(data []byte) (*RegionDocument, error) {
	root, err := decodeMapping(data)
	if err != nil {
		return nil, err
	}

	doc := &RegionDocument{}
	for _, item := range root {
		if _, ok := item.Value.([]any); !ok {
			continue
		}
		doc.Regions = append(doc.Regions, Region{
			Name:       fmt.Sprint(item.Key),
			Components: parseNodes(item.Value),
		})
	}
	return doc, nil
}

func decodeMapping(data []byte) (yaml.MapSlice, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case yaml.MapSlice:
		return v, nil
	default:
		return nil, errors.NewParseError("yaml", "", fmt.Sprintf("document must be a mapping, got %T", raw), nil)
	}
}

// parseNodes reads a component list. Each list item maps type ids to
// component data; an item with several keys yields several siblings.
// Items that are not mappings are skipped.
func parseNodes(v any) []Node {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var nodes []Node
	for _, item := range list {
		entries, ok := item.(yaml.MapSlice)
		if !ok {
			continue
		}
		for _, entry := range entries {
			nodes = append(nodes, parseNode(fmt.Sprint(entry.Key), entry.Value))
		}
	}
	return nodes
}

func parseNode(typeID string, v any) Node {
	node := Node{TypeID: typeID, Props: map[string]any{}}
	data, ok := v.(yaml.MapSlice)
	if !ok {
		return node
	}
	for _, item := range data {
		switch fmt.Sprint(item.Key) {
		case "props":
			if props, ok := plain(item.Value).(map[string]any); ok {
				node.Props = props
			}
		case "slots":
			slots, ok := item.Value.(yaml.MapSlice)
			if !ok {
				continue
			}
			for _, slot := range slots {
				children, ok := slot.Value.([]any)
				if !ok {
					continue
				}
				node.Slots = append(node.Slots, Slot{
					Name:     fmt.Sprint(slot.Key),
					Children: parseNodes(children),
				})
			}
		}
	}
	return node
}

// plain converts ordered mappings back into plain maps so that prop values
// are passed through as ordinary JSON-compatible data.
func plain(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(t))
		for _, item := range t {
			m[fmt.Sprint(item.Key)] = plain(item.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

func parsePath(v any) (nodepath.Path, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.NewValidationError("reference_nodepath", v, "must be a list of integers")
	}
	path := make(nodepath.Path, 0, len(list))
	for i, e := range list {
		n, ok := toInt(e)
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("reference_nodepath[%d]", i), e, "must be an integer")
		}
		path = append(path, n)
	}
	return path, path.Validate()
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
