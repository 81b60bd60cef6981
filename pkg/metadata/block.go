package metadata

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/constants"
)

// Fixed props every block carries.
const (
	blockLabelProp        = "label"
	blockLabelDisplayProp = "label_display"
)

// normalize implements Record for blocks: the two fixed props followed by
// every other default-configuration key in order.
func (r *BlockRecord) normalize() (components.ComponentType, error) {
	t := components.ComponentType{
		ID:          r.ID,
		Source:      components.SourceBlock,
		Label:       r.Label,
		Description: r.Label,
		Props: components.Props{
			{
				Key:         blockLabelProp,
				Name:        blockLabelProp,
				Description: "The block title. Required.",
				Type:        components.TypeString,
				Default:     "",
			},
			{
				Key:         blockLabelDisplayProp,
				Name:        blockLabelDisplayProp,
				Description: "Whether to display the block title. Required.",
				Type:        components.TypeBoolean,
				Default:     true,
			},
		},
	}

	for _, cv := range r.DefaultConfig {
		if cv.Key == blockLabelProp || cv.Key == blockLabelDisplayProp || t.Props.Has(cv.Key) {
			continue
		}
		t.Props = append(t.Props, components.PropSpec{
			Key:         cv.Key,
			Name:        cv.Key,
			Description: cv.Key + constants.BlockRequiredHint,
			Type:        inferType(cv.Value),
			Default:     plainJSON(cv.Value),
		})
	}
	return t, nil
}

// inferType guesses a prop type from a default value: booleans are
// boolean, numbers and numeric strings are number, everything else string.
func inferType(v any) components.PropType {
	switch t := v.(type) {
	case bool:
		return components.TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return components.TypeNumber
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && strings.TrimSpace(t) != "" {
			return components.TypeNumber
		}
	}
	return components.TypeString
}
