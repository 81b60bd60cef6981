package components

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// orderedYAML renders keyed items as an ordered YAML mapping.
func orderedYAML[T any](items []T, key func(T) string) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(items))
	for _, item := range items {
		out = append(out, yaml.MapItem{Key: key(item), Value: item})
	}
	return out
}

// orderedJSON renders keyed items as a JSON object preserving item order.
func orderedJSON[T any](items []T, key func(T) string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key(item))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeOrdered reads an ordered YAML mapping into keyed items. A scalar
// string in place of the mapping (the "No props" / "No slots" markers)
// decodes to an empty list.
func decodeOrdered[T any](unmarshal func(any) error, setKey func(*T, string)) ([]T, error) {
	var raw yaml.MapSlice
	if err := unmarshal(&raw); err != nil {
		var marker string
		if markerErr := unmarshal(&marker); markerErr == nil {
			return nil, nil
		}
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for _, item := range raw {
		key := fmt.Sprint(item.Key)
		var value T
		if item.Value != nil {
			data, err := yaml.Marshal(item.Value)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", key, err)
			}
			if err := yaml.Unmarshal(data, &value); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", key, err)
			}
		}
		setKey(&value, key)
		out = append(out, value)
	}
	return out, nil
}
