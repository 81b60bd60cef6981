package catalog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

const formatVersionKey = "format_version"

// Encode serializes the catalog in the persisted layout:
//
//	format_version: 1.0.0
//	<kind>:
//	  enabled: true
//	  data: <YAML document of id -> entry>
func Encode(c Catalog) ([]byte, error) {
	doc := yaml.MapSlice{{Key: formatVersionKey, Value: constants.CatalogFormatVersion}}
	for _, kind := range c.Kinds() {
		src := c[kind]
		data, err := encodeEntries(src)
		if err != nil {
			return nil, fmt.Errorf("encoding %s entries: %w", kind, err)
		}
		doc = append(doc, yaml.MapItem{Key: kind.String(), Value: yaml.MapSlice{
			{Key: "enabled", Value: src.Enabled},
			{Key: "data", Value: data},
		}})
	}
	return yaml.Marshal(doc)
}

func encodeEntries(src Source) (string, error) {
	if len(src.Entries) == 0 {
		return "", nil
	}
	entries := make(yaml.MapSlice, 0, len(src.Entries))
	for _, id := range src.IDs() {
		entries = append(entries, yaml.MapItem{Key: id, Value: src.Entries[id]})
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode reads a persisted catalog. Documents without a format version are
// read as version 1; newer major versions are rejected with
// errors.ErrUnsupportedVersion. Empty input yields an empty catalog.
func Decode(data []byte) (Catalog, error) {
	cat := Catalog{}
	if len(data) == 0 {
		return cat, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", "catalog", err)
	}

	if v, ok := raw[formatVersionKey]; ok {
		if err := checkFormatVersion(fmt.Sprint(v)); err != nil {
			return nil, err
		}
	}

	for key, value := range raw {
		if key == formatVersionKey {
			continue
		}
		src, err := decodeSource(value)
		if err != nil {
			return nil, fmt.Errorf("decoding source %s: %w", key, err)
		}
		cat[components.SourceKind(key)] = src
	}
	return cat, nil
}

func checkFormatVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return errors.NewValidationError(formatVersionKey, v, err.Error())
	}
	constraint, err := semver.NewConstraint(constants.CatalogFormatConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: catalog format %s (supported %s)", errors.ErrUnsupportedVersion, v, constants.CatalogFormatConstraint)
	}
	return nil
}

func decodeSource(value any) (Source, error) {
	src := Source{Entries: map[string]Entry{}}
	section, ok := value.(map[string]any)
	if !ok {
		return src, errors.NewValidationError("source", value, "must be a mapping with enabled and data")
	}
	if enabled, ok := section["enabled"].(bool); ok {
		src.Enabled = enabled
	}

	var data []byte
	switch d := section["data"].(type) {
	case nil:
		return src, nil
	case string:
		if strings.TrimSpace(d) == "" {
			return src, nil
		}
		data = []byte(d)
	default:
		// Hand-edited catalogs may inline the entries instead of a string.
		b, err := yaml.Marshal(d)
		if err != nil {
			return src, err
		}
		data = b
	}

	var entries map[string]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return src, errors.WrapParse("yaml", "catalog data", err)
	}
	for id, e := range entries {
		if e.ID == "" {
			e.ID = id
		}
		src.Entries[id] = e
	}
	return src, nil
}
