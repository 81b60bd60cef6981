package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
)

// Export is the JSON document a registry export is written as:
//
//	{"components": [{"source": "sdc", "id": "...", ...}, ...]}
//
// Each element carries a "source" discriminator naming its record type.
type Export struct {
	Components []json.RawMessage `json:"components"`
}

// DecodeRecords decodes a registry export into records.
func DecodeRecords(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	records := make([]Record, 0, len(export.Components))
	for i, raw := range export.Components {
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (Record, error) {
	var probe struct {
		Source components.SourceKind `json:"source"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	var rec Record
	switch probe.Source {
	case components.SourceSchema:
		rec = &SchemaRecord{}
	case components.SourceDynamic:
		rec = &DynamicRecord{}
	case components.SourceBlock:
		rec = &BlockRecord{}
	default:
		return nil, errors.NewValidationError("source", probe.Source, fmt.Sprintf("unknown component source %q", probe.Source))
	}
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if rec.ComponentID() == "" {
		return nil, errors.NewValidationError("id", nil, "component id is required")
	}
	return rec, nil
}

// EncodeRecords writes records in the export layout DecodeRecords reads.
func EncodeRecords(records []Record) ([]byte, error) {
	export := Export{Components: make([]json.RawMessage, 0, len(records))}
	for _, rec := range records {
		body, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", rec.ComponentID(), err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		fields["source"], _ = json.Marshal(rec.Kind())
		body, err = json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		export.Components = append(export.Components, body)
	}
	return json.MarshalIndent(export, "", "  ")
}
