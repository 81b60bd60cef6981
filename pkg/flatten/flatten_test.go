package flatten_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/flatten"
	"github.com/agentstation/pagetree/pkg/logging"
	"github.com/agentstation/pagetree/pkg/nodepath"
	"github.com/agentstation/pagetree/pkg/regions"
	"github.com/agentstation/pagetree/pkg/slots"
)

// section declares body as its third slot.
func testTypes() components.Discovery {
	return components.NewDiscovery(
		components.ComponentType{
			ID:     "sdc.theme.section",
			Source: components.SourceSchema,
			Slots:  components.Slots{{Key: "header"}, {Key: "aside"}, {Key: "body"}},
		},
		components.ComponentType{
			ID:     "sdc.theme.heading",
			Source: components.SourceSchema,
		},
		components.ComponentType{
			ID:     "sdc.theme.columns",
			Source: components.SourceSchema,
			Slots:  components.Slots{{Key: "left"}, {Key: "right"}},
		},
	)
}

func newFlattener(t *testing.T, opts ...slots.Option) *flatten.Flattener {
	tl := logging.NewTestLogger(t)
	return flatten.New(slots.NewResolver(testTypes(), opts...), flatten.WithLogger(tl.Logger))
}

func paths(ops []flatten.Operation) []nodepath.Path {
	out := make([]nodepath.Path, len(ops))
	for i, op := range ops {
		out[i] = op.NodePath
	}
	return out
}

func TestCompileNestedScenario(t *testing.T) {
	doc, err := flatten.ParseDocument([]byte(`
reference_nodepath: [0]
placement: below
components:
  - sdc.theme.section:
      props:
        title: First
      slots:
        body:
          - sdc.theme.heading:
              props:
                text: One
  - sdc.theme.section:
      props:
        title: Second
      slots:
        body:
          - sdc.theme.heading:
              props:
                text: Two
`))
	require.NoError(t, err)

	result, err := newFlattener(t).Compile(doc)
	require.NoError(t, err)

	ops := result.Components()
	assert.Equal(t, []nodepath.Path{{1}, {1, 2, 0}, {2}, {2, 2, 0}}, paths(ops))
	assert.Equal(t, "sdc.theme.heading", ops[1].ID)
	assert.Equal(t, map[string]any{"text": "Two"}, ops[3].FieldValues)
	assert.Equal(t, constants.DefaultMessage, result.Message)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, "ADD", result.Operations[0].Operation)
}

func TestFlattenPlacement(t *testing.T) {
	nodes := []flatten.Node{{TypeID: "sdc.theme.heading"}, {TypeID: "sdc.theme.heading"}, {TypeID: "sdc.theme.heading"}}
	f := newFlattener(t)

	below, err := f.Flatten(nodes, nodepath.Path{4}, nodepath.Below)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{5}, {6}, {7}}, paths(below))

	above, err := f.Flatten(nodes, nodepath.Path{4}, nodepath.Above)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{4}, {5}, {6}}, paths(above))

	for _, op := range below {
		assert.NotNil(t, op.FieldValues)
	}
}

func TestFlattenDeepNestingIgnoresPlacement(t *testing.T) {
	nodes := []flatten.Node{{
		TypeID: "sdc.theme.columns",
		Slots: []flatten.Slot{
			{Name: "right", Children: []flatten.Node{
				{TypeID: "sdc.theme.section", Slots: []flatten.Slot{
					{Name: "body", Children: []flatten.Node{{TypeID: "sdc.theme.heading"}, {TypeID: "sdc.theme.heading"}}},
				}},
			}},
			{Name: "left", Children: []flatten.Node{{TypeID: "sdc.theme.heading"}}},
		},
	}}

	ops, err := newFlattener(t).Flatten(nodes, nodepath.Path{3, 0, 1}, nodepath.Above)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{
		{3, 0, 1},
		{3, 0, 1, 1, 0},
		{3, 0, 1, 1, 0, 2, 0},
		{3, 0, 1, 1, 0, 2, 1},
		{3, 0, 1, 0, 0},
	}, paths(ops))
}

func TestFlattenUnresolvedSlot(t *testing.T) {
	nodes := []flatten.Node{{
		TypeID: "sdc.theme.section",
		Slots:  []flatten.Slot{{Name: "footer", Children: []flatten.Node{{TypeID: "sdc.theme.heading"}}}},
	}}

	_, err := newFlattener(t).Flatten(nodes, nodepath.Path{0}, nodepath.Below)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	ops, err := newFlattener(t, slots.WithFallback(true)).Flatten(nodes, nodepath.Path{0}, nodepath.Below)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{1}, {1, 0, 0}}, paths(ops))
}

func TestParseDocumentSkipsMalformedInput(t *testing.T) {
	doc, err := flatten.ParseDocument([]byte(`
components:
  - just a string
  - sdc.theme.section:
      slots:
        header: not a list
        aside: []
        body:
          - sdc.theme.heading: ~
`))
	require.NoError(t, err)
	require.Len(t, doc.Components, 1)

	assert.Nil(t, doc.ReferenceNodePath)
	assert.Equal(t, nodepath.Below, doc.Placement)
	assert.Equal(t, constants.DefaultMessage, doc.Message)

	result, err := newFlattener(t).Compile(doc)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{0}, {0, 2, 0}}, paths(result.Components()))
	assert.Equal(t, map[string]any{}, result.Components()[1].FieldValues)
}

func TestParseDocumentJSON(t *testing.T) {
	doc, err := flatten.ParseDocument([]byte(`{
  "reference_nodepath": [2, 1],
  "placement": "above",
  "message": "Added a hero",
  "components": [
    {"sdc.theme.heading": {"props": {"text": "Hi", "level": 2, "meta": {"a": [1, "b"]}}}},
    {"sdc.theme.heading": {}, "sdc.theme.section": {}}
  ]
}`))
	require.NoError(t, err)
	assert.Equal(t, nodepath.Path{2, 1}, doc.ReferenceNodePath)
	assert.Equal(t, nodepath.Above, doc.Placement)
	assert.Equal(t, "Added a hero", doc.Message)
	require.Len(t, doc.Components, 3)
	assert.Equal(t, "sdc.theme.section", doc.Components[2].TypeID)

	meta, ok := doc.Components[0].Props["meta"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, meta["a"], 2)

	result, err := newFlattener(t).Compile(doc)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{2, 1}, {2, 2}, {2, 3}}, paths(result.Components()))

	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"nodePath":[2,1]`)
	assert.Contains(t, string(out), `"fieldValues":{`)
	assert.Contains(t, string(out), `"operation":"ADD"`)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not a mapping", "- a\n- b\n"},
		{"bad placement", "placement: sideways\n"},
		{"bad reference", "reference_nodepath: [1, x]\n"},
		{"negative reference", "reference_nodepath: [-1]\n"},
		{"invalid yaml", "components: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flatten.ParseDocument([]byte(tt.in))
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestFlattenRegions(t *testing.T) {
	doc, err := flatten.ParseRegionDocument([]byte(`
header:
  - sdc.theme.heading:
      props: {text: Logo}
content:
  - sdc.theme.section:
      slots:
        body:
          - sdc.theme.heading: {}
  - sdc.theme.heading: {}
footer: nothing here
`))
	require.NoError(t, err)
	require.Len(t, doc.Regions, 2)

	idx := regions.Index{"header": 0, "content": 1}
	ops, err := newFlattener(t).FlattenRegions(doc, idx, nil)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{0, 0}, {1, 0}, {1, 0, 2, 0}, {1, 1}}, paths(ops))
}

func TestFlattenRegionsWithReference(t *testing.T) {
	doc := &flatten.RegionDocument{Regions: []flatten.Region{
		{Name: "header", Components: []flatten.Node{{TypeID: "sdc.theme.heading"}}},
		{Name: "content", Components: []flatten.Node{{TypeID: "sdc.theme.heading"}, {TypeID: "sdc.theme.heading"}}},
	}}

	result, err := newFlattener(t).CompileRegions(doc, nil, nodepath.Path{1, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{1, 0, 4}, {1, 0, 5}, {1, 0, 6}}, paths(result.Components()))
}

func TestFlattenRegionsUnknownRegion(t *testing.T) {
	doc := &flatten.RegionDocument{Regions: []flatten.Region{
		{Name: "sidebar", Components: []flatten.Node{{TypeID: "sdc.theme.heading"}}},
	}}
	idx := regions.Index{"content": 1}

	_, err := newFlattener(t).FlattenRegions(doc, idx, nil)
	var regionErr *errors.UnresolvedRegionError
	require.ErrorAs(t, err, &regionErr)
	assert.Equal(t, []string{"content"}, regionErr.Available)

	f := flatten.New(slots.NewResolver(testTypes()), flatten.WithRegionFallback(true), flatten.WithLogger(logging.NewNopLogger()))
	ops, err := f.FlattenRegions(doc, idx, nil)
	require.NoError(t, err)
	assert.Equal(t, []nodepath.Path{{0, 0}}, paths(ops))
}

func TestCompileNilDocument(t *testing.T) {
	result, err := newFlattener(t).Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Components())
	assert.NotNil(t, result.Operations[0].Components)
}
