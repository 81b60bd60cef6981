package metadata

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
)

const heroSchema = `{
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "title": "Title", "description": "Headline text", "examples": ["Welcome"]},
    "attributes": {"type": "object"},
    "image": {"type": "object", "title": "Image", "description": "Hero image.", "examples": [{"src": "hero.png", "alt": "Hero"}]},
    "size": {"type": ["string", "null"], "enum": ["small", "large"], "default": "small"},
    "count": {"type": "integer", "default": 3},
    "link": {"type": "string", "format": "uri"}
  }
}`

func heroRecord() *SchemaRecord {
	rec := NewSchemaRecord("sdc.theme.hero", "Hero")
	rec.Group = "Layout"
	rec.Props = json.RawMessage(heroSchema)
	rec.Slots = []SchemaSlot{
		{Key: "header", Title: "Header", Description: "Top area"},
		{Key: "content"},
	}
	return rec
}

func TestSchemaNormalize(t *testing.T) {
	ct, err := heroRecord().normalize()
	require.NoError(t, err)

	assert.Equal(t, "sdc.theme.hero", ct.ID)
	assert.Equal(t, components.SourceSchema, ct.Source)
	assert.Equal(t, "Hero", ct.Label)
	assert.Equal(t, "Hero", ct.Description)
	assert.Equal(t, "Layout", ct.Group)

	assert.Equal(t, []string{"title", "image", "size", "count", "link"}, ct.Props.Keys(), "attributes skipped, document order kept")

	title, _ := ct.Props.Get("title")
	assert.Equal(t, "Title", title.Name)
	assert.Equal(t, "Headline text", title.Description)
	assert.Equal(t, components.TypeString, title.Type)
	assert.Equal(t, "Welcome", title.Default)
	assert.True(t, title.Required)

	image, _ := ct.Props.Get("image")
	assert.Equal(t, components.TypeNumber, image.Type)
	assert.Equal(t, constants.MediaReferenceDefault, image.Default)
	assert.Equal(t, "Hero image."+constants.MediaReferenceHint, image.Description)
	assert.False(t, image.Required)

	size, _ := ct.Props.Get("size")
	assert.Equal(t, "size", size.Name)
	assert.Equal(t, components.TypeString, size.Type)
	assert.Equal(t, []any{"small", "large"}, size.Enum)
	assert.Equal(t, "small", size.Default)
	assert.Equal(t, constants.NoDescription, size.Description)

	count, _ := ct.Props.Get("count")
	assert.Equal(t, components.TypeInteger, count.Type)
	assert.EqualValues(t, 3, count.Default)

	link, _ := ct.Props.Get("link")
	assert.Equal(t, "uri", link.Format)
	assert.Nil(t, link.Default)

	require.Len(t, ct.Slots, 2)
	assert.Equal(t, components.SlotSpec{Key: "header", Name: "Header", Description: "Top area"}, ct.Slots[0])
	assert.Equal(t, components.SlotSpec{Key: "content", Name: "content", Description: constants.NoDescription}, ct.Slots[1])
}

func TestSchemaFormatIsAnnotation(t *testing.T) {
	rec := NewSchemaRecord("sdc.theme.link", "Link")
	rec.Props = json.RawMessage(`{
  "type": "object",
  "properties": {
    "href": {"type": "string", "format": "canvas-link"},
    "meta": {"type": "object", "properties": {"at": {"type": "string", "format": "date-time"}}},
    "label": {"type": "string"}
  }
}`)

	ct, err := rec.normalize()
	require.NoError(t, err, "unknown formats must not reject the component")

	href, _ := ct.Props.Get("href")
	assert.Equal(t, "canvas-link", href.Format)
	meta, _ := ct.Props.Get("meta")
	assert.Empty(t, meta.Format, "nested formats belong to the nested property")
	label, _ := ct.Props.Get("label")
	assert.Empty(t, label.Format)
}

func TestSchemaNormalizeWithoutProps(t *testing.T) {
	rec := NewSchemaRecord("sdc.theme.spacer", "Spacer")
	rec.Description = "Vertical space"

	ct, err := rec.normalize()
	require.NoError(t, err)
	assert.Equal(t, "Vertical space", ct.Description)
	assert.Empty(t, ct.Props)
	assert.Empty(t, ct.Slots)
}

func TestSchemaNormalizeExternalRef(t *testing.T) {
	rec := NewSchemaRecord("sdc.theme.card", "Card")
	rec.Props = json.RawMessage(`{"type":"object","properties":{"img":{"$ref":"json-schema-definitions://canvas.module/image"},"title":{"type":"string"}}}`)

	ct, err := rec.normalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"img", "title"}, ct.Props.Keys())
}

func TestSchemaNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		props string
	}{
		{"not json", `{"type": `},
		{"bad keyword", `{"type": "object", "properties": {"a": {"type": 5}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewSchemaRecord("sdc.theme.bad", "Bad")
			rec.Props = json.RawMessage(tt.props)
			_, err := rec.normalize()
			assert.Error(t, err)
		})
	}
}

func TestDynamicNormalize(t *testing.T) {
	rec := NewDynamicRecord("js.banner", "Banner")
	rec.Props = []DynamicProp{
		{Key: "heading", JSONSchema: json.RawMessage(`{"type":"string"}`), Default: "Hi"},
		{Key: "tone", JSONSchema: json.RawMessage(`{"type":"string","enum":["calm","loud"]}`)},
		{Key: "href", JSONSchema: json.RawMessage(`{"type":"string","format":"uri-reference"}`)},
		{Key: "raw"},
	}
	rec.Slots = []DynamicSlot{{Key: "body", Title: "Body"}, {Key: "footer"}}

	ct, err := rec.normalize()
	require.NoError(t, err)

	assert.Equal(t, components.SourceDynamic, ct.Source)
	assert.Equal(t, "Banner", ct.Label)
	assert.Equal(t, "Banner", ct.Description)
	assert.Equal(t, []string{"heading", "tone", "href", "raw"}, ct.Props.Keys())

	heading, _ := ct.Props.Get("heading")
	assert.Equal(t, components.PropSpec{
		Key: "heading", Name: "heading", Description: "heading", Type: components.TypeString, Default: "Hi",
	}, heading)

	tone, _ := ct.Props.Get("tone")
	assert.Equal(t, []any{"calm", "loud"}, tone.Enum)
	assert.Equal(t, "", tone.Default)

	href, _ := ct.Props.Get("href")
	assert.Equal(t, "uri-reference", href.Format)

	raw, _ := ct.Props.Get("raw")
	assert.Equal(t, components.PropType(""), raw.Type)

	assert.Equal(t, components.Slots{
		{Key: "body", Name: "Body", Description: "body"},
		{Key: "footer", Name: "footer", Description: "footer"},
	}, ct.Slots)
}

func TestBlockNormalize(t *testing.T) {
	rec := NewBlockRecord("block.system_branding", "Site branding",
		ConfigValue{Key: "label", Value: "ignored"},
		ConfigValue{Key: "use_site_logo", Value: true},
		ConfigValue{Key: "label_display", Value: "visible"},
		ConfigValue{Key: "max_items", Value: float64(5)},
		ConfigValue{Key: "depth", Value: "2"},
		ConfigValue{Key: "mode", Value: "full"},
	)

	ct, err := rec.normalize()
	require.NoError(t, err)

	assert.Equal(t, components.SourceBlock, ct.Source)
	assert.Equal(t, "Site branding", ct.Description)
	assert.Equal(t, []string{"label", "label_display", "use_site_logo", "max_items", "depth", "mode"}, ct.Props.Keys())

	label, _ := ct.Props.Get("label")
	assert.Equal(t, "The block title. Required.", label.Description)
	assert.Equal(t, components.TypeString, label.Type)
	assert.Equal(t, "", label.Default)

	display, _ := ct.Props.Get("label_display")
	assert.Equal(t, components.TypeBoolean, display.Type)
	assert.Equal(t, true, display.Default)

	types := map[string]components.PropType{}
	for _, p := range ct.Props[2:] {
		types[p.Key] = p.Type
		assert.Equal(t, p.Key+constants.BlockRequiredHint, p.Description)
	}
	assert.Equal(t, map[string]components.PropType{
		"use_site_logo": components.TypeBoolean,
		"max_items":     components.TypeNumber,
		"depth":         components.TypeNumber,
		"mode":          components.TypeString,
	}, types)
	assert.Empty(t, ct.Slots)
}

func TestInferType(t *testing.T) {
	tests := []struct {
		in   any
		want components.PropType
	}{
		{true, components.TypeBoolean},
		{3, components.TypeNumber},
		{2.5, components.TypeNumber},
		{json.Number("7"), components.TypeNumber},
		{"12", components.TypeNumber},
		{" ", components.TypeString},
		{"", components.TypeString},
		{"abc", components.TypeString},
		{nil, components.TypeString},
		{[]any{1}, components.TypeString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferType(tt.in), "%v", tt.in)
	}
}

func TestDiscover(t *testing.T) {
	bad := NewSchemaRecord("sdc.theme.bad", "Bad")
	bad.Props = json.RawMessage(`{`)

	records := []Record{
		heroRecord(),
		bad,
		NewDynamicRecord("js.banner", "Banner"),
		NewBlockRecord("block.menu", "Menu"),
	}
	tl := logging.NewTestLogger(t)
	cat := New(RegistryFunc(func(context.Context) ([]Record, error) { return records, nil }), WithLogger(tl.Logger))

	d := cat.Discover(context.Background())
	assert.Equal(t, components.StatusComplete, d.Status)
	assert.True(t, d.OK())
	assert.Equal(t, 3, d.Count())
	assert.Equal(t, []components.SourceKind{components.SourceSchema, components.SourceDynamic, components.SourceBlock}, d.Kinds())
	assert.Equal(t, components.SourceSchema.DefaultLabel(), d.Groups[components.SourceSchema].Label)

	_, ok := d.Lookup("sdc.theme.bad")
	assert.False(t, ok)
	assert.True(t, tl.Contains("sdc.theme.bad"))
}

func TestDiscoverUsesSourceLabel(t *testing.T) {
	rec := NewBlockRecord("block.menu", "Menu")
	rec.Source = "Core blocks"

	d := New(RegistryFunc(func(context.Context) ([]Record, error) { return []Record{rec}, nil })).Discover(context.Background())
	assert.Equal(t, "Core blocks", d.Groups[components.SourceBlock].Label)
}

func TestDiscoverFailures(t *testing.T) {
	t.Run("registry error", func(t *testing.T) {
		cat := New(RegistryFunc(func(context.Context) ([]Record, error) {
			return nil, errors.New("connection refused")
		}), WithName("site"), WithLogger(logging.NewNopLogger()))

		d := cat.Discover(context.Background())
		assert.Equal(t, components.StatusFailed, d.Status)
		assert.Empty(t, d.Groups)
		assert.True(t, errors.IsDiscoveryFailed(d.Err))
		assert.Contains(t, d.Err.Error(), "site")
	})

	t.Run("no registry", func(t *testing.T) {
		d := New(nil).Discover(context.Background())
		assert.Equal(t, components.StatusFailed, d.Status)
	})

	t.Run("empty", func(t *testing.T) {
		d := New(RegistryFunc(func(context.Context) ([]Record, error) { return nil, nil })).Discover(context.Background())
		assert.Equal(t, components.StatusEmpty, d.Status)
		assert.False(t, d.OK())
		assert.NoError(t, d.Err)
	})

	t.Run("timeout", func(t *testing.T) {
		cat := New(RegistryFunc(func(ctx context.Context) ([]Record, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}), WithTimeout(1), WithLogger(logging.NewNopLogger()))
		d := cat.Discover(context.Background())
		assert.Equal(t, components.StatusFailed, d.Status)
		assert.ErrorIs(t, d.Err, context.DeadlineExceeded)
	})
}

func TestRecordsRoundTrip(t *testing.T) {
	dyn := NewDynamicRecord("js.banner", "Banner")
	dyn.Props = []DynamicProp{{Key: "heading", JSONSchema: json.RawMessage(`{"type":"string"}`)}}
	records := []Record{heroRecord(), dyn, NewBlockRecord("block.menu", "Menu", ConfigValue{Key: "depth", Value: "1"})}

	data, err := EncodeRecords(records)
	require.NoError(t, err)

	decoded, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	for i := range records {
		assert.Equal(t, records[i].ComponentID(), decoded[i].ComponentID())
		assert.Equal(t, records[i].Kind(), decoded[i].Kind())

		want, err := records[i].normalize()
		require.NoError(t, err)
		got, err := decoded[i].normalize()
		require.NoError(t, err)
		assert.Equal(t, want.Props.Keys(), got.Props.Keys())
		assert.Equal(t, want.Slots, got.Slots)
	}
}

func TestDecodeRecordsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"components": [`},
		{"unknown source", `{"components": [{"source": "twig", "id": "x"}]}`},
		{"missing id", `{"components": [{"source": "block"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}

	recs, err := DecodeRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
