package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/flatten"
	"github.com/agentstation/pagetree/pkg/nodepath"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestFormatters(t *testing.T) {
	entries := Entries{{
		ID:          "sdc.theme.card",
		Name:        "Card",
		Description: "A card",
		Props:       components.Props{{Key: "title", Type: components.TypeString}},
		Slots:       components.Slots{{Key: "body"}},
	}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, entries))
		out := buf.String()
		assert.Contains(t, out, "sdc.theme.card")
		assert.Contains(t, out, "title")
		assert.NotContains(t, out, "A card")
	})

	t.Run("wide", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatWide).Format(&buf, entries))
		assert.Contains(t, buf.String(), "A card")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON).Format(&buf, entries))
		assert.Contains(t, buf.String(), `"id": "sdc.theme.card"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML).Format(&buf, Regions{{Name: "content", NodePathPrefix: 1}}))
		assert.Contains(t, buf.String(), "name: content")
		assert.Contains(t, buf.String(), "nodePathPrefix: 1")
	})
}

func TestOperationsTable(t *testing.T) {
	result := flatten.NewResult([]flatten.Operation{
		{ID: "sdc.theme.card", NodePath: nodepath.Path{1}, FieldValues: map[string]any{"title": "A"}},
		{ID: "sdc.theme.text", NodePath: nodepath.Path{1, 1, 0}, FieldValues: map[string]any{}},
	}, "")

	data := Operations(*result).Table(true)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"1", "sdc.theme.card", "1", "ADD"}, data.Rows[0])
	assert.Equal(t, "1.1.0", data.Rows[1][0])
}

func TestSyncResultTable(t *testing.T) {
	result := pkgsync.Result{SourceResults: map[components.SourceKind]*pkgsync.SourceResult{
		components.SourceBlock:  {Kind: components.SourceBlock, Removed: []string{"block.menu"}},
		components.SourceSchema: {Kind: components.SourceSchema, Added: []string{"sdc.a", "sdc.b"}},
	}}

	data := SyncResult(result).Table(false)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"sdc", "2", "0", "0"}, data.Rows[0])
	assert.Equal(t, []string{"block", "0", "0", "1"}, data.Rows[1])

	wide := SyncResult(result).Table(true)
	assert.Equal(t, "sdc.a, sdc.b", wide.Rows[0][1])
}

func TestReflectionFallback(t *testing.T) {
	type row struct {
		SkipReason string `json:"skip_reason"`
		Count      int
	}
	data := (&TableFormatter{}).convertToTableData([]row{{"failed", 2}})
	require.NotNil(t, data)
	assert.Equal(t, []string{"Skip Reason", "Count"}, data.Headers)
	assert.Equal(t, [][]string{{"failed", "2"}}, data.Rows)

	assert.Nil(t, (&TableFormatter{}).convertToTableData(42))
}
