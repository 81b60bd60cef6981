package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := NewError("Sync failed").WithError(fmt.Errorf("store unavailable"))
	assert.Equal(t, "✗ Sync failed: store unavailable", a.String())
	assert.Equal(t, "✓ Saved", NewSuccess("Saved").String())
	assert.Equal(t, "warning", LevelWarning.String())
}

func TestFormatWriter(t *testing.T) {
	alert := NewWarning("Sync skipped").WithDetails("discovery failed", "cached catalog kept")

	t.Run("table without colour", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatTable).WriteAlert(alert))
		assert.Equal(t, "! Sync skipped\n   discovery failed\n   cached catalog kept\n", buf.String())
	})

	t.Run("coloured", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewFormatWriter(&buf, output.FormatTable).WithConfig(WriterConfig{UseColor: true})
		require.NoError(t, w.WriteAlert(alert))
		assert.Contains(t, buf.String(), "\x1b[")
		assert.NotContains(t, buf.String(), "discovery failed")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatJSON).WriteAlert(alert))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "warning", got["level"])
		assert.Equal(t, "Sync skipped", got["message"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatWriter(&buf, output.FormatYAML).WriteAlert(alert))
		assert.Contains(t, buf.String(), "level: warning")
	})
}
