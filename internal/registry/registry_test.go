package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/internal/transport"
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/metadata"
)

const export = `{
  "components": [
    {"source": "sdc", "id": "sdc.theme.hero", "label": "Hero",
     "props": {"type": "object", "properties": {"title": {"type": "string", "examples": ["Hi"]}}},
     "slots": [{"key": "content", "title": "Content"}]},
    {"source": "block", "id": "block.menu", "label": "Menu",
     "default_config": [{"key": "depth", "value": 1}]}
  ]
}`

func TestFileRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))

	reg := NewFile(path)
	records, err := reg.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, components.SourceSchema, records[0].Kind())
	assert.Equal(t, "block.menu", records[1].ComponentID())

	d := metadata.New(reg).Discover(context.Background())
	assert.Equal(t, components.StatusComplete, d.Status)
	hero, ok := d.Lookup("sdc.theme.hero")
	require.True(t, ok)
	assert.Equal(t, 0, hero.SlotIndex("content"))
}

func TestFileRegistryErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFile(filepath.Join(dir, "missing.json")).Records(context.Background())
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"components": [{"source": "twig", "id": "x"}]}`), 0o644))
	_, err = NewFile(bad).Records(context.Background())
	assert.True(t, errors.IsValidationError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFile(bad).Records(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	d := metadata.New(NewFile(filepath.Join(dir, "missing.json"))).Discover(context.Background())
	assert.Equal(t, components.StatusFailed, d.Status)
}

func TestStatic(t *testing.T) {
	records, err := Static{metadata.NewBlockRecord("block.menu", "Menu")}.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHTTPRegistry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("denied"))
			return
		}
		_, _ = w.Write([]byte(export))
	}))
	t.Cleanup(srv.Close)

	reg := Open(srv.URL, transport.BearerAuth{Token: "tok"})
	require.IsType(t, &HTTP{}, reg)
	records, err := reg.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = Open(srv.URL, nil).Records(context.Background())
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "denied", apiErr.Message)

	d := metadata.New(Open(srv.URL, nil)).Discover(context.Background())
	assert.Equal(t, components.StatusFailed, d.Status)
}

func TestOpenFile(t *testing.T) {
	assert.IsType(t, &File{}, Open("registry.json", nil))
}
