package pagetree

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/internal/registry"
	"github.com/agentstation/pagetree/internal/store"
	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
	"github.com/agentstation/pagetree/pkg/metadata"
	"github.com/agentstation/pagetree/pkg/nodepath"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

// mutableRegistry lets a test change what the registry answers.
type mutableRegistry struct {
	mu      sync.Mutex
	records []metadata.Record
	err     error
}

func (r *mutableRegistry) Records(context.Context) ([]metadata.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records, r.err
}

func (r *mutableRegistry) set(records []metadata.Record, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records, r.err = records, err
}

func sectionRecord(titleDefault string) *metadata.SchemaRecord {
	rec := metadata.NewSchemaRecord("sdc.theme.section", "Section")
	rec.Props = json.RawMessage(`{"type":"object","properties":{"title":{"type":"string","description":"Section title","examples":["` + titleDefault + `"]}}}`)
	rec.Slots = []metadata.SchemaSlot{{Key: "header"}, {Key: "aside"}, {Key: "body"}}
	return rec
}

func records(titleDefault string) []metadata.Record {
	return []metadata.Record{
		sectionRecord(titleDefault),
		metadata.NewSchemaRecord("sdc.theme.heading", "Heading"),
		metadata.NewBlockRecord("block.menu", "Menu"),
	}
}

func newTestClient(t *testing.T, reg metadata.Registry, opts ...Option) Client {
	t.Helper()
	opts = append([]Option{WithRegistry(reg), WithLogger(logging.NewTestLogger(t).Logger)}, opts...)
	c, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

const document = `
reference_nodepath: [0]
components:
  - sdc.theme.section:
      props: {title: First}
      slots:
        body:
          - sdc.theme.heading: {props: {text: One}}
  - sdc.theme.section:
      props: {title: Second}
      slots:
        body:
          - sdc.theme.heading: {props: {text: Two}}
`

func TestCompile(t *testing.T) {
	c := newTestClient(t, registry.Static(records("Hello")))

	result, err := c.Compile(context.Background(), []byte(document))
	require.NoError(t, err)

	var got []nodepath.Path
	for _, op := range result.Components() {
		got = append(got, op.NodePath)
	}
	assert.Equal(t, []nodepath.Path{{1}, {1, 2, 0}, {2}, {2, 2, 0}}, got)
}

func TestCompileStrictSlots(t *testing.T) {
	reg := &mutableRegistry{}
	reg.set(nil, errors.New("registry down"))

	c := newTestClient(t, reg)
	_, err := c.Compile(context.Background(), []byte(document))
	var slotErr *errors.UnresolvedSlotError
	require.ErrorAs(t, err, &slotErr)
	assert.True(t, slotErr.UnknownType)

	c = newTestClient(t, reg, WithSlotFallback(true))
	result, err := c.Compile(context.Background(), []byte(document))
	require.NoError(t, err)
	assert.Len(t, result.Components(), 4)
}

func TestCompileRegions(t *testing.T) {
	c := newTestClient(t, registry.Static(records("Hello")))
	layout := []byte(`{"layout":{"header":{"nodePathPrefix":[0]},"content":{"nodePathPrefix":[1]}}}`)
	doc := []byte(`
content:
  - sdc.theme.heading: {}
  - sdc.theme.heading: {}
header:
  - sdc.theme.heading: {}
`)

	result, err := c.CompileRegions(context.Background(), doc, layout, nil)
	require.NoError(t, err)
	var got []nodepath.Path
	for _, op := range result.Components() {
		got = append(got, op.NodePath)
	}
	assert.Equal(t, []nodepath.Path{{1, 0}, {1, 1}, {0, 0}}, got)

	regs, err := c.Regions(layout, map[string]string{"content": "Main content"})
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "header", regs[0].Name)
	assert.Equal(t, "Main content", regs[1].Description)
}

func TestSyncLifecycle(t *testing.T) {
	ctx := context.Background()
	reg := &mutableRegistry{}
	reg.set(records("Hello"), nil)
	kv := store.NewMemory()
	c := newTestClient(t, reg, WithStore(kv))

	var added, updated, removed []string
	c.OnEntryAdded(func(_ components.SourceKind, e catalog.Entry) { added = append(added, e.ID) })
	c.OnEntryUpdated(func(_ components.SourceKind, _, e catalog.Entry) { updated = append(updated, e.ID) })
	c.OnEntryRemoved(func(_ components.SourceKind, e catalog.Entry) { removed = append(removed, e.ID) })

	// First sync seeds the store.
	res, err := c.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Saved)
	assert.ElementsMatch(t, []string{"sdc.theme.section", "sdc.theme.heading", "block.menu"}, added)

	// A person curates a description directly in the store.
	s := store.New(kv, "")
	cat, rev, err := s.Load(ctx)
	require.NoError(t, err)
	entry := cat[components.SourceSchema].Entries["sdc.theme.section"]
	entry.Props[0].Description = "Curated by an editor"
	cat[components.SourceSchema].Entries["sdc.theme.section"] = entry
	_, err = s.Save(ctx, cat, rev)
	require.NoError(t, err)

	// Nothing changed upstream: no write.
	res, err = c.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, res.Saved)

	// Upstream default changes: written, curated text kept.
	reg.set(records("Welcome"), nil)
	res, err = c.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"sdc.theme.section"}, updated)

	cat, err = c.Catalog(ctx)
	require.NoError(t, err)
	title := cat[components.SourceSchema].Entries["sdc.theme.section"].Props[0]
	assert.Equal(t, "Curated by an editor", title.Description)
	assert.Equal(t, "Welcome", title.Default)

	// Registry outage: skipped, store untouched.
	reg.set(nil, errors.New("timeout"))
	res, err = c.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.False(t, res.Saved)
	after, err := c.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, cat.Count(), after.Count())

	// Heading disappears.
	reg.set([]metadata.Record{sectionRecord("Welcome"), metadata.NewBlockRecord("block.menu", "Menu")}, nil)
	_, err = c.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sdc.theme.heading"}, removed)
}

func TestSyncDryRun(t *testing.T) {
	kv := store.NewMemory()
	c := newTestClient(t, registry.Static(records("Hello")), WithStore(kv))

	fired := false
	c.OnEntryAdded(func(components.SourceKind, catalog.Entry) { fired = true })

	res, err := c.Sync(context.Background(), pkgsync.WithDryRun(true))
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.False(t, res.Saved)
	assert.False(t, fired)

	_, err = kv.Get(context.Background(), "pagetree.component_context")
	assert.True(t, errors.IsNotFound(err))
}

func TestSyncForce(t *testing.T) {
	c := newTestClient(t, registry.Static(records("Hello")))
	first, err := c.Sync(context.Background())
	require.NoError(t, err)

	res, err := c.Sync(context.Background(), pkgsync.WithForce(true))
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.True(t, res.Saved)
	assert.NotEqual(t, first.Revision, res.Revision)
}

// racingKV lets another writer in between the read and the write.
type racingKV struct {
	store.KV
	once sync.Once
}

func (r *racingKV) Put(ctx context.Context, key string, data []byte, revision string) (string, error) {
	r.once.Do(func() {
		_, _ = r.KV.Put(ctx, key, []byte("format_version: 1.0.0\n"), revision)
	})
	return r.KV.Put(ctx, key, data, revision)
}

func TestSyncConflict(t *testing.T) {
	c := newTestClient(t, registry.Static(records("Hello")), WithStore(&racingKV{KV: store.NewMemory()}))
	_, err := c.Sync(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestSyncEmptyDiscovery(t *testing.T) {
	ctx := context.Background()
	reg := &mutableRegistry{}
	reg.set(records("Hello"), nil)
	kv := store.NewMemory()

	c := newTestClient(t, reg, WithStore(kv))
	_, err := c.Sync(ctx)
	require.NoError(t, err)

	reg.set(nil, nil)
	res, err := c.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	c = newTestClient(t, reg, WithStore(kv), WithAllowEmptyDiscovery(true))
	res, err = c.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, 3, len(res.Changeset.Removed()))
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, registry.Static(records("Hello")))

	// Before any sync the context comes from live discovery alone.
	entries, err := c.Context(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = c.Sync(ctx)
	require.NoError(t, err)

	e, err := c.ComponentContext(ctx, "sdc.theme.section")
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "aside", "body"}, e.Slots.Keys())

	_, err = c.ComponentContext(ctx, "sdc.theme.missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestAutoSync(t *testing.T) {
	kv := store.NewMemory()
	c := newTestClient(t, registry.Static(records("Hello")), WithStore(kv))
	assert.Error(t, c.AutoSyncOn(), "no interval configured")

	c = newTestClient(t, registry.Static(records("Hello")), WithStore(kv), WithAutoSync(10*time.Millisecond), WithLogger(logging.NewNopLogger()))
	require.NoError(t, c.AutoSyncOn())
	defer func() { require.NoError(t, c.AutoSyncOff()) }()

	assert.Eventually(t, func() bool {
		_, err := kv.Get(context.Background(), "pagetree.component_context")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}
