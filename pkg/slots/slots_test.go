package slots_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/components"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/slots"
)

func discovery() components.Discovery {
	return components.NewDiscovery(components.ComponentType{
		ID:     "sdc.theme.card",
		Source: components.SourceSchema,
		Slots: components.Slots{
			{Key: "header"},
			{Key: "media"},
			{Key: "body"},
		},
	})
}

func TestResolve(t *testing.T) {
	r := slots.NewResolver(discovery())

	tests := []struct {
		slot string
		want int
	}{
		{"header", 0},
		{"media", 1},
		{"body", 2},
	}
	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			got, err := r.Resolve("sdc.theme.card", tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStrict(t *testing.T) {
	r := slots.NewResolver(discovery())

	_, err := r.Resolve("sdc.theme.card", "footer")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	var slotErr *errors.UnresolvedSlotError
	require.ErrorAs(t, err, &slotErr)
	assert.False(t, slotErr.UnknownType)
	assert.Equal(t, "footer", slotErr.Slot)

	_, err = r.Resolve("sdc.theme.missing", "body")
	require.ErrorAs(t, err, &slotErr)
	assert.True(t, slotErr.UnknownType)
}

func TestResolveFallback(t *testing.T) {
	r := slots.NewResolver(discovery(), slots.WithFallback(true))
	assert.True(t, r.Fallback())

	got, err := r.Resolve("sdc.theme.card", "footer")
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = r.Resolve("unknown", "body")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestResolveNilTypes(t *testing.T) {
	_, err := slots.NewResolver(nil).Resolve("sdc.theme.card", "body")
	assert.True(t, errors.IsNotFound(err))
}
