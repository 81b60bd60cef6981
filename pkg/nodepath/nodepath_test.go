package nodepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/errors"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name      string
		ref       Path
		placement Placement
		count     int
		want      []Path
	}{
		{"below top level", Path{3}, Below, 3, []Path{{4}, {5}, {6}}},
		{"above top level", Path{3}, Above, 3, []Path{{3}, {4}, {5}}},
		{"below nested", Path{1, 2, 0}, Below, 2, []Path{{1, 2, 1}, {1, 2, 2}}},
		{"above nested", Path{1, 2, 4}, Above, 1, []Path{{1, 2, 4}}},
		{"empty reference", nil, Below, 2, []Path{{0}, {1}}},
		{"empty reference above", Path{}, Above, 1, []Path{{0}}},
		{"zero count", Path{7}, Below, 0, []Path{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.ref, tt.placement, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocateStrictlyIncreasing(t *testing.T) {
	for _, placement := range []Placement{Above, Below} {
		for k := 0; k < 5; k++ {
			paths, err := Allocate(Path{2, 1, k}, placement, 10)
			require.NoError(t, err)
			for i := 1; i < len(paths); i++ {
				assert.Equal(t, paths[i-1].Last()+1, paths[i].Last())
				assert.Equal(t, paths[i-1][:2], paths[i][:2])
			}
		}
	}
}

func TestAllocateDoesNotAliasReference(t *testing.T) {
	ref := Path{5}
	paths, err := Allocate(ref, Above, 2)
	require.NoError(t, err)
	paths[0][0] = 99
	assert.Equal(t, Path{5}, ref)
}

func TestAllocateErrors(t *testing.T) {
	_, err := Allocate(Path{-1}, Below, 1)
	assert.True(t, errors.IsValidationError(err))

	_, err = Allocate(Path{1}, Placement("sideways"), 1)
	assert.True(t, errors.IsValidationError(err))

	_, err = Allocate(Path{1}, Below, -2)
	assert.True(t, errors.IsValidationError(err))
}

func TestParsePlacement(t *testing.T) {
	p, err := ParsePlacement("")
	require.NoError(t, err)
	assert.Equal(t, Below, p)

	p, err = ParsePlacement(" ABOVE ")
	require.NoError(t, err)
	assert.Equal(t, Above, p)

	_, err = ParsePlacement("left")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestPathHelpers(t *testing.T) {
	p := Path{1}
	assert.Equal(t, Path{1, 2, 0}, p.Child(2, 0))
	assert.Equal(t, Path{1}, p, "Child must not modify the parent")
	assert.Equal(t, "1.2.0", p.Child(2, 0).String())
	assert.Equal(t, 0, Path(nil).Last())

	assert.Equal(t, -1, Path{1}.Compare(Path{1, 0}))
	assert.Equal(t, 1, Path{2}.Compare(Path{1, 9}))
	assert.True(t, Path{1, 2}.Equal(Path{1, 2}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "1.2.0", want: Path{1, 2, 0}},
		{in: "1, 2", want: Path{1, 2}},
		{in: "3", want: Path{3}},
		{in: "1.x", wantErr: true},
		{in: "1.-2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
