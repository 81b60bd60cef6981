package nodepath

import (
	"strings"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Placement says where new siblings go relative to the reference path.
type Placement string

const (
	// Below inserts after the reference node.
	Below Placement = "below"
	// Above inserts at the reference node, pushing it down.
	Above Placement = "above"
)

// ParsePlacement reads a placement name. The empty string means Below.
func ParsePlacement(s string) (Placement, error) {
	switch Placement(strings.ToLower(strings.TrimSpace(s))) {
	case "", Below:
		return Below, nil
	case Above:
		return Above, nil
	default:
		return "", errors.NewValidationError("placement", s, `must be "above" or "below"`)
	}
}

// String returns the placement name.
func (p Placement) String() string {
	return string(p)
}

// Base returns the address of the first sibling placed relative to ref.
// An empty reference yields Root regardless of placement.
func Base(ref Path, placement Placement) Path {
	if len(ref) == 0 {
		return Root.Clone()
	}
	if placement == Above {
		return ref.Clone()
	}
	return ref.WithLast(ref.Last() + 1)
}

// Allocate returns count consecutive sibling addresses for a run of nodes
// placed relative to ref. Only the final element advances between siblings.
func Allocate(ref Path, placement Placement, count int) ([]Path, error) {
	if count < 0 {
		return nil, errors.NewValidationError("count", count, "must be non-negative")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if placement != Above && placement != Below {
		return nil, errors.NewValidationError("placement", string(placement), `must be "above" or "below"`)
	}

	base := Base(ref, placement)
	out := make([]Path, count)
	for i := range out {
		out[i] = base.WithLast(base.Last() + i)
	}
	return out, nil
}
