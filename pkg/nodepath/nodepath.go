// Package nodepath allocates tree addresses ("node paths") for components
// inserted into a page. A path is an ordered list of non-negative integers;
// a child's path is always its parent's path followed by the slot index and
// the child's position inside that slot.
package nodepath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Path is a tree address.
type Path []int

// Root is the base used when no reference path is supplied.
var Root = Path{0}

// Clone returns a copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Child returns the address of the index-th child in slot of p.
func (p Path) Child(slot, index int) Path {
	out := make(Path, 0, len(p)+2)
	out = append(out, p...)
	return append(out, slot, index)
}

// Last returns the final element of p, or 0 for an empty path.
func (p Path) Last() int {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

// WithLast returns a copy of p with its final element replaced.
func (p Path) WithLast(v int) Path {
	if len(p) == 0 {
		return Path{v}
	}
	out := p.Clone()
	out[len(out)-1] = v
	return out
}

// Validate rejects negative elements.
func (p Path) Validate() error {
	for i, v := range p {
		if v < 0 {
			return errors.NewValidationError(fmt.Sprintf("nodePath[%d]", i), v, "must be non-negative")
		}
	}
	return nil
}

// String renders p as "1.2.0".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Parse reads a path written as "1.2.0" or "1,2,0". Blank input yields an
// empty path.
func Parse(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == ',' })
	p := make(Path, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.WrapValidation("nodePath", fmt.Errorf("%q in %q is not an integer; separate elements with '.' or ','", f, s))
		}
		p = append(p, v)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
