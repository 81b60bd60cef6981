package reconcile

import (
	"fmt"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/differ"
)

// SkipReason explains why a reconciliation left the cache untouched.
type SkipReason string

const (
	// SkipNone means the reconciliation ran.
	SkipNone SkipReason = ""
	// SkipDiscoveryFailed means the live registry could not be read.
	SkipDiscoveryFailed SkipReason = "discovery failed"
	// SkipEmptyDiscovery means the registry listed no components and empty
	// discoveries are not trusted.
	SkipEmptyDiscovery SkipReason = "discovery returned no components"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Merged is the reconciled catalog. On a skipped run it is a copy of
	// the cached catalog.
	Merged catalog.Catalog

	// Changed reports whether Merged differs materially from the cache and
	// should be persisted.
	Changed bool

	// Changeset details the material differences.
	Changeset *differ.Changeset

	// Skipped is true when discovery could not be trusted.
	Skipped    bool
	SkipReason SkipReason

	// Err is the discovery error behind a skip, if any.
	Err error
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if r.Skipped {
		if r.Err != nil {
			return fmt.Sprintf("Reconciliation skipped: %s (%v)", r.SkipReason, r.Err)
		}
		return fmt.Sprintf("Reconciliation skipped: %s", r.SkipReason)
	}
	if !r.Changed {
		return "Catalog is up to date."
	}
	return fmt.Sprintf("Catalog changed. %s", r.Changeset.String())
}
