package pagetree

import (
	"context"

	"github.com/agentstation/pagetree/pkg/logging"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

// Syncer reconciles the stored catalog with the live registry.
type Syncer interface {
	Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)
}

// Compile-time interface check to ensure proper implementation.
var _ Syncer = (*client)(nil)

// Sync reads the stored catalog, discovers the live component types,
// reconciles the two and writes the result back when it changed. A failed
// or untrusted empty discovery leaves the store untouched and is reported
// through Result.Skipped rather than as an error. The write is a
// compare-and-swap against the revision that was read: if another writer
// got there first Sync returns a ConflictError.
func (c *client) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout and logger
	ctx = logging.WithOperation(c.context(ctx), "sync")
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}
	logger := logging.FromContext(ctx)

	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	// Step 3: Load the cached catalog and its revision
	cached, revision, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Step 4: Discover and reconcile
	discovered := c.catalog.Discover(ctx)
	rr := c.engine.Reconcile(cached, discovered)
	result := pkgsync.FromReconcile(rr, options.DryRun)
	result.Revision = revision

	if rr.Skipped {
		logger.Warn().
			Str("reason", string(rr.SkipReason)).
			AnErr("cause", rr.Err).
			Msg("Catalog sync skipped; keeping cached catalog")
		return result, nil
	}

	// Step 5: Log change summary
	if rr.Changed {
		logger.Info().
			Int("added", rr.Changeset.Summary.EntriesAdded).
			Int("updated", rr.Changeset.Summary.EntriesUpdated).
			Int("removed", rr.Changeset.Summary.EntriesRemoved).
			Msg("Changes detected")
	} else {
		logger.Info().Msg("No changes detected")
	}

	// Step 6: Write when changed (or forced) and not a dry run
	if options.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - no changes applied")
		return result, nil
	}
	if !rr.Changed && !options.Force {
		return result, nil
	}

	newRevision, err := c.store.Save(ctx, rr.Merged, revision)
	if err != nil {
		return nil, err
	}
	result.Saved = true
	result.Revision = newRevision

	logger.Info().
		Int("changes_applied", result.TotalChanges).
		Str("revision", newRevision).
		Msg("Sync completed successfully")

	// Step 7: Trigger hooks for catalog changes
	c.hooks.trigger(rr.Changeset)
	return result, nil
}
