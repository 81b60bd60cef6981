package pagetree

import (
	"context"
	"time"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoSyncer = (*client)(nil)

// AutoSyncer provides controls for periodic catalog syncs.
type AutoSyncer interface {
	// AutoSyncOn starts syncing at the configured interval.
	AutoSyncOn() error

	// AutoSyncOff stops periodic syncs.
	AutoSyncOff() error
}

// AutoSyncOn starts syncing at the interval set with WithAutoSync.
func (c *client) AutoSyncOn() error {
	interval := c.options.autoSyncInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "autoSyncInterval",
			Value:   interval,
			Message: "sync interval must be positive",
		}
	}

	// Stop any existing loop to prevent resource leaks
	if err := c.AutoSyncOff(); err != nil {
		return err
	}

	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	c.stopCh = make(chan struct{})
	c.ticker = time.NewTicker(interval)
	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), c.logger))
	c.syncCancel = cancel

	go c.autoSyncLoop(ctx, c.ticker, c.stopCh, interval)
	return nil
}

func (c *client) autoSyncLoop(ctx context.Context, ticker *time.Ticker, stopCh <-chan struct{}, interval time.Duration) {
	timeout := max(interval, constants.DefaultTimeout)
	for {
		select {
		case <-ticker.C:
			_, err := c.Sync(ctx, pkgsync.WithTimeout(timeout))
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error().Err(err).Msg("Auto-sync failed")
			}
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		}
	}
}

// AutoSyncOff stops periodic syncs. It is safe to call when auto sync is
// not running.
func (c *client) AutoSyncOff() error {
	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.syncCancel != nil {
		c.syncCancel()
		c.syncCancel = nil
	}
	select {
	case <-c.stopCh:
		// Already closed
	default:
		close(c.stopCh)
	}
	return nil
}
