// Package sync holds the knobs and the report of one catalog sync: a
// refresh of the cached component catalog from the live registry.
package sync

import (
	"time"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Options controls one catalog sync.
type Options struct {
	// DryRun computes the changeset but leaves the store untouched.
	DryRun bool
	// Timeout bounds discovery plus persistence. Zero disables the bound.
	Timeout time.Duration
	// Force writes the catalog even when nothing changed, upgrading an
	// older stored layout to the current format.
	Force bool
}

// Option mutates Options.
type Option func(*Options)

// Defaults returns zero-valued options: a real, unforced, unbounded sync.
func Defaults() *Options { return &Options{} }

// Apply runs opts over o in order and returns o.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate rejects negative timeouts and the DryRun+Force combination.
func (o *Options) Validate() error {
	switch {
	case o.Timeout < 0:
		return errors.NewValidationError("Timeout", o.Timeout, "timeout must be non-negative")
	case o.DryRun && o.Force:
		return errors.NewValidationError("Force", o.Force, "force and dry run cannot be combined")
	}
	return nil
}

// WithDryRun toggles dry-run mode.
func WithDryRun(v bool) Option { return func(o *Options) { o.DryRun = v } }

// WithTimeout bounds the sync.
func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }

// WithForce toggles forced persistence.
func WithForce(v bool) Option { return func(o *Options) { o.Force = v } }
