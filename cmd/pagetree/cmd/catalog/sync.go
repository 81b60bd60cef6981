package catalog

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/cmd/alerts"
	"github.com/agentstation/pagetree/internal/cmd/output"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

func newSyncCommand(app application.Application) *cobra.Command {
	var (
		dryRun  bool
		force   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the catalog with the live registry",
		Long: `Sync discovers the component types of the live registry and merges them
into the stored catalog:

  1. Load the stored catalog and its revision
  2. Discover the live component types
  3. Reconcile: new types are added, stale ones removed, curated fields kept
  4. Save when anything changed (or --force), unless --dry-run

A failed or empty discovery leaves the stored catalog untouched.`,
		Example: `  pagetree catalog sync
  pagetree catalog sync --dry-run -o wide
  pagetree catalog sync --force --timeout 1m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			opts := []pkgsync.Option{pkgsync.WithDryRun(dryRun), pkgsync.WithForce(force)}
			if timeout > 0 {
				opts = append(opts, pkgsync.WithTimeout(timeout))
			}
			result, err := client.Sync(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable || format == output.FormatWide {
				if err := alerts.NewFormatWriter(cmd.ErrOrStderr(), format).WriteAlert(syncAlert(result)); err != nil {
					return err
				}
				if len(result.SourceResults) == 0 || !result.HasChanges() {
					return nil
				}
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.SyncResult(*result))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without saving")
	cmd.Flags().BoolVar(&force, "force", false, "save even when nothing changed")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall sync timeout (default no limit beyond discovery)")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "force")
	return cmd
}

// syncAlert summarises a sync outcome for humans.
func syncAlert(result *pkgsync.Result) *alerts.Alert {
	switch {
	case result.Skipped:
		return alerts.NewWarning(result.Summary()).
			WithDetails("The stored catalog was left untouched.")
	case result.Saved:
		return alerts.NewSuccess(result.Summary()).
			WithDetails("Saved revision " + result.Revision)
	default:
		return alerts.NewInfo(result.Summary())
	}
}
