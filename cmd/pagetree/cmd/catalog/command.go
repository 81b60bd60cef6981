// Package catalog provides the catalog command and its subcommands.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
)

// NewCommand creates the catalog command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		GroupID: "management",
		Short:   "Manage the cached component catalog",
		Long: `The component catalog caches the metadata of every component type the
live registry exposes. Curated fields such as descriptions, visibility
and disabled sources survive every sync.`,
	}

	cmd.AddCommand(
		newSyncCommand(app),
		newShowCommand(app),
		newContextCommand(app),
	)
	return cmd
}
