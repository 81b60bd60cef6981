package catalog

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/cmd/output"
	pkgcatalog "github.com/agentstation/pagetree/pkg/catalog"
)

func newContextCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "context [component-id]",
		Short: "Print the component context for authoring tools",
		Long: `Print the component context: the catalog without hidden entries or
disabled sources, with gaps filled from live discovery. Given a component
id only that entry is printed.

The yaml format prints the id-keyed document handed to authoring tools.`,
		Example: `  pagetree catalog context -o yaml
  pagetree catalog context sdc.theme.hero`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				entry, err := client.ComponentContext(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Entries{entry})
			}

			entries, err := client.Context(cmd.Context())
			if err != nil {
				return err
			}
			if output.DetectFormat(app.OutputFormat()) == output.FormatYAML {
				data, err := pkgcatalog.ContextYAML(entries)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Entries(entries))
		},
	}
}
