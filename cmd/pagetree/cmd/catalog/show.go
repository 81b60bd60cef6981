package catalog

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/cmd/output"
	pkgcatalog "github.com/agentstation/pagetree/pkg/catalog"
)

func newShowCommand(app application.Application) *cobra.Command {
	var encoded bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored catalog",
		Long: `Show every entry of the stored catalog, including hidden entries and
disabled sources. With --encoded the catalog is printed in its persisted
form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			cat, err := client.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			if encoded {
				data, err := pkgcatalog.Encode(cat)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			var entries output.Entries
			for _, kind := range cat.Kinds() {
				src := cat[kind]
				for _, id := range src.IDs() {
					entries = append(entries, src.Entries[id])
				}
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), entries)
		},
	}

	cmd.Flags().BoolVar(&encoded, "encoded", false, "print the persisted catalog document")
	return cmd
}
