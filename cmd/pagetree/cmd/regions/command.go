// Package regions provides the regions command.
package regions

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/cmd/output"
	"github.com/agentstation/pagetree/pkg/errors"
)

// NewCommand creates the regions command.
func NewCommand(app application.Application) *cobra.Command {
	var layoutPath string

	cmd := &cobra.Command{
		Use:     "regions",
		GroupID: "core",
		Short:   "List the regions of a page layout",
		Long: `List the regions a page layout declares, in base index order, with the
descriptions configured under "regions" in the config file.`,
		Example: `  pagetree regions --layout layout.json
  pagetree regions -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				layout []byte
				err    error
			)
			if layoutPath != "" {
				layout, err = os.ReadFile(layoutPath)
				err = errors.WrapIO("read", layoutPath, err)
			} else {
				layout, err = app.Layout()
			}
			if err != nil {
				return err
			}
			if layout == nil {
				return errors.NewConfigError("layout", "no page layout; pass --layout or set layout in the config", nil)
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			list, err := client.Regions(layout, app.RegionDescriptions())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Regions(list))
		},
	}

	cmd.Flags().StringVar(&layoutPath, "layout", "", "page layout file (defaults to the configured layout)")
	return cmd
}
