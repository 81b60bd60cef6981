// Package compile provides the compile command.
package compile

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/cmd/output"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/flatten"
	"github.com/agentstation/pagetree/pkg/nodepath"
)

// NewCommand creates the compile command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		byRegion   bool
		layoutPath string
		ref        string
	)

	cmd := &cobra.Command{
		Use:     "compile [file]",
		GroupID: "core",
		Short:   "Compile a component document into ADD operations",
		Long: `Compile a nested component document (YAML or JSON) into a flat list of
ADD operations in address order. Slot names are resolved against the live
component registry.

With --regions the document is keyed by region name and every region is
placed at the base index the page layout declares for it.

The document is read from the named file, or from stdin when the file is
omitted or "-".`,
		Example: `  # Compile a document placed relative to its reference node path
  pagetree compile hero.yaml

  # Compile a region document against a page layout
  pagetree compile --regions --layout layout.json page.yaml

  # Compile from stdin, nested under node 2.1
  cat page.yaml | pagetree compile --regions --ref 2.1 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(cmd, args)
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			var result *flatten.Result
			if byRegion {
				layout, err := loadLayout(app, layoutPath)
				if err != nil {
					return err
				}
				base, err := nodepath.Parse(ref)
				if err != nil {
					return err
				}
				result, err = client.CompileRegions(cmd.Context(), data, layout, base)
				if err != nil {
					return err
				}
			} else {
				if ref != "" {
					return errors.NewValidationError("ref", ref, "--ref only applies with --regions; set reference_nodepath in the document instead")
				}
				result, err = client.Compile(cmd.Context(), data)
				if err != nil {
					return err
				}
			}

			app.Logger().Debug().
				Int("operations", len(result.Components())).
				Msg("Document compiled")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Operations(*result))
		},
	}

	cmd.Flags().BoolVar(&byRegion, "regions", false, "treat the document as region-keyed")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "page layout file (defaults to the configured layout)")
	cmd.Flags().StringVar(&ref, "ref", "", "base node path for region documents, e.g. 2.1")
	return cmd
}

// readDocument reads the document named by args, or stdin.
func readDocument(cmd *cobra.Command, args []string) ([]byte, error) {
	name := "stdin"
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.WrapIO("open", name, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, constants.MaxDocumentSize+1))
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	if len(data) > constants.MaxDocumentSize {
		return nil, errors.NewValidationError("document", name,
			"documents are limited to "+humanize.IBytes(constants.MaxDocumentSize))
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError("document", name, "document is empty")
	}
	return data, nil
}

// loadLayout reads the layout named by the flag, falling back to the
// configured one.
func loadLayout(app application.Application, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}
		return data, nil
	}
	layout, err := app.Layout()
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, errors.NewConfigError("layout", "region documents need a page layout; pass --layout or set layout in the config", nil)
	}
	return layout, nil
}
