package app

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/pagetree/cmd/catalog"
	"github.com/agentstation/pagetree/cmd/pagetree/cmd/compile"
	"github.com/agentstation/pagetree/cmd/pagetree/cmd/regions"
	"github.com/agentstation/pagetree/cmd/pagetree/cmd/serve"
	"github.com/agentstation/pagetree/cmd/pagetree/cmd/version"
	"github.com/agentstation/pagetree/internal/cmd/output"
)

// Execute runs the pagetree CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// flags holds the persistent flag values until setupCommand applies them.
type flags struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	logLevel   string
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:     "pagetree",
		Short:   "Component tree compiler and catalog reconciler",
		Version: a.version,
		Long: `pagetree compiles nested component documents into flat, address-ordered
ADD operations and keeps a curated catalog of component metadata in sync
with the live component registry.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (default is $HOME/.pagetree.yaml)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&f.format, "format", "o", "", "output format: table, json, yaml, wide")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("pagetree {{.Version}}\n")

	rootCmd.AddCommand(
		compile.NewCommand(a),
		regions.NewCommand(a),
		catalog.NewCommand(a),
		serve.NewCommand(a),
		version.NewCommand(a),
	)
	return rootCmd
}

// setupCommand applies the parsed persistent flags before any command runs.
func (a *App) setupCommand(f *flags) error {
	if f.configFile != "" {
		config, err := LoadConfig(f.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	if f.format != "" {
		if _, err := output.ParseFormat(f.format); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(f.verbose, f.quiet, f.noColor, f.format, f.logLevel)
	if a.config.NoColor {
		color.NoColor = true
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints err to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
