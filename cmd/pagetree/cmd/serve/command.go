// Package serve provides the HTTP server command.
package serve

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/internal/server"
	"github.com/agentstation/pagetree/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	settings := app.ServerSettings()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the HTTP API",
		Long: `Start the pagetree HTTP API.

Endpoints:
  GET  /healthz                 liveness
  GET  /readyz                  ready when the live registry answers
  POST /v1/compile              compile a component document
  POST /v1/compile/regions      compile a region document (?ref=2.1)
  GET  /v1/regions              regions of the configured layout
  GET  /v1/catalog              the stored catalog
  GET  /v1/context[/{id}]       component context (?format=yaml)
  POST /v1/sync                 reconcile the catalog (?dry_run, ?force)

POST /v1/sync requires the API key when one is configured, sent as
X-API-Key or as a Bearer token.`,
		Example: `  pagetree serve
  pagetree serve --listen :8088 --layout layout.json
  PAGETREE_API_KEY=s3cret pagetree serve --auto-sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("listen", settings.Listen, "listen address, host:port")
	cmd.Flags().String("api-key", settings.APIKey, "API key required by POST /v1/sync (empty disables auth)")
	cmd.Flags().StringSlice("cors-origins", settings.CORSOrigins, "allowed CORS origins (default any)")
	cmd.Flags().String("layout", "", "page layout file (defaults to the configured layout)")
	cmd.Flags().Bool("auto-sync", settings.AutoSync > 0, "sync the catalog periodically at the configured auto_sync_interval")
	return cmd
}

// run builds the server configuration from flags and serves until the
// command context is cancelled.
func run(cmd *cobra.Command, app application.Application) error {
	logger := app.Logger()
	flags := cmd.Flags()

	cfg := server.DefaultConfig()
	cfg.Addr, _ = flags.GetString("listen")
	cfg.Auth.APIKey, _ = flags.GetString("api-key")
	if origins, _ := flags.GetStringSlice("cors-origins"); len(origins) > 0 {
		cfg.CORS.AllowedOrigins = origins
	}
	cfg.RegionDescriptions = app.RegionDescriptions()

	if path, _ := flags.GetString("layout"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapIO("read", path, err)
		}
		cfg.Layout = data
	} else {
		layout, err := app.Layout()
		if err != nil {
			return err
		}
		cfg.Layout = layout
	}
	if cfg.Layout == nil {
		logger.Warn().Msg("No page layout configured; every region will be unresolved")
	}

	client, err := app.Client()
	if err != nil {
		return err
	}
	if autoSync, _ := flags.GetBool("auto-sync"); autoSync {
		if err := client.AutoSyncOn(); err != nil {
			return err
		}
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Bool("auth", cfg.Auth.Enabled()).
		Strs("cors_origins", cfg.CORS.AllowedOrigins).
		Bool("layout", cfg.Layout != nil).
		Msg("Starting API server")

	return server.New(client, cfg, logger).ListenAndServe(cmd.Context())
}
