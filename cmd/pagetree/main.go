// Command pagetree compiles authored component trees into placement
// operations and keeps the component metadata catalog in sync.
package main

import (
	"context"
	"os"

	"github.com/agentstation/pagetree/cmd/pagetree/app"
	"github.com/agentstation/pagetree/pkg/constants"
)

// Set at build time through -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	a, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, stop := app.ContextWithSignals(context.Background())
	runErr := a.Execute(ctx, os.Args[1:])
	stop()

	// ctx is done by now; give shutdown its own deadline.
	sctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	if err := a.Shutdown(sctx); err != nil {
		a.Logger().Error().Err(err).Msg("Shutdown failed")
	}
	cancel()

	app.ExitOnError(runErr)
}
