// Package application defines what pagetree commands need from the running
// application. Commands accept this interface rather than the concrete App
// so they can be tested against internal/cmd/application.Mock.
package application

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree"
)

// Application provides the dependencies of every command.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the configured pagetree client, created on first use.
	Client() (pagetree.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Layout returns the configured page layout document, or nil.
	Layout() ([]byte, error)

	// RegionDescriptions returns the configured region descriptions.
	RegionDescriptions() map[string]string

	// ServerSettings returns the configured HTTP server settings.
	ServerSettings() ServerSettings

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// ServerSettings are the configured defaults of the serve command. Flags
// given on the command line take precedence.
type ServerSettings struct {
	Listen      string
	APIKey      string
	CORSOrigins []string
	AutoSync    time.Duration
}
