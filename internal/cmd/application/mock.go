// Package application provides a test double for the command
// application interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree"
	app "github.com/agentstation/pagetree/cmd/application"
	"github.com/agentstation/pagetree/pkg/constants"
)

// Mock is a configurable Application. A nil func field falls back to a
// zero value, so a test sets only what its command reads:
//
//	cmd := compile.NewCommand(&application.Mock{
//		ClientFunc: func() (pagetree.Client, error) { return client, nil },
//		LayoutFunc: func() ([]byte, error) { return layout, nil },
//	})
type Mock struct {
	ClientFunc       func() (pagetree.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	LayoutFunc       func() ([]byte, error)
	RegionsFunc      func() map[string]string
	ServerFunc       func() app.ServerSettings
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (pagetree.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Layout returns the layout using the mock function or nil.
func (m *Mock) Layout() ([]byte, error) {
	if m.LayoutFunc != nil {
		return m.LayoutFunc()
	}
	return nil, nil
}

// RegionDescriptions returns descriptions using the mock function or nil.
func (m *Mock) RegionDescriptions() map[string]string {
	if m.RegionsFunc != nil {
		return m.RegionsFunc()
	}
	return nil
}

// ServerSettings returns settings using the mock function or defaults.
func (m *Mock) ServerSettings() app.ServerSettings {
	if m.ServerFunc != nil {
		return m.ServerFunc()
	}
	return app.ServerSettings{Listen: constants.DefaultListenAddr}
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ app.Application = (*Mock)(nil)
