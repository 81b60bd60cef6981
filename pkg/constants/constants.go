// Package constants provides shared constants used throughout the pagetree codebase.
// This includes document defaults, catalog markers, file permissions and timeouts
// that should be consistent across the application.
package constants

import "time"

// Document constants define the defaults of compiled page documents
const (
	// OperationAdd is the only operation emitted by the compiler
	OperationAdd = "ADD"

	// DefaultMessage is used when an authored document carries no message
	DefaultMessage = "The changes have been made."
)

// Catalog constants define the persisted catalog markers and layout
const (
	// NoProps marks a catalog entry whose component declares no props
	NoProps = "No props"

	// NoSlots marks a catalog entry whose component declares no slots
	NoSlots = "No slots"

	// NoDescription is used when a schema prop or slot has no description
	NoDescription = "No description available"

	// CatalogFormatVersion is the version written into persisted catalogs
	CatalogFormatVersion = "1.0.0"

	// CatalogFormatConstraint is the range of persisted versions that can be read
	CatalogFormatConstraint = "^1"

	// CatalogKey is the key under which the catalog is stored in key/value stores
	CatalogKey = "pagetree.component_context"

	// MediaReferenceDefault is the default media id given to coerced media props
	MediaReferenceDefault = 4

	// MediaReferenceHint is appended to the description of coerced media props
	MediaReferenceHint = " Provide media id or null here."

	// BlockRequiredHint is appended to block default-configuration prop keys
	BlockRequiredHint = ". Is required, even if just empty."
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for store operations
	DefaultTimeout = 10 * time.Second

	// DiscoveryTimeout bounds one call to the live component registry
	DiscoveryTimeout = 30 * time.Second

	// ShutdownTimeout is how long the HTTP server gets to drain
	ShutdownTimeout = 5 * time.Second

	// ReadHeaderTimeout protects the HTTP server from slow clients
	ReadHeaderTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MaxDocumentSize is the largest authored document accepted (bytes)
	MaxDocumentSize = 4 << 20
)

// Path constants
const (
	// DefaultStorePath is the default catalog store when none is configured
	DefaultStorePath = "file://.pagetree/catalog.yaml"

	// DefaultListenAddr is the default address for the HTTP adapter
	DefaultListenAddr = "127.0.0.1:8088"
)
