package server

import (
	"time"

	"github.com/agentstation/pagetree/internal/server/middleware"
	"github.com/agentstation/pagetree/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// Layout is the page layout served to the region endpoints.
	Layout []byte
	// RegionDescriptions annotates the layout regions for GET /v1/regions.
	RegionDescriptions map[string]string

	CORS middleware.CORSConfig
	// Auth protects POST /v1/sync.
	Auth middleware.AuthConfig

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         constants.DefaultListenAddr,
		CORS:         middleware.DefaultCORSConfig(),
		Auth:         middleware.DefaultAuthConfig(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: constants.DiscoveryTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
