// Package server provides the HTTP adapter of pagetree: document
// compilation, catalog context and sync over a small JSON API.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree/internal/server/handlers"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	config   Config
	logger   *zerolog.Logger
	handlers *handlers.Handlers
	router   chi.Router
	http     *http.Server
}

// New creates a server over service.
func New(service handlers.Service, cfg Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{
		config:   cfg,
		logger:   logger,
		handlers: handlers.New(service, cfg.Layout, cfg.RegionDescriptions, logger),
	}
	s.router = s.setupRouter()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until ctx is cancelled, then drains
// in-flight requests for up to constants.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", l.Addr().String()).Msg("HTTP server listening")
		errCh <- s.http.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		return errors.WrapIO("listen", s.config.Addr, err)
	}
	return s.Serve(ctx, l)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.http.Shutdown(ctx)
}
