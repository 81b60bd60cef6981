package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agentstation/pagetree/internal/server/middleware"
	"github.com/agentstation/pagetree/internal/server/response"
)

// setupRouter wires the middleware chain and every route.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.CORS(s.config.CORS))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Route not found", req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w, req.Method)
	})

	h := s.handlers
	r.Get("/healthz", h.HandleHealth)
	r.Get("/readyz", h.HandleReady)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/compile", h.HandleCompile)
		r.Post("/compile/regions", h.HandleCompileRegions)
		r.Get("/regions", h.HandleRegions)

		r.Get("/catalog", h.HandleCatalog)
		r.Get("/context", h.HandleContext)
		r.Get("/context/{id}", h.HandleComponentContext)

		r.With(middleware.RequireAPIKey(s.config.Auth, s.logger)).
			Post("/sync", h.HandleSync)
	})

	return r
}
