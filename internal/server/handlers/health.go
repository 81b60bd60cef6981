package handlers

import (
	"net/http"

	"github.com/agentstation/pagetree/internal/server/response"
)

// HandleHealth handles GET /healthz (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "pagetree",
	})
}

// HandleReady handles GET /readyz. The service is ready when the live
// registry answers with component types.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	d := h.service.Discover(r.Context())
	if !d.OK() {
		response.ServiceUnavailable(w, "Component registry not available ("+string(d.Status)+")")
		return
	}
	response.OK(w, map[string]any{
		"status":     "ready",
		"components": d.Count(),
	})
}
