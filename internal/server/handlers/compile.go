package handlers

import (
	"net/http"

	"github.com/agentstation/pagetree/internal/server/response"
	"github.com/agentstation/pagetree/pkg/nodepath"
)

// HandleCompile handles POST /v1/compile. The body is a component
// document in YAML or JSON.
func (h *Handlers) HandleCompile(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readBody(w, r)
	if !ok {
		return
	}
	result, err := h.service.Compile(r.Context(), data)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, result)
}

// HandleCompileRegions handles POST /v1/compile/regions. The body is a
// region-keyed document; the optional ref query parameter ("1.2") places
// every region below that node.
func (h *Handlers) HandleCompileRegions(w http.ResponseWriter, r *http.Request) {
	ref, err := nodepath.Parse(r.URL.Query().Get("ref"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, ok := h.readBody(w, r)
	if !ok {
		return
	}
	result, err := h.service.CompileRegions(r.Context(), data, h.layout, ref)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, result)
}

// HandleRegions handles GET /v1/regions.
func (h *Handlers) HandleRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.Regions(h.layout, h.descriptions)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, regions)
}
