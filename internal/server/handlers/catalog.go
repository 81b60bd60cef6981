package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/pagetree/internal/server/response"
	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/errors"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

// HandleCatalog handles GET /v1/catalog: the stored catalog as is.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Catalog(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, cat)
}

// HandleContext handles GET /v1/context. With ?format=yaml the entries are
// written as the YAML document handed to authoring tools.
func (h *Handlers) HandleContext(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Context(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if r.URL.Query().Get("format") != "yaml" {
		response.OK(w, entries)
		return
	}
	data, err := catalog.ContextYAML(entries)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleComponentContext handles GET /v1/context/{id}.
func (h *Handlers) HandleComponentContext(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.ComponentContext(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, entry)
}

// HandleSync handles POST /v1/sync. Query parameters dry_run and force map
// to the sync options.
func (h *Handlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	var opts []pkgsync.Option
	for name, opt := range map[string]func(bool) pkgsync.Option{
		"dry_run": pkgsync.WithDryRun,
		"force":   pkgsync.WithForce,
	} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(w, r, errors.NewValidationError(name, raw, "must be a boolean"))
			return
		}
		opts = append(opts, opt(v))
	}

	result, err := h.service.Sync(r.Context(), opts...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info().
		Bool("changed", result.Changed).
		Bool("saved", result.Saved).
		Bool("skipped", result.Skipped).
		Msg("Sync requested over HTTP")
	response.OK(w, result)
}
