// Package handlers provides the HTTP request handlers of the pagetree API.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/pagetree"
	"github.com/agentstation/pagetree/internal/server/response"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/logging"
)

// Service is the part of the pagetree client the handlers use.
type Service interface {
	pagetree.Discoverer
	pagetree.Compiler
	pagetree.Syncer
	pagetree.Contexter
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	service      Service
	layout       []byte
	descriptions map[string]string
	maxBody      int64
	logger       *zerolog.Logger
}

// New creates a new Handlers instance. layout is the page layout used by
// the region endpoints; descriptions annotate its regions.
func New(service Service, layout []byte, descriptions map[string]string, logger *zerolog.Logger) *Handlers {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handlers{
		service:      service,
		layout:       layout,
		descriptions: descriptions,
		maxBody:      constants.MaxDocumentSize,
		logger:       logger,
	}
}

// readBody reads a size-limited request body. On failure it writes the
// error response and returns false.
func (h *Handlers) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.TooLarge(w, tooLarge.Limit)
			return nil, false
		}
		response.BadRequest(w, "Failed to read request body", err.Error())
		return nil, false
	}
	if len(data) == 0 {
		response.BadRequest(w, "Empty request body", "Send a YAML or JSON document")
		return nil, false
	}
	return data, true
}

// fail logs err at the level its status deserves and writes the response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Debug().Err(err).Msg("Request failed")
	response.ErrorFromType(w, err)
}
