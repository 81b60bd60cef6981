// Package response writes the JSON envelope shared by every pagetree
// endpoint: {"data": ...} on success, {"error": {...}} on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Response is the envelope. Exactly one of Data and Error is set.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the failure half of the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// JSON writes resp with the given status.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp) // too late to change the status
}

func fail(w http.ResponseWriter, status int, code, message, details string) {
	JSON(w, status, Response{Error: &Error{Code: code, Message: message, Details: details}})
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Response{Data: data})
}

func BadRequest(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func Unauthorized(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, details)
}

func NotFound(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, details)
}

func MethodNotAllowed(w http.ResponseWriter, method string) {
	fail(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed",
		method+" is not supported on this route")
}

// TooLarge reports a body over limit bytes.
func TooLarge(w http.ResponseWriter, limit int64) {
	fail(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", "Request body too large",
		"Documents are limited to "+humanize.IBytes(uint64(limit)))
}

// InternalError writes a generic 500. The cause never reaches the client;
// the logging middleware records it.
func InternalError(w http.ResponseWriter, _ error) {
	fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "")
}

func ServiceUnavailable(w http.ResponseWriter, details string) {
	fail(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service unavailable", details)
}

// ErrorFromType picks the status for err from the typed errors it wraps.
// Slot and region misses are 422: the document parsed but names something
// the catalog or layout does not have.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		slot      *errors.UnresolvedSlotError
		region    *errors.UnresolvedRegionError
		notFound  *errors.NotFoundError
		conflict  *errors.ConflictError
		discovery *errors.DiscoveryError
		parse     *errors.ParseError
		invalid   *errors.ValidationError
	)
	switch {
	case errors.As(err, &slot):
		fail(w, http.StatusUnprocessableEntity, "UNPROCESSABLE", slot.Error(), "slot:"+slot.Slot)
	case errors.As(err, &region):
		fail(w, http.StatusUnprocessableEntity, "UNPROCESSABLE", region.Error(), "region:"+region.Region)
	case errors.As(err, &notFound):
		NotFound(w, notFound.Error(), "")
	case errors.As(err, &conflict):
		fail(w, http.StatusConflict, "CONFLICT", conflict.Error(), "Retry the request")
	case errors.As(err, &discovery):
		ServiceUnavailable(w, discovery.Error())
	case errors.As(err, &parse):
		BadRequest(w, "Malformed document", parse.Error())
	case errors.As(err, &invalid):
		BadRequest(w, invalid.Error(), "")
	default:
		InternalError(w, err)
	}
}
