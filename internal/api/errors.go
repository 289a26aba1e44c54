package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dxascend/ascend-core/internal/objecttree"
	"github.com/dxascend/ascend-core/internal/project"
	"github.com/dxascend/ascend-core/internal/view"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeInternal       = "internal_error"
	ErrCodeValidation     = "validation_error"
	ErrCodeMethodNotAllow = "method_not_allowed"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// isValidation reports errors caused by the request content.
func isValidation(err error) bool {
	return errors.Is(err, project.ErrInvalidInput) ||
		errors.Is(err, project.ErrUnknownReference) ||
		errors.Is(err, objecttree.ErrInvalidObject) ||
		errors.Is(err, view.ErrMissingRoute)
}

// isNotFound reports errors meaning the addressed record does not exist.
func isNotFound(err error) bool {
	for _, target := range []error{
		project.ErrScreenNotFound,
		project.ErrWidgetNotFound,
		project.ErrBindingNotFound,
		project.ErrInterfaceNotFound,
		project.ErrDeviceNotFound,
		project.ErrDatapointNotFound,
		objecttree.ErrObjectNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeStoreError maps a store or service error onto the HTTP taxonomy.
// Anything that is neither a validation nor a not-found error is logged
// and reported as a 500 carrying action as the message.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case isValidation(err):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case isNotFound(err):
		writeNotFound(w, err.Error())
	default:
		s.logger.Error(action,
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
		)
		writeInternalError(w, action)
	}
}

// pathID parses the {id} URL parameter. A malformed id writes a 400 and
// returns false; a well-formed id that matches nothing is left for the
// store to report as not found.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter.
// A present but malformed value writes a 400 and returns ok=false.
func queryID(w http.ResponseWriter, r *http.Request, name string) (id *int64, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		writeBadRequest(w, fmt.Sprintf("invalid %s %q", name, raw))
		return nil, false
	}
	return &n, true
}

// decodeBody decodes a JSON request body into v. On failure it writes a
// 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "request body too large")
			return false
		}
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
