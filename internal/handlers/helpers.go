package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"accounts-api/internal/service"
)

// errorResponse is the wire shape of every failure
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // nothing useful to do if write fails
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps service error codes to HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unexpected error", "error", err)
		writeError(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}

	switch svcErr.Code {
	case service.ErrCodeAccountNotFound, service.ErrCodeInstrumentNotFound:
		writeError(w, http.StatusNotFound, svcErr.Code, svcErr.Message)
	case service.ErrCodeValidation, service.ErrCodeLimitExceeded, service.ErrCodeDuplicateEmail:
		writeError(w, http.StatusBadRequest, svcErr.Code, svcErr.Message)
	default:
		h.logger.Error("internal service error", "code", svcErr.Code, "error", err)
		writeError(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
	}
}

// parsePaging reads page/size query parameters with the 0/10 defaults
func parsePaging(r *http.Request) (page, size int, err error) {
	page, size = 0, 10

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err = strconv.Atoi(pageStr); err != nil || page < 0 {
			return 0, 0, errors.New("page must be a non-negative integer")
		}
	}

	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if size, err = strconv.Atoi(sizeStr); err != nil || size <= 0 {
			return 0, 0, errors.New("size must be a positive integer")
		}
	}

	return page, size, nil
}

// parseActiveParam reads the mandatory active query parameter of the status
// endpoints.
func parseActiveParam(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("active")
	if raw == "" {
		return false, errors.New("active query parameter is required")
	}

	active, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("active must be a boolean")
	}

	return active, nil
}

// optionalQuery returns a pointer to the query value, or nil when absent
func optionalQuery(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	value := r.URL.Query().Get(name)
	return &value
}
