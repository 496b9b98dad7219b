package handlers

import (
	"encoding/json"
	"net/http"

	"accounts-api/internal/models"
	"accounts-api/internal/service"

	"github.com/google/uuid"
)

// CreateInstrument handles POST /api/v1/accounts/{ownerId}/instruments
func (h *Handler) CreateInstrument(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.PathValue("ownerId"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeAccountNotFound, "account not found")
		return
	}

	var req models.InstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, "invalid JSON body")
		return
	}

	instrument, err := h.instruments.Create(r.Context(), ownerID, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, instrument)
}

// GetInstrument handles GET /api/v1/instruments/{id}
func (h *Handler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeInstrumentNotFound, "instrument not found")
		return
	}

	instrument, err := h.instruments.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instrument)
}

// ListInstruments handles GET /api/v1/instruments
func (h *Handler) ListInstruments(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.instruments.ListAll(r.Context(), page, size)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListInstrumentsByOwner handles GET /api/v1/accounts/{ownerId}/instruments
//
// An owner with no instruments yields an empty list, not an error.
func (h *Handler) ListInstrumentsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.PathValue("ownerId"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeAccountNotFound, "account not found")
		return
	}

	instruments, err := h.instruments.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instruments)
}

// UpdateInstrument handles PUT /api/v1/instruments/{id}
func (h *Handler) UpdateInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeInstrumentNotFound, "instrument not found")
		return
	}

	var req models.InstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, "invalid JSON body")
		return
	}

	instrument, err := h.instruments.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, instrument)
}

// SetInstrumentActive handles PATCH /api/v1/instruments/{id}/active
func (h *Handler) SetInstrumentActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeInstrumentNotFound, "instrument not found")
		return
	}

	active, err := parseActiveParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, err.Error())
		return
	}

	if err := h.instruments.SetActive(r.Context(), id, active); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteInstrument handles DELETE /api/v1/instruments/{id}
func (h *Handler) DeleteInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeInstrumentNotFound, "instrument not found")
		return
	}

	if err := h.instruments.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
