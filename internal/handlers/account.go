package handlers

import (
	"encoding/json"
	"net/http"

	"accounts-api/internal/models"
	"accounts-api/internal/service"

	"github.com/google/uuid"
)

// CreateAccount handles POST /api/v1/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, "invalid JSON body")
		return
	}

	account, err := h.accounts.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// GetAccount handles GET /api/v1/accounts/{id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeAccountNotFound, "account not found")
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// ListAccounts handles GET /api/v1/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, err.Error())
		return
	}

	filter := models.AccountFilter{
		Name:    optionalQuery(r, "name"),
		Surname: optionalQuery(r, "surname"),
	}

	result, err := h.accounts.List(r.Context(), filter, page, size)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UpdateAccount handles PUT /api/v1/accounts/{id}
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeAccountNotFound, "account not found")
		return
	}

	var req models.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, "invalid JSON body")
		return
	}

	account, err := h.accounts.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// SetAccountActive handles PATCH /api/v1/accounts/{id}/active
func (h *Handler) SetAccountActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeAccountNotFound, "account not found")
		return
	}

	active, err := parseActiveParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeValidation, err.Error())
		return
	}

	if err := h.accounts.SetActive(r.Context(), id, active); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteAccount handles DELETE /api/v1/accounts/{id}
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeAccountNotFound, "account not found")
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
