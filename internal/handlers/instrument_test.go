package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts-api/internal/models"
	"accounts-api/internal/service"
	"accounts-api/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInstrumentHandler(t *testing.T) (*Handler, *mocks.MockInstrumentManager) {
	instruments := mocks.NewMockInstrumentManager(t)
	return NewHandler(nil, instruments, nil, testLogger()), instruments
}

const instrumentBody = `{"number":"4111111111111111","holder":"ULYANA KURYLINA","expiration_date":"2030-12-01","active":true}`

func TestCreateInstrument(t *testing.T) {
	t.Run("returns 201 with the created instrument", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		ownerID := uuid.New()
		created := &models.Instrument{
			ID:        uuid.New(),
			AccountID: ownerID,
			Number:    "4111111111111111",
			Holder:    "ULYANA KURYLINA",
			Active:    true,
		}
		instruments.On("Create", mock.Anything, ownerID, mock.AnythingOfType("*models.InstrumentRequest")).
			Return(created, nil)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/accounts/"+ownerID.String()+"/instruments", strings.NewReader(instrumentBody))
		req.SetPathValue("ownerId", ownerID.String())
		rec := httptest.NewRecorder()

		handler.CreateInstrument(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got models.Instrument
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, ownerID, got.AccountID)
	})

	t.Run("returns 404 for an unknown owner", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		ownerID := uuid.New()
		instruments.On("Create", mock.Anything, ownerID, mock.AnythingOfType("*models.InstrumentRequest")).
			Return(nil, &service.ServiceError{Code: service.ErrCodeAccountNotFound, Message: "account not found"})

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/accounts/"+ownerID.String()+"/instruments", strings.NewReader(instrumentBody))
		req.SetPathValue("ownerId", ownerID.String())
		rec := httptest.NewRecorder()

		handler.CreateInstrument(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, service.ErrCodeAccountNotFound, decodeError(t, rec).Error)
	})

	t.Run("returns 400 when the active limit is reached", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		ownerID := uuid.New()
		instruments.On("Create", mock.Anything, ownerID, mock.AnythingOfType("*models.InstrumentRequest")).
			Return(nil, &service.ServiceError{
				Code:    service.ErrCodeLimitExceeded,
				Message: "account already has 5 active instruments",
			})

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/accounts/"+ownerID.String()+"/instruments", strings.NewReader(instrumentBody))
		req.SetPathValue("ownerId", ownerID.String())
		rec := httptest.NewRecorder()

		handler.CreateInstrument(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, service.ErrCodeLimitExceeded, decodeError(t, rec).Error)
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		handler, _ := newInstrumentHandler(t)

		ownerID := uuid.New()
		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/accounts/"+ownerID.String()+"/instruments", strings.NewReader("{broken"))
		req.SetPathValue("ownerId", ownerID.String())
		rec := httptest.NewRecorder()

		handler.CreateInstrument(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetInstrument(t *testing.T) {
	t.Run("returns the instrument", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		id := uuid.New()
		instruments.On("Get", mock.Anything, id).Return(&models.Instrument{ID: id}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/instruments/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.GetInstrument(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		id := uuid.New()
		instruments.On("Get", mock.Anything, id).
			Return(nil, &service.ServiceError{Code: service.ErrCodeInstrumentNotFound, Message: "instrument not found"})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/instruments/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.GetInstrument(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListInstruments(t *testing.T) {
	handler, instruments := newInstrumentHandler(t)

	page := models.NewPage([]models.Instrument{{ID: uuid.New()}}, 1, 0, 10)
	instruments.On("ListAll", mock.Anything, 0, 10).Return(page, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/instruments", nil)
	rec := httptest.NewRecorder()

	handler.ListInstruments(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListInstrumentsByOwner(t *testing.T) {
	t.Run("returns the owner's instruments", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		ownerID := uuid.New()
		owned := []models.Instrument{{ID: uuid.New(), AccountID: ownerID}}
		instruments.On("ListByOwner", mock.Anything, ownerID).Return(owned, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+ownerID.String()+"/instruments", nil)
		req.SetPathValue("ownerId", ownerID.String())
		rec := httptest.NewRecorder()

		handler.ListInstrumentsByOwner(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown owner yields an empty list", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		ownerID := uuid.New()
		instruments.On("ListByOwner", mock.Anything, ownerID).Return([]models.Instrument{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+ownerID.String()+"/instruments", nil)
		req.SetPathValue("ownerId", ownerID.String())
		rec := httptest.NewRecorder()

		handler.ListInstrumentsByOwner(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}

func TestUpdateInstrument(t *testing.T) {
	handler, instruments := newInstrumentHandler(t)

	id := uuid.New()
	updated := &models.Instrument{ID: id, Number: "4111111111111111"}
	instruments.On("Update", mock.Anything, id, mock.AnythingOfType("*models.InstrumentRequest")).
		Return(updated, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/instruments/"+id.String(), strings.NewReader(instrumentBody))
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	handler.UpdateInstrument(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetInstrumentActive(t *testing.T) {
	t.Run("flips the flag", func(t *testing.T) {
		handler, instruments := newInstrumentHandler(t)

		id := uuid.New()
		instruments.On("SetActive", mock.Anything, id, true).Return(nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/instruments/"+id.String()+"/active?active=true", nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.SetInstrumentActive(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a non-boolean value", func(t *testing.T) {
		handler, _ := newInstrumentHandler(t)

		id := uuid.New()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/instruments/"+id.String()+"/active?active=maybe", nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.SetInstrumentActive(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteInstrument(t *testing.T) {
	handler, instruments := newInstrumentHandler(t)

	id := uuid.New()
	instruments.On("Delete", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/instruments/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	handler.DeleteInstrument(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
