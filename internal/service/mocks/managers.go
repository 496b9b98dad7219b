// Package mocks provides testify mocks of the service interfaces.
package mocks

import (
	"context"
	"testing"

	"accounts-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountManager is a mock implementation of service.AccountManager
type MockAccountManager struct {
	mock.Mock
}

// NewMockAccountManager creates a mock wired to the test lifecycle
func NewMockAccountManager(t *testing.T) *MockAccountManager {
	m := &MockAccountManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountManager) Create(ctx context.Context, req *models.AccountRequest) (*models.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountManager) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountManager) List(ctx context.Context, filter models.AccountFilter, page, size int) (models.Page[models.Account], error) {
	args := m.Called(ctx, filter, page, size)
	return args.Get(0).(models.Page[models.Account]), args.Error(1)
}

func (m *MockAccountManager) Update(ctx context.Context, id uuid.UUID, req *models.AccountRequest) (*models.Account, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountManager) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockAccountManager) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInstrumentManager is a mock implementation of service.InstrumentManager
type MockInstrumentManager struct {
	mock.Mock
}

// NewMockInstrumentManager creates a mock wired to the test lifecycle
func NewMockInstrumentManager(t *testing.T) *MockInstrumentManager {
	m := &MockInstrumentManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInstrumentManager) Create(ctx context.Context, ownerID uuid.UUID, req *models.InstrumentRequest) (*models.Instrument, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Instrument), args.Error(1)
}

func (m *MockInstrumentManager) Get(ctx context.Context, id uuid.UUID) (*models.Instrument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Instrument), args.Error(1)
}

func (m *MockInstrumentManager) ListAll(ctx context.Context, page, size int) (models.Page[models.Instrument], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(models.Page[models.Instrument]), args.Error(1)
}

func (m *MockInstrumentManager) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Instrument, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Instrument), args.Error(1)
}

func (m *MockInstrumentManager) Update(ctx context.Context, id uuid.UUID, req *models.InstrumentRequest) (*models.Instrument, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Instrument), args.Error(1)
}

func (m *MockInstrumentManager) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockInstrumentManager) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
