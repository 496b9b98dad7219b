package mocks

import (
	"context"
	"testing"

	"accounts-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockInstrumentRepository is a mock implementation of repository.InstrumentRepository
type MockInstrumentRepository struct {
	mock.Mock
}

// NewMockInstrumentRepository creates a mock wired to the test lifecycle
func NewMockInstrumentRepository(t *testing.T) *MockInstrumentRepository {
	m := &MockInstrumentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInstrumentRepository) Create(ctx context.Context, instrument *models.Instrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}

func (m *MockInstrumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Instrument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) List(ctx context.Context, limit, offset int) ([]models.Instrument, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInstrumentRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Instrument, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockInstrumentRepository) Update(ctx context.Context, instrument *models.Instrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}

func (m *MockInstrumentRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockInstrumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
