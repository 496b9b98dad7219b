package service

import (
	"context"

	"accounts-api/internal/models"

	"github.com/google/uuid"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// AccountManager handles account record operations
type AccountManager interface {
	Create(ctx context.Context, req *models.AccountRequest) (*models.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, filter models.AccountFilter, page, size int) (models.Page[models.Account], error)
	Update(ctx context.Context, id uuid.UUID, req *models.AccountRequest) (*models.Account, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InstrumentManager handles payment instrument operations
type InstrumentManager interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *models.InstrumentRequest) (*models.Instrument, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Instrument, error)
	ListAll(ctx context.Context, page, size int) (models.Page[models.Instrument], error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Instrument, error)
	Update(ctx context.Context, id uuid.UUID, req *models.InstrumentRequest) (*models.Instrument, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Ensure concrete types implement interfaces
var (
	_ AccountManager    = (*AccountService)(nil)
	_ InstrumentManager = (*InstrumentService)(nil)
)
