package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"accounts-api/internal/cache"
	"accounts-api/internal/db"
	"accounts-api/internal/models"
	"accounts-api/internal/repository"

	"github.com/google/uuid"
)

// InstrumentService handles payment instrument operations
type InstrumentService struct {
	db    *db.DB
	cache *cache.Cache
}

// NewInstrumentService creates a new InstrumentService
func NewInstrumentService(database *db.DB, c *cache.Cache) *InstrumentService {
	return &InstrumentService{
		db:    database,
		cache: c,
	}
}

// Create validates and persists a new instrument for the given owner. The
// owner row is locked before the active-instrument count so two concurrent
// creations for the same owner cannot both pass the limit check.
func (s *InstrumentService) Create(ctx context.Context, ownerID uuid.UUID, req *models.InstrumentRequest) (*models.Instrument, error) {
	if err := ValidateInstrumentRequest(req); err != nil {
		return nil, validationError(err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	instrument, err := s.performCreate(ctx,
		repository.NewAccountRepository(tx),
		repository.NewInstrumentRepository(tx),
		ownerID,
		req,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	s.cache.Set(instrumentKey(instrument.ID), *instrument)
	s.cache.Delete(ownerInstrumentsKey(ownerID))

	return instrument, nil
}

// performCreate contains the core creation logic: resolve and lock the
// owner, enforce the active-instrument limit, then insert.
func (s *InstrumentService) performCreate(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	instrumentRepo repository.InstrumentRepository,
	ownerID uuid.UUID,
	req *models.InstrumentRequest,
) (*models.Instrument, error) {
	owner, err := accountRepo.FindByIDForUpdate(ctx, ownerID)
	if err != nil {
		return nil, accountError(err, "failed to resolve owner")
	}

	activeCount, err := instrumentRepo.CountActiveByAccount(ctx, owner.ID)
	if err != nil {
		return nil, internalError("failed to count active instruments", err)
	}
	if activeCount >= models.MaxActiveInstruments {
		return nil, &ServiceError{
			Code: ErrCodeLimitExceeded,
			Message: fmt.Sprintf("account already has %d active instruments",
				models.MaxActiveInstruments),
		}
	}

	now := time.Now().UTC()
	instrument := &models.Instrument{
		ID:             uuid.New(),
		AccountID:      owner.ID,
		Number:         req.Number,
		Holder:         req.Holder,
		ExpirationDate: *req.ExpirationDate,
		Active:         *req.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := instrumentRepo.Create(ctx, instrument); err != nil {
		return nil, internalError("failed to create instrument", err)
	}

	return instrument, nil
}

// Get returns the instrument with the given id, reading through the cache
func (s *InstrumentService) Get(ctx context.Context, id uuid.UUID) (*models.Instrument, error) {
	if cached, ok := s.cache.Get(instrumentKey(id)); ok {
		instrument := cached.(models.Instrument)
		return &instrument, nil
	}

	repo := repository.NewInstrumentRepository(s.db)
	instrument, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, instrumentError(err, "failed to get instrument")
	}

	s.cache.Set(instrumentKey(id), *instrument)

	return instrument, nil
}

// ListAll returns one page of instruments across all owners
func (s *InstrumentService) ListAll(ctx context.Context, page, size int) (models.Page[models.Instrument], error) {
	page, size = models.NormalizePaging(page, size)

	repo := repository.NewInstrumentRepository(s.db)

	total, err := repo.Count(ctx)
	if err != nil {
		return models.Page[models.Instrument]{}, internalError("failed to count instruments", err)
	}

	instruments, err := repo.List(ctx, size, page*size)
	if err != nil {
		return models.Page[models.Instrument]{}, internalError("failed to list instruments", err)
	}

	return models.NewPage(instruments, total, page, size), nil
}

// ListByOwner returns every instrument belonging to the owner, unpaginated.
// An owner with no instruments yields an empty slice, not an error.
func (s *InstrumentService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Instrument, error) {
	if cached, ok := s.cache.Get(ownerInstrumentsKey(ownerID)); ok {
		return cached.([]models.Instrument), nil
	}

	repo := repository.NewInstrumentRepository(s.db)
	instruments, err := repo.ListByAccount(ctx, ownerID)
	if err != nil {
		return nil, internalError("failed to list instruments by owner", err)
	}

	s.cache.Set(ownerInstrumentsKey(ownerID), instruments)

	return instruments, nil
}

// Update overwrites number, holder and expiration date of an existing
// instrument and returns the updated record. The active flag is changed only
// via SetActive.
func (s *InstrumentService) Update(ctx context.Context, id uuid.UUID, req *models.InstrumentRequest) (*models.Instrument, error) {
	if err := ValidateInstrumentRequest(req); err != nil {
		return nil, validationError(err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	instrument, err := s.performUpdate(ctx, repository.NewInstrumentRepository(tx), id, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	s.cache.Set(instrumentKey(id), *instrument)
	s.cache.Delete(ownerInstrumentsKey(instrument.AccountID))

	return instrument, nil
}

// performUpdate contains the core update logic over a tx-scoped repository
func (s *InstrumentService) performUpdate(
	ctx context.Context,
	repo repository.InstrumentRepository,
	id uuid.UUID,
	req *models.InstrumentRequest,
) (*models.Instrument, error) {
	instrument := &models.Instrument{
		ID:             id,
		Number:         req.Number,
		Holder:         req.Holder,
		ExpirationDate: *req.ExpirationDate,
	}

	if err := repo.Update(ctx, instrument); err != nil {
		return nil, instrumentError(err, "failed to update instrument")
	}

	updated, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, instrumentError(err, "failed to reload instrument")
	}

	return updated, nil
}

// SetActive flips the active flag via a direct update. This changes the
// count used by the limit check on subsequent creations.
func (s *InstrumentService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	ownerID, err := s.performSetActive(ctx, repository.NewInstrumentRepository(tx), id, active)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return internalError("failed to commit transaction", err)
	}

	s.cache.Delete(instrumentKey(id), ownerInstrumentsKey(ownerID))

	return nil
}

// performSetActive resolves the owner (needed for cache eviction) and flips
// the flag in one transaction.
func (s *InstrumentService) performSetActive(
	ctx context.Context,
	repo repository.InstrumentRepository,
	id uuid.UUID,
	active bool,
) (uuid.UUID, error) {
	instrument, err := repo.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, instrumentError(err, "failed to resolve instrument")
	}

	if err := repo.SetActive(ctx, id, active); err != nil {
		return uuid.Nil, instrumentError(err, "failed to update instrument status")
	}

	return instrument.AccountID, nil
}

// Delete removes an instrument
func (s *InstrumentService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	repo := repository.NewInstrumentRepository(tx)

	instrument, err := repo.FindByID(ctx, id)
	if err != nil {
		return instrumentError(err, "failed to resolve instrument")
	}

	if err := repo.Delete(ctx, id); err != nil {
		return instrumentError(err, "failed to delete instrument")
	}

	if err := tx.Commit(); err != nil {
		return internalError("failed to commit transaction", err)
	}

	s.cache.Delete(instrumentKey(id), ownerInstrumentsKey(instrument.AccountID))

	return nil
}

// instrumentError maps repository errors into the service taxonomy
func instrumentError(err error, message string) error {
	if errors.Is(err, models.ErrNotFound) {
		return &ServiceError{
			Code:    ErrCodeInstrumentNotFound,
			Message: "instrument not found",
			Err:     err,
		}
	}
	return internalError(message, err)
}
