// Package service implements the business operations of the accounts API.
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

// AccountService handles account record operations
type AccountService struct {
	db    *db.DB
	cache *cache.Cache
}

// NewAccountService creates a new AccountService. The cache may be nil, in
// which case every read goes to storage.
func NewAccountService(database *db.DB, c *cache.Cache) *AccountService {
	return &AccountService{
		db:    database,
		cache: c,
	}
}

// Create validates and persists a new account. The active flag is forced to
// true at creation regardless of the payload.
func (s *AccountService) Create(ctx context.Context, req *models.AccountRequest) (*models.Account, error) {
	if err := ValidateAccountRequest(req); err != nil {
		return nil, validationError(err)
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:        uuid.New(),
		Name:      req.Name,
		Surname:   req.Surname,
		BirthDate: req.BirthDate,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	repo := repository.NewAccountRepository(s.db)
	if err := repo.Create(ctx, account); err != nil {
		return nil, accountError(err, "failed to create account")
	}

	s.cache.Set(accountKey(account.ID), *account)

	return account, nil
}

// Get returns the account with the given id, reading through the cache
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	if cached, ok := s.cache.Get(accountKey(id)); ok {
		account := cached.(models.Account)
		return &account, nil
	}

	repo := repository.NewAccountRepository(s.db)
	account, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, accountError(err, "failed to get account")
	}

	s.cache.Set(accountKey(id), *account)

	return account, nil
}

// List returns one page of accounts matching the optional name/surname
// substring filters. Listing pages are not cached.
func (s *AccountService) List(ctx context.Context, filter models.AccountFilter, page, size int) (models.Page[models.Account], error) {
	page, size = models.NormalizePaging(page, size)

	repo := repository.NewAccountRepository(s.db)

	total, err := repo.Count(ctx, filter)
	if err != nil {
		return models.Page[models.Account]{}, accountError(err, "failed to count accounts")
	}

	accounts, err := repo.List(ctx, filter, size, page*size)
	if err != nil {
		return models.Page[models.Account]{}, accountError(err, "failed to list accounts")
	}

	return models.NewPage(accounts, total, page, size), nil
}

// Update overwrites the editable fields (name, surname, birth date, email)
// of an existing account and returns the updated record. The active flag and
// timestamps are not touched directly; updated_at refreshes as a side effect.
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req *models.AccountRequest) (*models.Account, error) {
	if err := ValidateAccountRequest(req); err != nil {
		return nil, validationError(err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	account, err := s.performUpdate(ctx, repository.NewAccountRepository(tx), id, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	s.cache.Set(accountKey(id), *account)

	return account, nil
}

// performUpdate contains the core update logic over a tx-scoped repository
func (s *AccountService) performUpdate(
	ctx context.Context,
	repo repository.AccountRepository,
	id uuid.UUID,
	req *models.AccountRequest,
) (*models.Account, error) {
	account := &models.Account{
		ID:        id,
		Name:      req.Name,
		Surname:   req.Surname,
		BirthDate: req.BirthDate,
		Email:     req.Email,
	}

	if err := repo.Update(ctx, account); err != nil {
		return nil, accountError(err, "failed to update account")
	}

	updated, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, accountError(err, "failed to reload account")
	}

	return updated, nil
}

// SetActive flips the active flag via a direct update
func (s *AccountService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	repo := repository.NewAccountRepository(s.db)
	if err := repo.SetActive(ctx, id, active); err != nil {
		return accountError(err, "failed to update account status")
	}

	s.cache.Delete(accountKey(id))

	return nil
}

// Delete removes the account and, via the storage cascade, all of its
// instruments. Cached entries for the account, its instruments, and the
// owner collection are evicted after commit.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	instrumentIDs, err := s.performDelete(ctx,
		repository.NewAccountRepository(tx),
		repository.NewInstrumentRepository(tx),
		id,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return internalError("failed to commit transaction", err)
	}

	keys := []string{accountKey(id), ownerInstrumentsKey(id)}
	for _, instrumentID := range instrumentIDs {
		keys = append(keys, instrumentKey(instrumentID))
	}
	s.cache.Delete(keys...)

	return nil
}

// performDelete removes the account inside the transaction and reports the
// ids of the cascaded instruments so their cache entries can be evicted.
func (s *AccountService) performDelete(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	instrumentRepo repository.InstrumentRepository,
	id uuid.UUID,
) ([]uuid.UUID, error) {
	instruments, err := instrumentRepo.ListByAccount(ctx, id)
	if err != nil {
		return nil, internalError("failed to list owned instruments", err)
	}

	if err := accountRepo.Delete(ctx, id); err != nil {
		return nil, accountError(err, "failed to delete account")
	}

	ids := make([]uuid.UUID, 0, len(instruments))
	for _, instrument := range instruments {
		ids = append(ids, instrument.ID)
	}

	return ids, nil
}

// accountError maps repository errors into the service taxonomy
func accountError(err error, message string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return &ServiceError{
			Code:    ErrCodeAccountNotFound,
			Message: "account not found",
			Err:     err,
		}
	case errors.Is(err, models.ErrDuplicateEmail):
		return &ServiceError{
			Code:    ErrCodeDuplicateEmail,
			Message: "an account with this email already exists",
			Err:     err,
		}
	default:
		return internalError(message, err)
	}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: fmt.Sprintf("%s: %v", message, err),
		Err:     err,
	}
}
