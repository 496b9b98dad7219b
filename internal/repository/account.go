package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"accounts-api/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, filter models.AccountFilter, limit, offset int) ([]models.Account, error)
	Count(ctx context.Context, filter models.AccountFilter) (int64, error)
	Update(ctx context.Context, account *models.Account) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// accountRepository implements AccountRepository
type accountRepository struct {
	q Querier
}

// NewAccountRepository creates a new AccountRepository over the given querier
func NewAccountRepository(q Querier) AccountRepository {
	return &accountRepository{q: q}
}

const accountColumns = `id, name, surname, birth_date, email, active, created_at, updated_at`

// uniqueViolation is the postgres error code for a unique index violation
const uniqueViolation = "23505"

func isDuplicateEmail(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Create inserts a new account row
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, name, surname, birth_date, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Surname,
		birthDateArg(account.BirthDate),
		account.Email,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEmail(err) {
			return fmt.Errorf("email %q: %w", account.Email, models.ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindByID retrieves an account by its UUID
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// FindByIDForUpdate retrieves an account and locks its row for the duration
// of the surrounding transaction. Used to serialize check-then-insert
// sequences against the same owner.
func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// List returns one page of accounts matching the filter, ordered by
// creation time so paging is stable.
func (r *accountRepository) List(ctx context.Context, filter models.AccountFilter, limit, offset int) ([]models.Account, error) {
	where, args := buildAccountFilter(filter)
	args = append(args, limit, offset)

	query := `SELECT ` + accountColumns + ` FROM accounts` + where +
		` ORDER BY created_at, id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Count returns the number of accounts matching the filter
func (r *accountRepository) Count(ctx context.Context, filter models.AccountFilter) (int64, error) {
	where, args := buildAccountFilter(filter)

	var total int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	return total, nil
}

// Update overwrites the editable fields of an existing account
func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, surname = $3, birth_date = $4, email = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Surname,
		birthDateArg(account.BirthDate),
		account.Email,
	)
	if err != nil {
		if isDuplicateEmail(err) {
			return fmt.Errorf("email %q: %w", account.Email, models.ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	return requireRow(result, "account")
}

// SetActive flips the active flag directly, without a full read-modify-write
func (r *accountRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE accounts SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}

	return requireRow(result, "account")
}

// Delete removes an account. Owned instruments go with it via the FK cascade.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return requireRow(result, "account")
}

// buildAccountFilter appends a case-insensitive substring condition per
// non-nil filter field.
func buildAccountFilter(filter models.AccountFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Name != nil {
		args = append(args, *filter.Name)
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Surname != nil {
		args = append(args, *filter.Surname)
		conditions = append(conditions, fmt.Sprintf("surname ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *accountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	var birthDate sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Surname,
		&birthDate,
		&account.Email,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	if birthDate.Valid {
		d := models.Date{Time: birthDate.Time.UTC()}
		account.BirthDate = &d
	}

	return &account, nil
}

// birthDateArg unwraps the optional date so a nil pointer becomes SQL NULL
func birthDateArg(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

// requireRow converts a zero-rows-affected result into ErrNotFound
func requireRow(result sql.Result, entity string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", entity, models.ErrNotFound)
	}
	return nil
}
