package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accounts-api/internal/models"

	"github.com/google/uuid"
)

// InstrumentRepository defines the interface for payment instrument data access
type InstrumentRepository interface {
	Create(ctx context.Context, instrument *models.Instrument) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Instrument, error)
	List(ctx context.Context, limit, offset int) ([]models.Instrument, error)
	Count(ctx context.Context) (int64, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Instrument, error)
	CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int, error)
	Update(ctx context.Context, instrument *models.Instrument) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// instrumentRepository implements InstrumentRepository
type instrumentRepository struct {
	q Querier
}

// NewInstrumentRepository creates a new InstrumentRepository over the given querier
func NewInstrumentRepository(q Querier) InstrumentRepository {
	return &instrumentRepository{q: q}
}

const instrumentColumns = `id, account_id, number, holder, expiration_date, active, created_at, updated_at`

// Create inserts a new instrument row
func (r *instrumentRepository) Create(ctx context.Context, instrument *models.Instrument) error {
	query := `
		INSERT INTO payment_instruments (id, account_id, number, holder, expiration_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		instrument.ID,
		instrument.AccountID,
		instrument.Number,
		instrument.Holder,
		instrument.ExpirationDate.Time,
		instrument.Active,
		instrument.CreatedAt,
		instrument.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create instrument: %w", err)
	}

	return nil
}

// FindByID retrieves an instrument by its UUID
func (r *instrumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM payment_instruments WHERE id = $1`

	instrument, err := scanInstrument(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("instrument: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return instrument, nil
}

// List returns one page of instruments across all owners
func (r *instrumentRepository) List(ctx context.Context, limit, offset int) ([]models.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM payment_instruments ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.q.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return collectInstruments(rows)
}

// Count returns the total number of instruments
func (r *instrumentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM payment_instruments`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count instruments: %w", err)
	}

	return total, nil
}

// ListByAccount returns every instrument owned by the given account,
// unpaginated. An owner with no instruments yields an empty slice.
func (r *instrumentRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM payment_instruments WHERE account_id = $1 ORDER BY created_at, id`

	rows, err := r.q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments by account: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return collectInstruments(rows)
}

// CountActiveByAccount counts the owner's currently active instruments.
// Feeds the limit check on instrument creation.
func (r *instrumentRepository) CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payment_instruments WHERE account_id = $1 AND active`,
		accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active instruments: %w", err)
	}

	return count, nil
}

// Update overwrites the editable fields of an existing instrument. The
// active flag is deliberately left alone; it changes only via SetActive.
func (r *instrumentRepository) Update(ctx context.Context, instrument *models.Instrument) error {
	query := `
		UPDATE payment_instruments
		SET number = $2, holder = $3, expiration_date = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		instrument.ID,
		instrument.Number,
		instrument.Holder,
		instrument.ExpirationDate.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to update instrument: %w", err)
	}

	return requireRow(result, "instrument")
}

// SetActive flips the active flag directly
func (r *instrumentRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE payment_instruments SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to update instrument status: %w", err)
	}

	return requireRow(result, "instrument")
}

// Delete removes an instrument
func (r *instrumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM payment_instruments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete instrument: %w", err)
	}

	return requireRow(result, "instrument")
}

func scanInstrument(row rowScanner) (*models.Instrument, error) {
	var instrument models.Instrument

	err := row.Scan(
		&instrument.ID,
		&instrument.AccountID,
		&instrument.Number,
		&instrument.Holder,
		&instrument.ExpirationDate,
		&instrument.Active,
		&instrument.CreatedAt,
		&instrument.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan instrument: %w", err)
	}

	return &instrument, nil
}

func collectInstruments(rows *sql.Rows) ([]models.Instrument, error) {
	instruments := []models.Instrument{}
	for rows.Next() {
		instrument, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, *instrument)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate instruments: %w", err)
	}

	return instruments, nil
}
