package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"accounts-api/internal/config"
	"accounts-api/internal/db"
	"accounts-api/internal/models"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	pool, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := pool.PingContext(context.Background()); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	database := db.NewTestDB(pool)

	runMigrations(t, database)
	truncateTables(t, database)

	return database
}

func runMigrations(t *testing.T, database *db.DB) {
	t.Helper()

	migrationPath := filepath.Join("..", "db", "migrations", "000001_init.up.sql")
	sqlBytes, err := os.ReadFile(migrationPath) // #nosec G304
	if err != nil {
		t.Fatalf("failed to read migration file: %v", err)
	}

	if _, err := database.ExecContext(context.Background(), string(sqlBytes)); err != nil {
		t.Logf("migration execution completed (tables may already exist)")
	}
}

func cleanupTestDB(t *testing.T, database *db.DB) {
	t.Helper()
	if err := database.Close(); err != nil {
		log.Printf("failed to close test database: %v", err)
	}
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	tables := []string{"payment_instruments", "idempotency_keys", "accounts"}
	for _, table := range tables {
		_, err := database.ExecContext(context.Background(), "TRUNCATE TABLE "+table+" CASCADE")
		if err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

// mustCreateAccount inserts an account with a unique email and returns it
func mustCreateAccount(t *testing.T, repo AccountRepository, name, surname string) *models.Account {
	t.Helper()

	now := time.Now().UTC()
	birthDate := models.NewDate(1990, time.May, 20)
	account := &models.Account{
		ID:        uuid.New(),
		Name:      name,
		Surname:   surname,
		Email:     uuid.NewString() + "@example.com",
		BirthDate: &birthDate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	return account
}

// mustCreateInstrument inserts an instrument for the given owner
func mustCreateInstrument(t *testing.T, repo InstrumentRepository, ownerID uuid.UUID, active bool) *models.Instrument {
	t.Helper()

	now := time.Now().UTC()
	instrument := &models.Instrument{
		ID:             uuid.New(),
		AccountID:      ownerID,
		Number:         "4111111111111111",
		Holder:         "TEST HOLDER",
		ExpirationDate: models.NewDate(2030, time.December, 1),
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := repo.Create(context.Background(), instrument); err != nil {
		t.Fatalf("failed to create instrument: %v", err)
	}

	return instrument
}
