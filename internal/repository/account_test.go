package repository

import (
	"context"
	"testing"

	"accounts-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndFindByID(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)

	repo := NewAccountRepository(database)
	created := mustCreateAccount(t, repo, "Ulyana", "Kurylina")

	t.Run("existing account", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), created.ID)

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Ulyana", found.Name)
		assert.Equal(t, "Kurylina", found.Surname)
		assert.Equal(t, created.Email, found.Email)
		require.NotNil(t, found.BirthDate)
		assert.Equal(t, "1990-05-20", found.BirthDate.String())
		assert.True(t, found.Active)
	})

	t.Run("non-existent account", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), uuid.New())

		assert.Nil(t, found)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)

	repo := NewAccountRepository(database)
	existing := mustCreateAccount(t, repo, "Ulyana", "Kurylina")

	duplicate := *existing
	duplicate.ID = uuid.New()

	err := repo.Create(context.Background(), &duplicate)

	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestAccountRepository_List(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)

	repo := NewAccountRepository(database)
	mustCreateAccount(t, repo, "Ulyana", "Kurylina")
	mustCreateAccount(t, repo, "Maksim", "Petrov")
	mustCreateAccount(t, repo, "Anna", "Kurochkina")

	t.Run("no filter returns everyone", func(t *testing.T) {
		accounts, err := repo.List(context.Background(), models.AccountFilter{}, 10, 0)

		require.NoError(t, err)
		assert.Len(t, accounts, 3)

		total, err := repo.Count(context.Background(), models.AccountFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("name filter is case-insensitive substring", func(t *testing.T) {
		name := "ULYA"
		filter := models.AccountFilter{Name: &name}

		accounts, err := repo.List(context.Background(), filter, 10, 0)

		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "Ulyana", accounts[0].Name)
	})

	t.Run("surname filter counts matches", func(t *testing.T) {
		surname := "kuro"
		filter := models.AccountFilter{Surname: &surname}

		total, err := repo.Count(context.Background(), filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("combined filters intersect", func(t *testing.T) {
		name := "anna"
		surname := "petrov"
		filter := models.AccountFilter{Name: &name, Surname: &surname}

		accounts, err := repo.List(context.Background(), filter, 10, 0)

		require.NoError(t, err)
		assert.Empty(t, accounts)
	})

	t.Run("window respects limit and offset", func(t *testing.T) {
		firstPage, err := repo.List(context.Background(), models.AccountFilter{}, 2, 0)
		require.NoError(t, err)
		assert.Len(t, firstPage, 2)

		secondPage, err := repo.List(context.Background(), models.AccountFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Len(t, secondPage, 1)
	})
}

func TestAccountRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)

	repo := NewAccountRepository(database)

	t.Run("overwrites editable fields", func(t *testing.T) {
		created := mustCreateAccount(t, repo, "Ulyana", "Kurylina")

		created.Name = "Yuliana"
		created.Email = uuid.NewString() + "@example.com"

		require.NoError(t, repo.Update(context.Background(), created))

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Yuliana", found.Name)
		assert.Equal(t, created.Email, found.Email)
		assert.True(t, found.Active, "update must not touch the active flag")
	})

	t.Run("non-existent account", func(t *testing.T) {
		missing := &models.Account{ID: uuid.New(), Name: "Ghost", Surname: "Record", Email: "ghost@example.com"}

		err := repo.Update(context.Background(), missing)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestAccountRepository_SetActive(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)

	repo := NewAccountRepository(database)
	created := mustCreateAccount(t, repo, "Ulyana", "Kurylina")

	require.NoError(t, repo.SetActive(context.Background(), created.ID, false))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)

	err = repo.SetActive(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAccountRepository_DeleteCascades(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)

	accountRepo := NewAccountRepository(database)
	instrumentRepo := NewInstrumentRepository(database)

	owner := mustCreateAccount(t, accountRepo, "Ulyana", "Kurylina")
	instrument := mustCreateInstrument(t, instrumentRepo, owner.ID, true)

	require.NoError(t, accountRepo.Delete(context.Background(), owner.ID))

	_, err := accountRepo.FindByID(context.Background(), owner.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = instrumentRepo.FindByID(context.Background(), instrument.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "owned instruments should be removed with the account")

	err = accountRepo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
