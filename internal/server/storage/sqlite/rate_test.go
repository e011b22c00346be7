package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rateadmin/internal/models"
	"rateadmin/internal/server/storage"
)

func newTestRate(idOp int, tasa float64, email string) *models.Rate {
	now := time.Now()
	return &models.Rate{
		IDOp:      idOp,
		Tasa:      tasa,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRateStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rate := newTestRate(1052, 9.75, "ops@example.com")
	require.NoError(t, s.CreateRate(ctx, rate))

	retrieved, err := s.GetRate(ctx, 1052)
	require.NoError(t, err)
	assert.Equal(t, 1052, retrieved.IDOp)
	assert.InDelta(t, 9.75, retrieved.Tasa, 0.0001)
	assert.Equal(t, "ops@example.com", retrieved.Email)
}

func TestRateStorage_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateRate(ctx, newTestRate(1052, 9.75, "a@example.com")))

	err := s.CreateRate(ctx, newTestRate(1052, 10, "b@example.com"))
	assert.ErrorIs(t, err, storage.ErrRateAlreadyExists)
}

func TestRateStorage_ListOrderedByOperationID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateRate(ctx, newTestRate(205, 10, "b@example.com")))
	require.NoError(t, s.CreateRate(ctx, newTestRate(101, 9.5, "a@example.com")))

	rates, err := s.ListRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, 101, rates[0].IDOp)
	assert.Equal(t, 205, rates[1].IDOp)
}

func TestRateStorage_ListEmpty(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rates, err := s.ListRates(ctx)
	require.NoError(t, err)
	assert.Empty(t, rates)
}

func TestRateStorage_Update(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateRate(ctx, newTestRate(1052, 9.75, "ops@example.com")))
	require.NoError(t, s.UpdateRate(ctx, 1052, 12.25))

	retrieved, err := s.GetRate(ctx, 1052)
	require.NoError(t, err)
	assert.InDelta(t, 12.25, retrieved.Tasa, 0.0001)
	// Email не меняется при обновлении тарифа
	assert.Equal(t, "ops@example.com", retrieved.Email)
}

func TestRateStorage_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.UpdateRate(ctx, 9999, 1.0)
	assert.ErrorIs(t, err, storage.ErrRateNotFound)
}

func TestRateStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateRate(ctx, newTestRate(1052, 9.75, "ops@example.com")))
	require.NoError(t, s.DeleteRate(ctx, 1052))

	_, err := s.GetRate(ctx, 1052)
	assert.ErrorIs(t, err, storage.ErrRateNotFound)
}

func TestRateStorage_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.DeleteRate(ctx, 9999)
	assert.ErrorIs(t, err, storage.ErrRateNotFound)
}
