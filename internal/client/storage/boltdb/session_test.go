package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"rateadmin/internal/client/storage"
)

// создаём тестовое BoltDB хранилище с session bucket
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "session_test.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакет существует
	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketSession) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	ctx := context.Background()
	// Путь с нулевым символом даст ошибку открытия
	invalidPath := string([]byte{0})
	store, err := New(ctx, invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	err = store.Close()
	assert.NoError(t, err)
	assert.Nil(t, store.db)

	// Повторный Close не должен падать
	err = store.Close()
	assert.NoError(t, err)
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	session := &storage.SessionData{
		Username:    "admin",
		AccessToken: "opaque-bearer-token",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	// До сохранения GetSession выдает ErrSessionNotFound
	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	err = store.SaveSession(ctx, session)
	require.NoError(t, err)

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Username, got.Username)
	assert.Equal(t, session.AccessToken, got.AccessToken)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))

	err = store.DeleteSession(ctx)
	require.NoError(t, err)

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStorage_SaveSession_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first := &storage.SessionData{Username: "admin", AccessToken: "token-1", CreatedAt: time.Now()}
	second := &storage.SessionData{Username: "admin", AccessToken: "token-2", CreatedAt: time.Now()}

	require.NoError(t, store.SaveSession(ctx, first))
	require.NoError(t, store.SaveSession(ctx, second))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-2", got.AccessToken)
}

func TestStorage_DeleteSession_NotFound(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	err := store.DeleteSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStorage_IsAuthenticated(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	ok, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	session := &storage.SessionData{
		Username:    "admin",
		AccessToken: "token",
		CreatedAt:   time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, store.SaveSession(ctx, session))

	// Наличие сессии достаточно: возраст токена клиентом не проверяется
	ok, err = store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
