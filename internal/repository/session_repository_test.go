package repository_test

import (
	"context"
	"testing"
	"time"

	"dcolors/internal/repository"
	"dcolors/internal/storage"
	redisapp "dcolors/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &redisapp.Client{Client: db}, mock
}

func setupSessionRepo() (*repository.RedisSessionRepo, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisSessionRepo(db), mock
}

func TestSaveSession(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupSessionRepo()
	ttl := 12 * time.Hour

	t.Run("success", func(t *testing.T) {
		mock.ExpectSet("session:sid-1", "admin@dcolors.test", ttl).SetVal("OK")

		err := repo.SaveSession(ctx, "sid-1", "admin@dcolors.test", ttl)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet("session:sid-1", "admin@dcolors.test", ttl).SetErr(redis.ErrClosed)

		err := repo.SaveSession(ctx, "sid-1", "admin@dcolors.test", ttl)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupSessionRepo()

	t.Run("found", func(t *testing.T) {
		mock.ExpectGet("session:sid-1").SetVal("admin@dcolors.test")

		email, err := repo.GetSession(ctx, "sid-1")
		require.NoError(t, err)
		assert.Equal(t, "admin@dcolors.test", email)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectGet("session:sid-2").RedisNil()

		_, err := repo.GetSession(ctx, "sid-2")
		assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet("session:sid-3").SetErr(redis.ErrClosed)

		_, err := repo.GetSession(ctx, "sid-3")
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupSessionRepo()

	mock.ExpectDel("session:sid-1").SetVal(1)
	assert.NoError(t, repo.DeleteSession(ctx, "sid-1"))

	mock.ExpectDel("session:sid-1").SetErr(redis.ErrClosed)
	assert.Error(t, repo.DeleteSession(ctx, "sid-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}
