package repository

import (
	"context"
	"errors"
	"time"

	"dcolors/internal/storage"
	redisapp "dcolors/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

func (r *RedisSessionRepo) SaveSession(ctx context.Context, sessionID, email string, ttl time.Duration) error {
	return r.Client.Set(ctx, sessionKey(sessionID), email, ttl).Err()
}

// GetSession returns the email bound to the session or storage.ErrSessionNotFound.
func (r *RedisSessionRepo) GetSession(ctx context.Context, sessionID string) (string, error) {
	val, err := r.Client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrSessionNotFound
	}
	return val, err
}

func (r *RedisSessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.Client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
