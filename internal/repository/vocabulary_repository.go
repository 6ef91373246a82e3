package repository

import (
	"context"
	"fmt"
	"time"

	redisapp "dcolors/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// RedisVocabularyRepo хранит добавленные за сессию значения в sorted set,
// score это время первого добавления, поэтому порядок сохраняется.
type RedisVocabularyRepo struct {
	Client *redisapp.Client
	now    func() time.Time
}

func NewRedisVocabularyRepo(client *redisapp.Client) *RedisVocabularyRepo {
	return &RedisVocabularyRepo{Client: client, now: time.Now}
}

func (r *RedisVocabularyRepo) Remember(ctx context.Context, sessionID string, kind VocabularyKind, value string, ttl time.Duration) error {
	const op = "repository.RedisVocabularyRepo.Remember"

	key := vocabularyKey(sessionID, kind)

	err := r.Client.ZAddNX(ctx, key, redis.Z{
		Score:  float64(r.now().UnixNano()),
		Member: value,
	}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisVocabularyRepo) Values(ctx context.Context, sessionID string, kind VocabularyKind) ([]string, error) {
	const op = "repository.RedisVocabularyRepo.Values"

	values, err := r.Client.ZRange(ctx, vocabularyKey(sessionID, kind), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return values, nil
}

func vocabularyKey(sessionID string, kind VocabularyKind) string {
	return "vocabulary:" + sessionID + ":" + string(kind)
}
