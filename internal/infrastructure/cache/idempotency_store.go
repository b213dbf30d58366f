package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
)

const idempotencyKeyPrefix = "idempotency-key:"

type redisIdempotencyRepository struct {
	rdb *redis.Client
}

// NewRedisClient connects to addr and verifies the connection with a ping
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// NewRedisIdempotencyRepository stores idempotency keys in Redis. Entries
// carry a TTL matching their expiry, so DeleteExpired has nothing to do.
func NewRedisIdempotencyRepository(rdb *redis.Client) domainRepo.IdempotencyRepository {
	return &redisIdempotencyRepository{rdb: rdb}
}

func (r *redisIdempotencyRepository) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	data, err := r.rdb.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ikey entity.IdempotencyKey
	if err := json.Unmarshal(data, &ikey); err != nil {
		return nil, err
	}
	return &ikey, nil
}

func (r *redisIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	ttl := time.Until(ikey.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}

	data, err := json.Marshal(ikey)
	if err != nil {
		return err
	}
	// first writer wins, like the unique index on the SQL table
	return r.rdb.SetNX(ctx, idempotencyKeyPrefix+ikey.Key, data, ttl).Err()
}

func (r *redisIdempotencyRepository) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

// Close closes the Redis client
func (r *redisIdempotencyRepository) Close() error {
	return r.rdb.Close()
}
