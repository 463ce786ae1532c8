package flags

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "event:flags:"

// RedisStore shares flags between server instances. Unset keys fall back to
// the defaults given at construction.
type RedisStore struct {
	client   redis.UniversalClient
	defaults Snapshot
}

func NewRedisStore(client redis.UniversalClient, defaults Snapshot) *RedisStore {
	return &RedisStore{client: client, defaults: defaults}
}

func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, f Flag) (bool, error) {
	if !f.Valid() {
		return false, errUnknown(f)
	}
	val, err := s.client.Get(ctx, redisKeyPrefix+string(f)).Result()
	if errors.Is(err, redis.Nil) {
		return s.fallback(f), nil
	}
	if err != nil {
		return false, fmt.Errorf("read flag %s: %w", f, err)
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("corrupt flag %s: %w", f, err)
	}
	return b, nil
}

func (s *RedisStore) Set(ctx context.Context, f Flag, value bool) error {
	if !f.Valid() {
		return errUnknown(f)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+string(f), strconv.FormatBool(value), 0).Err(); err != nil {
		return fmt.Errorf("write flag %s: %w", f, err)
	}
	return nil
}

func (s *RedisStore) fallback(f Flag) bool {
	if f == Photos {
		return s.defaults.AllowPhotos
	}
	return s.defaults.AllowQuiz
}
