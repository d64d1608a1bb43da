package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/redis/go-redis/v9"
)

// tokenBytes sizes new session tokens; the issued token is twice as many
// hex characters.
const tokenBytes = 16

// keyPrefix namespaces session keys inside a shared Redis instance.
const keyPrefix = "auth_"

// RedisStore keeps sessions in Redis and delegates expiry to the server-side
// TTL set on each key.
type RedisStore struct {
	addr   string
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{addr: addr}
}

func (s *RedisStore) Open(ctx context.Context) error {
	s.client = redis.NewClient(&redis.Options{Addr: s.addr})
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connect %s: %w", s.addr, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return common.ErrorInternal
	}
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("session resolve: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}
