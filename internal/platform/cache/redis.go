package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/npl-fantasy/internal/platform/resilience"
)

const redisScanBatch = 200

// RedisStore is the Cache backend shared across API replicas. Calls go
// through a circuit breaker; while it is open reads miss and writes fail
// fast, so callers fall back to their loaders.
type RedisStore struct {
	client    redis.UniversalClient
	ttl       time.Duration
	namespace string
	flight    singleflight.Group
	breaker   *resilience.CircuitBreaker
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL, namespace string, ttl time.Duration, breaker resilience.CircuitBreakerConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client, namespace, ttl, breaker), nil
}

func NewRedisStoreWithClient(client redis.UniversalClient, namespace string, ttl time.Duration, breaker resilience.CircuitBreakerConfig) *RedisStore {
	return &RedisStore{
		client:    client,
		ttl:       ttl,
		namespace: namespace,
		breaker:   resilience.NewCircuitBreaker(breaker),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	var (
		value []byte
		found bool
	)
	err := s.breaker.Do(func() error {
		raw, err := s.client.Get(ctx, s.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		value, found = raw, true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, found, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return nil
	}

	err := s.breaker.Do(func() error {
		return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	err := s.breaker.Do(func() error {
		return s.client.Del(ctx, s.key(key)).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return nil
	}

	return s.breaker.Do(func() error {
		return s.deletePrefix(ctx, prefix)
	})
}

func (s *RedisStore) deletePrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, s.key(prefix)+"*", redisScanBatch).Iterator()
	batch := make([]string, 0, redisScanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == redisScanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis del prefix %s: %w", prefix, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan prefix %s: %w", prefix, err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis del prefix %s: %w", prefix, err)
		}
	}

	return nil
}

func (s *RedisStore) GetOrLoad(ctx context.Context, key string, loader Loader) ([]byte, error) {
	return readThrough(ctx, s, &s.flight, key, loader)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
