package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/npl-fantasy/internal/platform/resilience"
)

func newUnreachableRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStoreWithClient(client, "test", time.Minute, resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	})
}

func TestRedisStore_BreakerOpensOnOutage(t *testing.T) {
	store := newUnreachableRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, err := store.Get(ctx, "leaderboard:overall"); err == nil {
			t.Fatalf("expected dial error on attempt %d", i)
		}
	}

	if _, _, err := store.Get(ctx, "leaderboard:overall"); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if err := store.DeletePrefix(ctx, "leaderboard:"); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen on invalidation, got %v", err)
	}
}

func TestRedisStore_GetOrLoadFallsBackToLoader(t *testing.T) {
	store := newUnreachableRedisStore(t)

	got, err := store.GetOrLoad(context.Background(), "teams:all", func(context.Context) ([]byte, error) {
		return []byte(`[{"id":1}]`), nil
	})
	if err != nil {
		t.Fatalf("get or load: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestRedisStore_EmptyKeyIsNoop(t *testing.T) {
	store := newUnreachableRedisStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, ""); ok || err != nil {
		t.Fatalf("empty key must miss without error, ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "", []byte("x")); err != nil {
		t.Fatalf("empty key set: %v", err)
	}
}
