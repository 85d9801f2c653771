package cache

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]byte, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []byte("value"), nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if !bytes.Equal(v, []byte("value")) {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte("cached"), nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("boom")
	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) ([]byte, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	if _, ok, _ := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected failed load to leave key empty")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	_ = store.Set(ctx, "leaderboard:match:1:100:0", []byte("a"))
	_ = store.Set(ctx, "leaderboard:match:1:10:0", []byte("b"))
	_ = store.Set(ctx, "leaderboard:match:2:100:0", []byte("c"))

	if err := store.DeletePrefix(ctx, "leaderboard:match:1:"); err != nil {
		t.Fatalf("DeletePrefix error: %v", err)
	}

	if _, ok, _ := store.Get(ctx, "leaderboard:match:1:100:0"); ok {
		t.Fatalf("expected match 1 page to be evicted")
	}
	if _, ok, _ := store.Get(ctx, "leaderboard:match:2:100:0"); !ok {
		t.Fatalf("expected match 2 page to survive")
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 11, 17, 12, 0, 0, 0, time.UTC)}
	store := NewStore(time.Minute, WithClock(clock.Now))
	_ = store.Set(ctx, "k", []byte("v"))

	clock.Advance(59 * time.Second)
	if _, ok, _ := store.Get(ctx, "k"); !ok {
		t.Fatalf("expected entry before ttl")
	}

	clock.Advance(time.Second)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be dropped, len=%d", store.Len())
	}
}

func TestStore_MaxEntriesEvicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 11, 17, 12, 0, 0, 0, time.UTC)}
	store := NewStore(time.Minute, WithClock(clock.Now), WithMaxEntries(2))

	_ = store.Set(ctx, "leaderboard:overall:100:0", []byte("a"))
	clock.Advance(time.Second)
	_ = store.Set(ctx, "leaderboard:match:1:100:0", []byte("b"))
	clock.Advance(time.Second)
	_ = store.Set(ctx, "leaderboard:match:1:100:0", []byte("b2"))
	if store.Len() != 2 {
		t.Fatalf("overwrite should not evict, len=%d", store.Len())
	}

	_ = store.Set(ctx, "leaderboard:match:2:100:0", []byte("c"))
	if store.Len() != 2 {
		t.Fatalf("expected cap of 2 entries, len=%d", store.Len())
	}
	if _, ok, _ := store.Get(ctx, "leaderboard:overall:100:0"); ok {
		t.Fatalf("expected the entry closest to expiry to be evicted")
	}
	if v, ok, _ := store.Get(ctx, "leaderboard:match:1:100:0"); !ok || string(v) != "b2" {
		t.Fatalf("expected refreshed entry to survive, got %q ok=%v", v, ok)
	}
}

func TestStore_NoTTLNeverExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 11, 17, 12, 0, 0, 0, time.UTC)}
	store := NewStore(0, WithClock(clock.Now))
	_ = store.Set(ctx, "k", []byte("v"))
	clock.Advance(24 * time.Hour)

	if _, ok, _ := store.Get(ctx, "k"); !ok {
		t.Fatalf("expected entry without ttl to persist")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
