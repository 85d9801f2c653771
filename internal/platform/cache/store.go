package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultMaxEntries = 10_000

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

type StoreOption func(*Store)

// WithMaxEntries caps the entry count. A full store first drops expired
// entries, then the entry closest to expiry.
func WithMaxEntries(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is the in-process Cache backend.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	flight     singleflight.Group
}

// NewStore keeps entries for ttl. A non-positive ttl never expires them.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return e.value, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return nil
	}

	e := entry{value: append([]byte(nil), value...)}
	now := s.now()
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.entries[key] = e
	return nil
}

func (s *Store) evictLocked(now time.Time) {
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
	if len(s.entries) < s.maxEntries {
		return
	}

	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, e := range s.entries {
		if !found || e.expiresAt.Before(oldest) {
			victim, oldest, found = key, e.expiresAt, true
		}
	}
	if found {
		delete(s.entries, victim)
	}
}

func (s *Store) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// DeletePrefix drops every key under prefix, e.g. all cached pages of one
// matchday leaderboard.
func (s *Store) DeletePrefix(_ context.Context, prefix string) error {
	if prefix == "" {
		return nil
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader Loader) ([]byte, error) {
	return readThrough(ctx, s, &s.flight, key, loader)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
