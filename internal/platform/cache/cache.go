package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Loader produces the encoded value for a missing key.
type Loader func(ctx context.Context) ([]byte, error)

// Cache is a byte-oriented read-through cache shared by the in-process and
// redis backends.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	GetOrLoad(ctx context.Context, key string, loader Loader) ([]byte, error)
}

// readThrough serves key from c, running loader once per key across
// concurrent misses. Cache errors degrade to a load; a failed Set is ignored.
func readThrough(ctx context.Context, c Cache, flight *singleflight.Group, key string, loader Loader) ([]byte, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok, err := c.Get(ctx, key); err == nil && ok {
		return value, nil
	}

	value, err, _ := flight.Do(key, func() (any, error) {
		if cached, ok, err := c.Get(ctx, key); err == nil && ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	out, _ := value.([]byte)
	return out, nil
}
