package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

const homeCacheTTL = 5 * time.Minute

// HomeCache is a read-through cache for individual listings.
// Key format: home:<id>
type HomeCache struct {
	client *redis.Client
}

// NewHomeCache creates a HomeCache wrapping the given Redis client.
func NewHomeCache(client *redis.Client) *HomeCache {
	return &HomeCache{client: client}
}

// Get returns the cached listing, or (nil, nil) on a cache miss.
func (c *HomeCache) Get(ctx context.Context, id string) (*domain.Home, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("home cache get: %w", err)
	}

	var home domain.Home
	if err := json.Unmarshal(data, &home); err != nil {
		return nil, fmt.Errorf("home cache decode: %w", err)
	}
	return &home, nil
}

// Set stores a listing with the cache TTL.
func (c *HomeCache) Set(ctx context.Context, home *domain.Home) error {
	data, err := json.Marshal(home)
	if err != nil {
		return fmt.Errorf("home cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(home.ID), data, homeCacheTTL).Err()
}

// Invalidate drops a listing from the cache after a mutation.
func (c *HomeCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *HomeCache) key(id string) string {
	return "home:" + id
}
