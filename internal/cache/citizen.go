package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/utils"
)

// CitizenCache holds registry lookup results keyed by lowercased pin code.
// Entries share one fixed TTL independent of any meeting. Misses at the
// registry are never cached, so an unknown pin always re-hits the provider.
type CitizenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCitizenCache(rdb *redis.Client, ttl time.Duration) *CitizenCache {
	return &CitizenCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached profile for a pin code, case-insensitively.
func (c *CitizenCache) Get(ctx context.Context, pin string) (model.CitizenProfile, error) {
	raw, err := c.rdb.Get(ctx, key(nsCitizen, utils.CachePin(pin))).Result()
	if err == redis.Nil {
		return model.CitizenProfile{}, ErrNotFound
	}
	if err != nil {
		return model.CitizenProfile{}, err
	}
	var p model.CitizenProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.CitizenProfile{}, err
	}
	return p, nil
}

// Set writes a profile through with the fixed cache TTL.
func (c *CitizenCache) Set(ctx context.Context, pin string, p model.CitizenProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(nsCitizen, utils.CachePin(pin)), raw, c.ttl).Err()
}
