package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Uguee/accessvc/domain"
)

// RedisCache implements domain.SnapshotCache on Redis, for deployments
// where several service instances must agree on one snapshot per user.
// Redis owns the TTL; a read miss and an expired entry are the same
// thing.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a redis-backed snapshot cache
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "snapshot:",
		ttl:    ttl,
	}
}

func (c *RedisCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", c.prefix, userID)
}

// Get implements domain.SnapshotCache. Cache failures degrade to a
// miss: the resolver falls through to the store, never the other way.
func (c *RedisCache) Get(ctx context.Context, userID uint) (*domain.StatusSnapshot, bool) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("SNAPSHOT_CACHE_READ_FAILED: user_id=%d error=%v", userID, err)
		}
		return nil, false
	}

	var snap domain.StatusSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		log.Printf("SNAPSHOT_CACHE_DECODE_FAILED: user_id=%d error=%v", userID, err)
		c.client.Del(ctx, c.key(userID))
		return nil, false
	}
	return &snap, true
}

// Put implements domain.SnapshotCache
func (c *RedisCache) Put(ctx context.Context, userID uint, snap *domain.StatusSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("SNAPSHOT_CACHE_ENCODE_FAILED: user_id=%d error=%v", userID, err)
		return
	}
	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		log.Printf("SNAPSHOT_CACHE_WRITE_FAILED: user_id=%d error=%v", userID, err)
	}
}

// Invalidate implements domain.SnapshotCache
func (c *RedisCache) Invalidate(ctx context.Context, userID uint) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		log.Printf("SNAPSHOT_CACHE_INVALIDATE_FAILED: user_id=%d error=%v", userID, err)
	}
}

// Compile-time interface compliance verification
var _ domain.SnapshotCache = (*RedisCache)(nil)
