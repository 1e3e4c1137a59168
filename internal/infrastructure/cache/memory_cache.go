package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Uguee/accessvc/domain"
)

// MemoryCache implements domain.SnapshotCache with an in-process TTL
// map. All writes go through one mutex; concurrent refreshes from
// different guarded views cannot race.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[uint]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	snap      domain.StatusSnapshot
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory snapshot cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[uint]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements domain.SnapshotCache
func (c *MemoryCache) Get(ctx context.Context, userID uint) (*domain.StatusSnapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		// Re-check under the write lock: a Put may have refreshed the
		// entry between the read above and acquiring the lock here.
		c.mu.Lock()
		if cur, live := c.entries[userID]; live && c.now().After(cur.expiresAt) {
			delete(c.entries, userID)
		}
		c.mu.Unlock()
		return nil, false
	}
	cp := entry.snap
	return &cp, true
}

// Put implements domain.SnapshotCache
func (c *MemoryCache) Put(ctx context.Context, userID uint, snap *domain.StatusSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = memoryEntry{
		snap:      *snap,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate implements domain.SnapshotCache. It removes exactly one
// user's entry; everyone else's cached snapshot is untouched.
func (c *MemoryCache) Invalidate(ctx context.Context, userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// Compile-time interface compliance verification
var _ domain.SnapshotCache = (*MemoryCache)(nil)
