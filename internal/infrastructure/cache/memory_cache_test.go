package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Uguee/accessvc/domain"
)

func sampleSnapshot(userID uint) *domain.StatusSnapshot {
	return &domain.StatusSnapshot{
		UserID:            userID,
		Role:              domain.RolePassenger,
		HasDocuments:      true,
		HasInstitution:    true,
		InstitutionStatus: domain.RegistrationValidated,
		DriverStatus:      domain.DriverNone,
		ResolvedAt:        time.Now(),
	}
}

func TestMemoryCache_PutGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, 1); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	c.Put(ctx, 1, sampleSnapshot(1))
	snap, ok := c.Get(ctx, 1)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if snap.UserID != 1 || !snap.HasDocuments {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	// The cache hands out copies; mutating one must not poison the entry.
	snap.HasDocuments = false
	again, _ := c.Get(ctx, 1)
	if !again.HasDocuments {
		t.Error("expected the cached entry to be unaffected by caller mutation")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(5 * time.Minute)
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put(ctx, 1, sampleSnapshot(1))

	current = current.Add(4 * time.Minute)
	if _, ok := c.Get(ctx, 1); !ok {
		t.Error("expected a hit inside the TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, 1); ok {
		t.Error("expected a miss after the TTL elapsed")
	}
}

func TestMemoryCache_ExpiredGetKeepsRefreshedEntry(t *testing.T) {
	c := NewMemoryCache(5 * time.Minute)
	ctx := context.Background()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put(ctx, 1, sampleSnapshot(1))

	// The first clock read sees the entry expired; by the time the
	// eviction path re-checks it, a refresh has moved the deadline
	// forward again. The entry must survive.
	calls := 0
	c.now = func() time.Time {
		calls++
		if calls == 1 {
			return base.Add(6 * time.Minute)
		}
		return base.Add(4 * time.Minute)
	}

	if _, ok := c.Get(ctx, 1); ok {
		t.Fatal("expected a miss for the expired read")
	}

	c.now = func() time.Time { return base.Add(4 * time.Minute) }
	if _, ok := c.Get(ctx, 1); !ok {
		t.Error("expected the still-live entry to survive the eviction path")
	}
}

func TestMemoryCache_InvalidateIsPerUser(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	c.Put(ctx, 1, sampleSnapshot(1))
	c.Put(ctx, 2, sampleSnapshot(2))

	c.Invalidate(ctx, 1)

	if _, ok := c.Get(ctx, 1); ok {
		t.Error("expected user 1 to be evicted")
	}
	if _, ok := c.Get(ctx, 2); !ok {
		t.Error("expected user 2 to be untouched")
	}
}
