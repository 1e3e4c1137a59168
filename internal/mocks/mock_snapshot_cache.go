package mocks

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// MockSnapshotCache implements domain.SnapshotCache for testing
type MockSnapshotCache struct {
	GetFunc        func(ctx context.Context, userID uint) (*domain.StatusSnapshot, bool)
	PutFunc        func(ctx context.Context, userID uint, snap *domain.StatusSnapshot)
	InvalidateFunc func(ctx context.Context, userID uint)
}

// NewMockSnapshotCache creates a new MockSnapshotCache with default behaviors
func NewMockSnapshotCache() *MockSnapshotCache {
	return &MockSnapshotCache{}
}

func (m *MockSnapshotCache) Get(ctx context.Context, userID uint) (*domain.StatusSnapshot, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	// Default behavior: miss
	return nil, false
}

func (m *MockSnapshotCache) Put(ctx context.Context, userID uint, snap *domain.StatusSnapshot) {
	if m.PutFunc != nil {
		m.PutFunc(ctx, userID, snap)
	}
}

func (m *MockSnapshotCache) Invalidate(ctx context.Context, userID uint) {
	if m.InvalidateFunc != nil {
		m.InvalidateFunc(ctx, userID)
	}
}

// Compile-time interface compliance verification
var _ domain.SnapshotCache = (*MockSnapshotCache)(nil)
