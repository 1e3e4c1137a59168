package mocks

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// MockResolver implements domain.StatusResolver for testing
type MockResolver struct {
	ResolveFunc        func(ctx context.Context, user *domain.User, force bool) (*domain.StatusSnapshot, error)
	InvalidateUserFunc func(ctx context.Context, userID uint)

	// Invalidated records every user ID passed to InvalidateUser when
	// no InvalidateUserFunc is set.
	Invalidated []uint
}

// NewMockResolver creates a new MockResolver with default behaviors
func NewMockResolver() *MockResolver {
	return &MockResolver{}
}

func (m *MockResolver) Resolve(ctx context.Context, user *domain.User, force bool) (*domain.StatusSnapshot, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, user, force)
	}
	// Default behavior: empty snapshot for the user
	return &domain.StatusSnapshot{UserID: user.ID, Role: user.Role}, nil
}

func (m *MockResolver) InvalidateUser(ctx context.Context, userID uint) {
	if m.InvalidateUserFunc != nil {
		m.InvalidateUserFunc(ctx, userID)
		return
	}
	m.Invalidated = append(m.Invalidated, userID)
}

// Compile-time interface compliance verification
var _ domain.StatusResolver = (*MockResolver)(nil)
