package mocks

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// MockAccessService implements domain.AccessService for testing
type MockAccessService struct {
	ResolveFunc func(ctx context.Context, userID uint, force bool) (*domain.StatusSnapshot, error)
	CheckFunc   func(ctx context.Context, userID uint, view domain.View, allowedRoles []domain.Role) (domain.Decision, error)
}

// NewMockAccessService creates a new MockAccessService with default behaviors
func NewMockAccessService() *MockAccessService {
	return &MockAccessService{}
}

func (m *MockAccessService) Resolve(ctx context.Context, userID uint, force bool) (*domain.StatusSnapshot, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, userID, force)
	}
	// Default behavior: empty snapshot
	return &domain.StatusSnapshot{UserID: userID}, nil
}

func (m *MockAccessService) Check(ctx context.Context, userID uint, view domain.View, allowedRoles []domain.Role) (domain.Decision, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, userID, view, allowedRoles)
	}
	// Default behavior: allowed
	return domain.Decision{Kind: domain.DecisionAllow}, nil
}

// Compile-time interface compliance verification
var _ domain.AccessService = (*MockAccessService)(nil)
