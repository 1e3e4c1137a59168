package mocks

import "github.com/Uguee/accessvc/domain"

// MockPolicyService implements domain.PolicyService for testing
type MockPolicyService struct {
	AddPolicyFunc        func(role domain.Role, view domain.View) error
	RemovePolicyFunc     func(role domain.Role, view domain.View) error
	CheckPermissionFunc  func(role domain.Role, view domain.View) (bool, error)
	HasPolicyForViewFunc func(view domain.View) bool
	GetPoliciesFunc      func() [][]string
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) AddPolicy(role domain.Role, view domain.View) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, view)
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(role domain.Role, view domain.View) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, view)
	}
	return nil
}

func (m *MockPolicyService) CheckPermission(role domain.Role, view domain.View) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, view)
	}
	// Default behavior: granted
	return true, nil
}

func (m *MockPolicyService) HasPolicyForView(view domain.View) bool {
	if m.HasPolicyForViewFunc != nil {
		return m.HasPolicyForViewFunc(view)
	}
	// Default behavior: no policy declared, view is open
	return false
}

func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
