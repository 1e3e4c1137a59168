package mocks

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// MockStatusStore implements domain.StatusStore for testing
type MockStatusStore struct {
	FetchDocumentsFunc               func(ctx context.Context, userID uint) (bool, error)
	FetchInstitutionRegistrationFunc func(ctx context.Context, userID uint) (*domain.InstitutionRegistration, error)
	FetchDriverValidationFunc        func(ctx context.Context, userID uint) (*domain.DriverValidation, error)
}

// NewMockStatusStore creates a new MockStatusStore with default behaviors
func NewMockStatusStore() *MockStatusStore {
	return &MockStatusStore{}
}

// FetchDocuments checks the presence-only documents row
func (m *MockStatusStore) FetchDocuments(ctx context.Context, userID uint) (bool, error) {
	if m.FetchDocumentsFunc != nil {
		return m.FetchDocumentsFunc(ctx, userID)
	}
	// Default behavior: no documents
	return false, nil
}

// FetchInstitutionRegistration fetches the registration row
func (m *MockStatusStore) FetchInstitutionRegistration(ctx context.Context, userID uint) (*domain.InstitutionRegistration, error) {
	if m.FetchInstitutionRegistrationFunc != nil {
		return m.FetchInstitutionRegistrationFunc(ctx, userID)
	}
	// Default behavior: no registration
	return nil, nil
}

// FetchDriverValidation fetches the driver validation row
func (m *MockStatusStore) FetchDriverValidation(ctx context.Context, userID uint) (*domain.DriverValidation, error) {
	if m.FetchDriverValidationFunc != nil {
		return m.FetchDriverValidationFunc(ctx, userID)
	}
	// Default behavior: no driver row
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.StatusStore = (*MockStatusStore)(nil)
