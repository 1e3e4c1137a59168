package mocks

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// MockStatusWriter implements domain.StatusWriter for testing
type MockStatusWriter struct {
	CreateDocumentsFunc          func(ctx context.Context, userID uint) error
	CreateRegistrationFunc       func(ctx context.Context, reg *domain.InstitutionRegistration) error
	UpdateRegistrationStatusFunc func(ctx context.Context, userID uint, status domain.RegistrationStatus) error
	CreateDriverValidationFunc   func(ctx context.Context, dv *domain.DriverValidation) error
	UpdateDriverStatusFunc       func(ctx context.Context, userID uint, status domain.DriverStatus) error
}

// NewMockStatusWriter creates a new MockStatusWriter with default behaviors
func NewMockStatusWriter() *MockStatusWriter {
	return &MockStatusWriter{}
}

func (m *MockStatusWriter) CreateDocuments(ctx context.Context, userID uint) error {
	if m.CreateDocumentsFunc != nil {
		return m.CreateDocumentsFunc(ctx, userID)
	}
	return nil
}

func (m *MockStatusWriter) CreateRegistration(ctx context.Context, reg *domain.InstitutionRegistration) error {
	if m.CreateRegistrationFunc != nil {
		return m.CreateRegistrationFunc(ctx, reg)
	}
	return nil
}

func (m *MockStatusWriter) UpdateRegistrationStatus(ctx context.Context, userID uint, status domain.RegistrationStatus) error {
	if m.UpdateRegistrationStatusFunc != nil {
		return m.UpdateRegistrationStatusFunc(ctx, userID, status)
	}
	return nil
}

func (m *MockStatusWriter) CreateDriverValidation(ctx context.Context, dv *domain.DriverValidation) error {
	if m.CreateDriverValidationFunc != nil {
		return m.CreateDriverValidationFunc(ctx, dv)
	}
	return nil
}

func (m *MockStatusWriter) UpdateDriverStatus(ctx context.Context, userID uint, status domain.DriverStatus) error {
	if m.UpdateDriverStatusFunc != nil {
		return m.UpdateDriverStatusFunc(ctx, userID, status)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.StatusWriter = (*MockStatusWriter)(nil)
