package mocks

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// MockOnboardingService implements domain.OnboardingService for testing
type MockOnboardingService struct {
	SubmitDocumentsFunc    func(ctx context.Context, userID uint) error
	ApplyToInstitutionFunc func(ctx context.Context, userID, institutionID uint, institutionalRole string) error
	ReviewRegistrationFunc func(ctx context.Context, reviewerID, userID uint, approve bool) error
	ApplyForDriverFunc     func(ctx context.Context, userID uint) error
	ReviewDriverFunc       func(ctx context.Context, reviewerID, userID uint, approve bool) error
}

// NewMockOnboardingService creates a new MockOnboardingService with default behaviors
func NewMockOnboardingService() *MockOnboardingService {
	return &MockOnboardingService{}
}

func (m *MockOnboardingService) SubmitDocuments(ctx context.Context, userID uint) error {
	if m.SubmitDocumentsFunc != nil {
		return m.SubmitDocumentsFunc(ctx, userID)
	}
	return nil
}

func (m *MockOnboardingService) ApplyToInstitution(ctx context.Context, userID, institutionID uint, institutionalRole string) error {
	if m.ApplyToInstitutionFunc != nil {
		return m.ApplyToInstitutionFunc(ctx, userID, institutionID, institutionalRole)
	}
	return nil
}

func (m *MockOnboardingService) ReviewRegistration(ctx context.Context, reviewerID, userID uint, approve bool) error {
	if m.ReviewRegistrationFunc != nil {
		return m.ReviewRegistrationFunc(ctx, reviewerID, userID, approve)
	}
	return nil
}

func (m *MockOnboardingService) ApplyForDriver(ctx context.Context, userID uint) error {
	if m.ApplyForDriverFunc != nil {
		return m.ApplyForDriverFunc(ctx, userID)
	}
	return nil
}

func (m *MockOnboardingService) ReviewDriver(ctx context.Context, reviewerID, userID uint, approve bool) error {
	if m.ReviewDriverFunc != nil {
		return m.ReviewDriverFunc(ctx, reviewerID, userID, approve)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OnboardingService = (*MockOnboardingService)(nil)
