package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Uguee/accessvc/domain"
)

// OnboardingServiceImpl implements domain.OnboardingService. Every
// status-changing action ends by invalidating the affected user's
// cached snapshot, so the next resolution reflects the new state
// instead of waiting out the TTL.
type OnboardingServiceImpl struct {
	userRepo        domain.UserRepository
	store           domain.StatusStore
	writer          domain.StatusWriter
	resolver        domain.StatusResolver
	notificationSvc domain.NotificationService
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(
	userRepo domain.UserRepository,
	store domain.StatusStore,
	writer domain.StatusWriter,
	resolver domain.StatusResolver,
	notificationSvc domain.NotificationService,
) domain.OnboardingService {
	return &OnboardingServiceImpl{
		userRepo:        userRepo,
		store:           store,
		writer:          writer,
		resolver:        resolver,
		notificationSvc: notificationSvc,
	}
}

// SubmitDocuments implements domain.OnboardingService
func (s *OnboardingServiceImpl) SubmitDocuments(ctx context.Context, userID uint) error {
	if err := s.writer.CreateDocuments(ctx, userID); err != nil {
		return err
	}
	s.resolver.InvalidateUser(ctx, userID)
	log.Printf("DOCUMENTS_SUBMITTED: user_id=%d", userID)
	return nil
}

// ApplyToInstitution implements domain.OnboardingService. Re-applying
// after a denial creates a fresh pending row; the newest row governs
// all later decisions.
func (s *OnboardingServiceImpl) ApplyToInstitution(ctx context.Context, userID, institutionID uint, institutionalRole string) error {
	reg := &domain.InstitutionRegistration{
		UserID:            userID,
		InstitutionID:     institutionID,
		Status:            domain.RegistrationPending,
		InstitutionalRole: institutionalRole,
	}
	if err := s.writer.CreateRegistration(ctx, reg); err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	s.resolver.InvalidateUser(ctx, userID)
	log.Printf("INSTITUTION_APPLIED: user_id=%d institution_id=%d role=%s", userID, institutionID, institutionalRole)
	return nil
}

// ReviewRegistration implements domain.OnboardingService. Acceptance
// grants the passenger role to identities that have none yet; denial
// only flips the status. The applicant is notified best-effort.
func (s *OnboardingServiceImpl) ReviewRegistration(ctx context.Context, reviewerID, userID uint, approve bool) error {
	status := domain.RegistrationDenied
	if approve {
		status = domain.RegistrationValidated
	}

	if err := s.writer.UpdateRegistrationStatus(ctx, userID, status); err != nil {
		return err
	}

	if approve {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Role == domain.RoleNone {
			if err := s.userRepo.UpdateRole(ctx, userID, domain.RolePassenger); err != nil {
				return fmt.Errorf("failed to assign role: %w", err)
			}
		}
	}

	s.resolver.InvalidateUser(ctx, userID)
	log.Printf("REGISTRATION_REVIEWED: user_id=%d status=%s reviewer_id=%d", userID, status, reviewerID)
	s.notify(ctx, userID, registrationMessage(approve))
	return nil
}

// ApplyForDriver implements domain.OnboardingService. Only users whose
// institution registration is explicitly validated may request driver
// validation.
func (s *OnboardingServiceImpl) ApplyForDriver(ctx context.Context, userID uint) error {
	reg, err := s.store.FetchInstitutionRegistration(ctx, userID)
	if err != nil {
		return fmt.Errorf("institution registration lookup: %w", err)
	}
	if reg == nil || reg.Status != domain.RegistrationValidated {
		return domain.ErrRegistrationNotValidated
	}

	existing, err := s.store.FetchDriverValidation(ctx, userID)
	if err != nil {
		return fmt.Errorf("driver validation lookup: %w", err)
	}
	if existing != nil && existing.Status != domain.DriverDenied {
		return domain.ErrDriverAlreadyRequested
	}

	dv := &domain.DriverValidation{
		UserID:        userID,
		InstitutionID: reg.InstitutionID,
		Status:        domain.DriverPending,
	}
	if err := s.writer.CreateDriverValidation(ctx, dv); err != nil {
		return fmt.Errorf("failed to create driver validation: %w", err)
	}

	s.resolver.InvalidateUser(ctx, userID)
	log.Printf("DRIVER_REQUESTED: user_id=%d institution_id=%d", userID, reg.InstitutionID)
	return nil
}

// ReviewDriver implements domain.OnboardingService
func (s *OnboardingServiceImpl) ReviewDriver(ctx context.Context, reviewerID, userID uint, approve bool) error {
	status := domain.DriverDenied
	if approve {
		status = domain.DriverValidated
	}

	if err := s.writer.UpdateDriverStatus(ctx, userID, status); err != nil {
		return err
	}

	if approve {
		if err := s.userRepo.UpdateRole(ctx, userID, domain.RoleDriver); err != nil {
			return fmt.Errorf("failed to assign driver role: %w", err)
		}
	}

	s.resolver.InvalidateUser(ctx, userID)
	log.Printf("DRIVER_REVIEWED: user_id=%d status=%s reviewer_id=%d", userID, status, reviewerID)
	s.notify(ctx, userID, driverMessage(approve))
	return nil
}

// notify sends an SMS to the user's phone. Notification failures are
// logged, never propagated: a review outcome holds whether or not the
// message got through.
func (s *OnboardingServiceImpl) notify(ctx context.Context, userID uint, message string) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user.Phone == "" {
		return
	}
	if err := s.notificationSvc.SendSMS(user.Phone, message); err != nil {
		log.Printf("NOTIFY_FAILED: user_id=%d error=%v", userID, err)
	}
}

func registrationMessage(approve bool) string {
	if approve {
		return "Your institution registration has been accepted. You can now use the platform."
	}
	return "Your institution registration was denied. You may submit a new application."
}

func driverMessage(approve bool) string {
	if approve {
		return "Your driver request has been approved. You can now offer trips."
	}
	return "Your driver request was denied."
}

// Compile-time interface compliance verification
var _ domain.OnboardingService = (*OnboardingServiceImpl)(nil)
