package services

import (
	"context"

	"github.com/Uguee/accessvc/domain"
)

// AccessServiceImpl implements domain.AccessService. This is the only
// surface consumers touch: they ask for a snapshot or a decision and
// never read raw status rows.
type AccessServiceImpl struct {
	userRepo  domain.UserRepository
	resolver  domain.StatusResolver
	policySvc domain.PolicyService
}

// NewAccessService creates a new access service
func NewAccessService(userRepo domain.UserRepository, resolver domain.StatusResolver, policySvc domain.PolicyService) domain.AccessService {
	return &AccessServiceImpl{
		userRepo:  userRepo,
		resolver:  resolver,
		policySvc: policySvc,
	}
}

// Resolve implements domain.AccessService
func (s *AccessServiceImpl) Resolve(ctx context.Context, userID uint, force bool) (*domain.StatusSnapshot, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, user, force)
}

// Check implements domain.AccessService. The pipeline decision runs
// first; the role allow-list only matters for users who already
// cleared every stage.
func (s *AccessServiceImpl) Check(ctx context.Context, userID uint, view domain.View, allowedRoles []domain.Role) (domain.Decision, error) {
	snap, err := s.Resolve(ctx, userID, false)
	if err != nil {
		return domain.Decision{}, err
	}

	decision := domain.Decide(*snap, view)
	if !decision.Allowed() {
		return decision, nil
	}

	if len(allowedRoles) > 0 {
		for _, role := range allowedRoles {
			if snap.Role == role {
				return decision, nil
			}
		}
		return domain.Decision{
			Kind:   domain.DecisionRedirect,
			Target: snap.Role.HomeView(),
			Reason: domain.ReasonRoleNotAllowed,
		}, nil
	}

	// No declared allow-list: views without policy rows accept any
	// fully-validated identity; views with rows require a grant.
	if s.policySvc != nil && s.policySvc.HasPolicyForView(view) {
		granted, err := s.policySvc.CheckPermission(snap.Role, view)
		if err != nil {
			return domain.Decision{}, err
		}
		if !granted {
			return domain.Decision{
				Kind:   domain.DecisionRedirect,
				Target: snap.Role.HomeView(),
				Reason: domain.ReasonRoleNotAllowed,
			}, nil
		}
	}

	return decision, nil
}

// Compile-time interface compliance verification
var _ domain.AccessService = (*AccessServiceImpl)(nil)
