package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Uguee/accessvc/domain"
)

// ResolverService implements domain.StatusResolver. It fans the three
// store lookups out concurrently, tolerates a driver-subsystem outage
// by degrading that field to unknown, and memoizes the aggregate per
// user through the snapshot cache.
type ResolverService struct {
	store domain.StatusStore
	cache domain.SnapshotCache
}

// NewResolverService creates a new status resolver
func NewResolverService(store domain.StatusStore, cache domain.SnapshotCache) *ResolverService {
	return &ResolverService{
		store: store,
		cache: cache,
	}
}

// Resolve implements domain.StatusResolver. force bypasses the cache
// and is used right after a status-changing action so the caller sees
// the new pending state without waiting for expiry.
func (s *ResolverService) Resolve(ctx context.Context, user *domain.User, force bool) (*domain.StatusSnapshot, error) {
	// Administrative identities never hold document or registration
	// rows; querying the store for them is three guaranteed misses.
	if user.Role.IsAdministrative() {
		return &domain.StatusSnapshot{
			UserID:     user.ID,
			Role:       user.Role,
			ResolvedAt: time.Now(),
		}, nil
	}

	if !force {
		if snap, ok := s.cache.Get(ctx, user.ID); ok {
			return snap, nil
		}
	}

	snap, err := s.lookup(ctx, user)
	if err != nil {
		return nil, err
	}

	// A caller that went away must not publish its result: a stale
	// snapshot applied late could mask a status change, and caching it
	// would make that window the full TTL.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.cache.Put(ctx, user.ID, snap)
	return snap, nil
}

// InvalidateUser implements domain.StatusResolver
func (s *ResolverService) InvalidateUser(ctx context.Context, userID uint) {
	s.cache.Invalidate(ctx, userID)
}

type documentsResult struct {
	has bool
	err error
}

type registrationResult struct {
	reg *domain.InstitutionRegistration
	err error
}

type driverResult struct {
	dv  *domain.DriverValidation
	err error
}

// lookup runs the three single-purpose queries concurrently and folds
// the rows into one snapshot once all of them have settled.
func (s *ResolverService) lookup(ctx context.Context, user *domain.User) (*domain.StatusSnapshot, error) {
	var (
		wg      sync.WaitGroup
		docs    documentsResult
		reg     registrationResult
		driver  driverResult
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		docs.has, docs.err = s.store.FetchDocuments(ctx, user.ID)
	}()
	go func() {
		defer wg.Done()
		reg.reg, reg.err = s.store.FetchInstitutionRegistration(ctx, user.ID)
	}()
	go func() {
		defer wg.Done()
		driver.dv, driver.err = s.store.FetchDriverValidation(ctx, user.ID)
	}()
	wg.Wait()

	// Documents and institution gate every user; their lookups failing
	// means no decision can be made. Fail closed.
	if docs.err != nil {
		return nil, fmt.Errorf("documents lookup: %w", docs.err)
	}
	if reg.err != nil {
		return nil, fmt.Errorf("institution registration lookup: %w", reg.err)
	}

	snap := &domain.StatusSnapshot{
		UserID:       user.ID,
		Role:         user.Role,
		HasDocuments: docs.has,
		ResolvedAt:   time.Now(),
	}

	if reg.reg != nil {
		snap.HasInstitution = true
		snap.InstitutionID = reg.reg.InstitutionID
		snap.InstitutionStatus = reg.reg.Status
	}

	switch {
	case driver.err != nil:
		// An outage in the driver subsystem must not block ordinary
		// passengers; the driver gate treats unknown as not validated.
		log.Printf("DRIVER_LOOKUP_DEGRADED: user_id=%d error=%v", user.ID, driver.err)
		snap.DriverStatus = domain.DriverUnknown
	case driver.dv != nil:
		snap.DriverStatus = driver.dv.Status
	default:
		snap.DriverStatus = domain.DriverNone
	}

	return snap, nil
}

// Compile-time interface compliance verification
var _ domain.StatusResolver = (*ResolverService)(nil)
