package domain

import "context"

// StatusStore defines the single-purpose lookups the resolver fans out
// to. Each call is one round trip. Absence of a row is reported as a
// nil result with a nil error; failures are surfaced explicitly and
// never substituted with a permissive default.
type StatusStore interface {
	FetchDocuments(ctx context.Context, userID uint) (bool, error)
	FetchInstitutionRegistration(ctx context.Context, userID uint) (*InstitutionRegistration, error)
	FetchDriverValidation(ctx context.Context, userID uint) (*DriverValidation, error)
}

// StatusWriter defines the status-changing operations onboarding
// actions perform against the record store.
type StatusWriter interface {
	CreateDocuments(ctx context.Context, userID uint) error
	CreateRegistration(ctx context.Context, reg *InstitutionRegistration) error
	UpdateRegistrationStatus(ctx context.Context, userID uint, status RegistrationStatus) error
	CreateDriverValidation(ctx context.Context, dv *DriverValidation) error
	UpdateDriverStatus(ctx context.Context, userID uint, status DriverStatus) error
}

// StatusResolver aggregates the store lookups into one snapshot.
// force bypasses the snapshot cache.
type StatusResolver interface {
	Resolve(ctx context.Context, user *User, force bool) (*StatusSnapshot, error)
	InvalidateUser(ctx context.Context, userID uint)
}

// SnapshotCache memoizes resolver output per user with a TTL.
// Invalidate removes precisely one entry so status-changing actions
// take effect without waiting for expiry.
type SnapshotCache interface {
	Get(ctx context.Context, userID uint) (*StatusSnapshot, bool)
	Put(ctx context.Context, userID uint, snap *StatusSnapshot)
	Invalidate(ctx context.Context, userID uint)
}

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateRole(ctx context.Context, userID uint, role Role) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, phone, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID uint) (*User, error)
}

// AccessService is the surface consumers use. They never read raw
// status rows: Resolve for the snapshot, Check for a decision.
type AccessService interface {
	Resolve(ctx context.Context, userID uint, force bool) (*StatusSnapshot, error)
	Check(ctx context.Context, userID uint, view View, allowedRoles []Role) (Decision, error)
}

// OnboardingService defines the status-changing pipeline actions. Each
// one invalidates the affected user's cached snapshot on success. The
// review operations carry the reviewer's identity for the audit trail.
type OnboardingService interface {
	SubmitDocuments(ctx context.Context, userID uint) error
	ApplyToInstitution(ctx context.Context, userID, institutionID uint, institutionalRole string) error
	ReviewRegistration(ctx context.Context, reviewerID, userID uint, approve bool) error
	ApplyForDriver(ctx context.Context, userID uint) error
	ReviewDriver(ctx context.Context, reviewerID, userID uint, approve bool) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role Role, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role Role, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// PolicyService defines role/view authorization policy operations.
// A view with no policy rows at all is open to any fully-validated
// identity; HasPolicyForView lets the guard distinguish that case from
// a role simply not being granted.
type PolicyService interface {
	AddPolicy(role Role, view View) error
	RemovePolicy(role Role, view View) error
	CheckPermission(role Role, view View) (bool, error)
	HasPolicyForView(view View) bool
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer defines the methods we need from the Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
