package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles an identity can hold. A freshly
// registered user has RoleNone until onboarding assigns one.
type Role string

const (
	RoleNone             Role = ""
	RolePassenger        Role = "passenger"
	RoleDriver           Role = "driver"
	RoleInstitutionAdmin Role = "institution_admin"
	RoleAdmin            Role = "admin"
)

// IsAdministrative reports whether the role bypasses the personal
// onboarding pipeline. Admin identities never hold document or
// registration rows.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleInstitutionAdmin
}

// RegistrationStatus is the review state of an institution registration.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationValidated RegistrationStatus = "validated"
	RegistrationDenied    RegistrationStatus = "denied"
)

// DriverStatus is the review state of a driver validation. DriverNone
// means no validation row exists, which is distinct from a denial.
// DriverUnknown marks a snapshot whose driver lookup failed and was
// degraded rather than aborted.
type DriverStatus string

const (
	DriverNone      DriverStatus = ""
	DriverPending   DriverStatus = "pending"
	DriverValidated DriverStatus = "validated"
	DriverDenied    DriverStatus = "denied"
	DriverUnknown   DriverStatus = "unknown"
)

// User represents an identity in the system
type User struct {
	ID           uint
	UUID         uuid.UUID
	Email        string
	Phone        string
	PasswordHash string `gorm:"column:password"`
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocumentRecord is a presence-only signal: the row existing means the
// user submitted identity documents.
type DocumentRecord struct {
	UserID      uint
	SubmittedAt time.Time
}

// InstitutionRegistration links a user to an institution pending review.
type InstitutionRegistration struct {
	UserID            uint
	InstitutionID     uint
	Status            RegistrationStatus
	InstitutionalRole string
	CreatedAt         time.Time
}

// DriverValidation is the driver-review row. It logically depends on a
// validated InstitutionRegistration but is stored independently.
type DriverValidation struct {
	UserID        uint
	InstitutionID uint
	Status        DriverStatus
	CreatedAt     time.Time
}

// StatusSnapshot is the aggregated, point-in-time validation state used
// for one access decision. Derived, never persisted durably.
type StatusSnapshot struct {
	UserID            uint
	Role              Role
	HasDocuments      bool
	HasInstitution    bool
	InstitutionID     uint
	InstitutionStatus RegistrationStatus
	DriverStatus      DriverStatus
	ResolvedAt        time.Time
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a user session. Sessions live only in process
// memory: a restart forces re-authentication.
type Session struct {
	ID        string
	UserID    uint
	Role      Role
	ExpiresAt time.Time
	CreatedAt time.Time
}
