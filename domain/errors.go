package domain

import "errors"

// Status-store errors. Absence of an expected row is not an error: the
// store returns a nil row instead. These sentinels cover the failure
// modes that must never be confused with absence.
var (
	ErrNetworkFailure    = errors.New("status store unreachable")
	ErrMalformedResponse = errors.New("malformed status store response")
	ErrAuthFailure       = errors.New("authentication rejected")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Onboarding errors
var (
	ErrDocumentsAlreadySubmitted = errors.New("documents already submitted")
	ErrRegistrationNotFound      = errors.New("institution registration not found")
	ErrRegistrationNotValidated  = errors.New("institution registration not validated")
	ErrDriverAlreadyRequested    = errors.New("driver validation already requested")
	ErrDriverRequestNotFound     = errors.New("driver validation request not found")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// IsAuthFailure reports whether err means the credential itself was
// rejected, which must invalidate the session rather than be retried.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthFailure) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired)
}
