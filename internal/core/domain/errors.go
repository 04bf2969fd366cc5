package domain

import "errors"

// Sentinel errors for every business-rule failure. The HTTP layer maps
// each one to a structured {code, name, description} response; services
// and repositories wrap them with context via fmt.Errorf("%w").
var (
	// Lookups.
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrHistoryNotFound    = errors.New("history not found")

	// Conflicts.
	ErrUserExists    = errors.New("user already exists")
	ErrRoleExists    = errors.New("role already exists")
	ErrRoleUnchanged = errors.New("user already has this role")

	// Business rules.
	ErrAlreadyDisabled    = errors.New("user is already disabled")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("password is incorrect")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	// Token validation.
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenRevoked   = errors.New("token has been revoked")

	// Rate limiting.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrDefaultRoleMissing signals that the default role was never
	// seeded. This is a fatal misconfiguration: the bootstrap command
	// must run before the service accepts registrations.
	ErrDefaultRoleMissing = errors.New("default role is not seeded")
)
