package domain

import "errors"

// Error kinds. Every error returned by the core either is one of these, wraps
// one of these, or is treated as an internal failure.
var (
	ErrValidation       = errors.New("validation error")
	ErrDuplicate        = errors.New("duplicate")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Error carries a client-facing message and unwraps to its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Authentication gate failures.
var (
	ErrTokenMissing     = newError(ErrUnauthenticated, "no token provided, authentication required")
	ErrTokenInvalid     = newError(ErrUnauthenticated, "invalid or expired token")
	ErrAccountNotFound  = newError(ErrUnauthenticated, "user not found")
	ErrAccountInactive  = newError(ErrUnauthenticated, "user account is inactive")
	ErrNotAuthenticated = newError(ErrUnauthenticated, "authentication required")
)

// Login failures.
var (
	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid credentials")
	ErrLoginInactive      = newError(ErrUnauthenticated, "account is inactive, please contact administrator")
	ErrLoginNotApproved   = newError(ErrForbidden, "login not approved, please wait for super admin approval")
)

var ErrInsufficientRole = newError(ErrForbidden, "access denied, insufficient permissions")

// Approval state machine failures.
var (
	ErrSuperAdminImmutable = newError(ErrInvalidOperation, "cannot modify super admin permissions")
	ErrClientNoApproval    = newError(ErrInvalidOperation, "clients do not require approval")
	ErrInvalidAccountType  = newError(ErrInvalidOperation, "invalid user type")
)

var ErrCredentialsRequired = newError(ErrValidation, "email and password are required")

// Validation returns a validation error with msg.
func Validation(msg string) error {
	return newError(ErrValidation, msg)
}

// Duplicate reports an email collision for the given account kind.
func Duplicate(kind AccountKind) error {
	return newError(ErrDuplicate, titleKind(kind)+" already exists with this email")
}

// NotFound reports a missing or out-of-scope record of the given kind.
func NotFound(kind AccountKind) error {
	return newError(ErrNotFound, titleKind(kind)+" not found")
}

func titleKind(kind AccountKind) string {
	switch kind {
	case KindAdmin:
		return "Admin"
	case KindClient:
		return "Client"
	case KindUser:
		return "User"
	}
	return "Account"
}
