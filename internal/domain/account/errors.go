package account

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrUnknownRole      = errors.New("unknown role")
	ErrNameRequired     = errors.New("user name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")

	// ErrUnauthorizedPrincipal means the authenticated principal has no
	// backing user record.
	ErrUnauthorizedPrincipal = errors.New("principal has no user record")

	// ErrForbidden is a capability violation, distinct from not-found and
	// validation failures.
	ErrForbidden = errors.New("operation not permitted for this role")
)
