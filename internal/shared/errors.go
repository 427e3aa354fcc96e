package shared

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTokenInvalid indicates a bearer token that failed validation.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrUserNotFound indicates a token subject with no matching account.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthenticated indicates a mutating request without a principal.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates the principal is neither owner nor admin.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate indicates a signup for an already taken username.
	ErrDuplicate = errors.New("duplicate username")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
