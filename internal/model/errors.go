package model

import "errors"

var (
	// ErrNotFound signals that a requested entity does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken signals a registration attempt with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials signals a failed login. Unknown emails and wrong
	// passwords map to the same error on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired signals a bearer token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid signals a malformed, tampered or wrongly signed token.
	ErrTokenInvalid = errors.New("token invalid")
)
