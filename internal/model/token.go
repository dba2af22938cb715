package model

import "github.com/google/uuid"

// Identity is the claim carried by a bearer token: who the caller is plus a
// display name, so handlers need no user lookup per request.
type Identity struct {
	UserID uuid.UUID
	Name   string
}

// TokenManager issues and validates bearer tokens.
type TokenManager interface {
	Generate(identity Identity) (string, error)
	Parse(token string) (Identity, error)
}

// PasswordHasher produces and verifies one-way salted password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
