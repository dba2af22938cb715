// Package hash provides password hashing backed by bcrypt.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/okazarin/taskboard/internal/model"
)

// Bcrypt implements PasswordHasher with a configurable work factor.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher. Costs outside the supported range fall
// back to bcrypt's default cost.
func NewBcrypt(cost int) model.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash produces a salted one-way digest of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches hash. Malformed hash strings
// verify as false instead of surfacing an error.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
