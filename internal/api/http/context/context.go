// Package context carries the authenticated identity on request contexts.
package context

import (
	"context"

	"github.com/okazarin/taskboard/internal/model"
)

type ctxKey int

const identityKey ctxKey = iota

// Manager implements model.ContextManager over an unexported context key, so
// nothing outside this package can forge an identity in a context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity stored by the authenticate
// middleware, reporting whether one was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}
