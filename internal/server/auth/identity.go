// Package auth issues and verifies session tokens, hashes account secrets
// and carries the authenticated identity through request contexts.
package auth

import (
	"context"
	"errors"
)

// Identity is the minimal authenticated fact about a caller. It is rebuilt
// from a verified token on every request and never persisted.
type Identity struct {
	UserID   string
	UserName string
}

// Validate checks that both identity fields are present.
func (id Identity) Validate() error {
	if id.UserID == "" {
		return errors.New("identity has no user id")
	}
	if id.UserName == "" {
		return errors.New("identity has no user name")
	}
	return nil
}

type ctxKey string

const identityKey ctxKey = "identity"

// ContextWithIdentity stores id in ctx.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
