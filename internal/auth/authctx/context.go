// Package authctx carries the authenticated identity through a request's
// context. The identity is set exactly once, by the auth middleware after
// token verification, and lives only for that request.
package authctx

import (
	"context"
	"errors"
)

// Identity is the resolved identity attached to an authenticated request.
// It holds only what the verified token asserts; handlers needing the full
// user record do their own lookup.
type Identity struct {
	ID    string
	Email string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// ErrNoIdentity is returned when no identity is present in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// Set stores the resolved identity in the context.
func Set(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get retrieves the resolved identity from the context.
func Get(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetOrError retrieves the resolved identity, returning ErrNoIdentity if
// the request was not authenticated.
func GetOrError(ctx context.Context) (Identity, error) {
	id, ok := Get(ctx)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
