package blog

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Identity holds the attributes of an authenticated request identity.
// It is derived from validated claims after a fresh user lookup and is
// the only thing guards and handlers consult.
type Identity struct {
	ID       uuid.UUID
	Username string
	Email    string
	IsAdmin  bool
	Roles    []string
}

// HasRole checks if the identity carries the given role
func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if the identity carries at least one of the given roles
func (i *Identity) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if i.HasRole(role) {
			return true
		}
	}
	return false
}

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity sets the Identity in the given context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext finds the identity from the standard context
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	raw, ok := ctx.Value(identityCtxKey).(*Identity)
	return raw, ok
}

// IdentityFromFiber extracts the identity the decode middleware attached
// to the request, if any
func IdentityFromFiber(c *fiber.Ctx, key string) (*Identity, bool) {
	if key == "" {
		key = "user"
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	identity, ok := raw.(*Identity)
	return identity, ok
}
