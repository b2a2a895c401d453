package blog

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents structured JWT claims
type AuthClaims interface {
	Subject() string
	UserID() string
	Username() string
	Email() string
	IsAdmin() bool
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string   `json:"uid,omitempty"`
	Handle    string   `json:"username,omitempty"`
	UserEmail string   `json:"email,omitempty"`
	Admin     bool     `json:"adm,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Username returns the username claim
func (c *JWTClaims) Username() string {
	return c.Handle
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// IsAdmin returns the administrative flag claim
func (c *JWTClaims) IsAdmin() bool {
	return c.Admin
}

// HasRole checks if the user carries a specific role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ClaimsIdentity turns validated claims into a typed request identity.
// The user ID has to be a well formed UUID, anything else means the
// token was minted for a different system.
func ClaimsIdentity(claims AuthClaims) (*Identity, error) {
	uid, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, ErrTokenMalformed
	}

	identity := &Identity{
		ID:       uid,
		Username: claims.Username(),
		Email:    claims.Email(),
		IsAdmin:  claims.IsAdmin(),
	}

	if jc, ok := claims.(*JWTClaims); ok {
		identity.Roles = jc.Roles
	}

	return identity, nil
}
