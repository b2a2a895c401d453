package blog

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Auther turns verified identities into signed access tokens
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator will create a new Auther from the given provider and options
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	a := &Auther{
		provider: provider,
		logger:   defLogger{},
	}

	a.tokenService = NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		jwt.ClaimStrings(opts.GetAudience()),
		a.logger,
	)

	return a
}

func (a *Auther) WithLogger(l Logger) *Auther {
	if l != nil {
		a.logger = l
	}
	return a
}

// WithTokenService overrides the token service built from config
func (a *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		a.tokenService = ts
	}
	return a
}

// TokenService exposes the underlying token service, the decode
// middleware shares it to validate what Login mints
func (a *Auther) TokenService() TokenService {
	return a.tokenService
}

// Login verifies the given credentials and returns a signed token
func (a *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := a.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		return "", err
	}

	token, err := a.tokenService.Generate(identity)
	if err != nil {
		a.logger.Error("Login failed to generate token", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate access token")
	}

	a.logger.Debug("Login succeeded", "user_id", identity.ID.String())

	return token, nil
}

var _ Authenticator = (*Auther)(nil)
