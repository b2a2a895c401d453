// Package tokenware decodes bearer tokens without gatekeeping. It attaches a
// resolved identity to the request when the token checks out and lets the
// request through unauthenticated otherwise, route guards decide what an
// anonymous request may do.
package tokenware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

var (
	defaultTokenLookup        = "header:" + fiber.HeaderAuthorization
	ErrTokenMissingOrTooShort = errors.New("missing or malformed bearer token")
)

// TokenValidator validates raw token strings without import cycles.
// This mirrors the TokenService.Validate method from the root package.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims is the minimal claims surface the middleware needs
type AuthClaims interface {
	Subject() string
	UserID() string
}

// IdentityResolver checks the token subject against live storage and
// returns the value to attach to the request. A not found error means
// the account is gone and the request proceeds unauthenticated. Any
// other error is a storage failure and aborts the request.
type IdentityResolver func(ctx context.Context, claims AuthClaims) (any, error)

type Config struct {
	// Filter defines a function to skip the middleware
	Filter func(*fiber.Ctx) bool

	// ContextKey is the Locals key the resolved identity is stored under
	ContextKey string

	// TokenLookup is a comma separated list of "source:name" pairs,
	// e.g. "header:Authorization,cookie:access"
	TokenLookup string

	// AuthScheme is the header scheme prefix, "Bearer" by default
	AuthScheme string

	// TokenValidator is required for token validation
	TokenValidator TokenValidator

	// IdentityResolver is required, it performs the per request user
	// existence check
	IdentityResolver IdentityResolver
}

// New builds the decode middleware. Unlike a conventional JWT gate it
// never rejects a request over a missing or invalid token.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	extractors := GetExtractors(cfg.TokenLookup, cfg.AuthScheme)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := extractRawToken(c, extractors)
		if err != nil || raw == "" {
			return c.Next()
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return c.Next()
		}

		identity, err := cfg.IdentityResolver(c.Context(), claims)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return c.Next()
			}
			return err
		}

		c.Locals(cfg.ContextKey, identity)

		return c.Next()
	}
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("TOKENWARE: middleware configuration: TokenValidator is required.")
	}

	if cfg.IdentityResolver == nil {
		panic("TOKENWARE: middleware configuration: IdentityResolver is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func extractRawToken(c *fiber.Ctx, extractors []TokenExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

// TokenExtractor pulls a raw token out of a request
type TokenExtractor func(c *fiber.Ctx) (string, error)

// GetExtractors parses a token lookup expression into extractors
func GetExtractors(tokenLookup string, authSchemes ...string) []TokenExtractor {
	extractors := make([]TokenExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	// header:Authorization,cookie:access,query:auth_token,param:token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) != 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, tokenFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(parts[1]))
		case "param":
			extractors = append(extractors, tokenFromParam(parts[1]))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(parts[1]))
		}
	}

	return extractors
}

// tokenFromHeader returns a function that extracts the token from the
// request header. A header shorter than scheme + space + one character
// counts as absent.
func tokenFromHeader(header string, authScheme string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		authScheme = strings.TrimSpace(authScheme)
		l := len(authScheme)
		if l == 0 {
			return "", ErrTokenMissingOrTooShort
		}
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrTokenMissingOrTooShort
	}
}

func tokenFromQuery(param string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrTokenMissingOrTooShort
		}
		return token, nil
	}
}

func tokenFromParam(param string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Params(param)
		if token == "" {
			return "", ErrTokenMissingOrTooShort
		}
		return token, nil
	}
}

func tokenFromCookie(name string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrTokenMissingOrTooShort
		}
		return token, nil
	}
}
