package tokenware

import (
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SigningKey holds a static verification key and its expected algorithm
type SigningKey struct {
	JWTAlg string
	Key    any
}

// KeysetValidator validates tokens against a key set instead of a single
// shared secret. Keys come from statically given keys, remote JWK Set
// URLs, or a custom jwt.Keyfunc.
type KeysetValidator struct {
	keyFunc jwt.Keyfunc
}

// KeysetConfig configures a KeysetValidator
type KeysetConfig struct {
	SigningKeys map[string]SigningKey
	JWKSetURLs  []string
	KeyFunc     jwt.Keyfunc
}

// NewKeysetValidator builds a TokenValidator backed by a key set
func NewKeysetValidator(cfg KeysetConfig) (*KeysetValidator, error) {
	if cfg.KeyFunc != nil {
		return &KeysetValidator{keyFunc: cfg.KeyFunc}, nil
	}

	var givenKeys map[string]keyfunc.GivenKey
	if len(cfg.SigningKeys) > 0 {
		givenKeys = make(map[string]keyfunc.GivenKey, len(cfg.SigningKeys))
		for kid, key := range cfg.SigningKeys {
			givenKeys[kid] = keyfunc.NewGivenCustom(key.Key, keyfunc.GivenKeyOptions{
				Algorithm: key.JWTAlg,
			})
		}
	}

	if len(cfg.JWKSetURLs) > 0 {
		kf, err := multiKeyfunc(givenKeys, cfg.JWKSetURLs)
		if err != nil {
			return nil, err
		}
		return &KeysetValidator{keyFunc: kf}, nil
	}

	if len(givenKeys) == 0 {
		return nil, fmt.Errorf("keyset validator requires SigningKeys, JWKSetURLs or a KeyFunc")
	}

	return &KeysetValidator{keyFunc: keyfunc.NewGiven(givenKeys).Keyfunc}, nil
}

// Validate implements TokenValidator
func (v *KeysetValidator) Validate(tokenString string) (AuthClaims, error) {
	claims := &keysetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

var _ TokenValidator = (*KeysetValidator)(nil)

type keysetClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

func (c *keysetClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

func (c *keysetClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

func multiKeyfunc(givenKeys map[string]keyfunc.GivenKey, jwkSetURLs []string) (jwt.Keyfunc, error) {
	opts := keyfuncOptions(givenKeys)
	m := make(map[string]keyfunc.Options, len(jwkSetURLs))
	for _, url := range jwkSetURLs {
		m[url] = opts
	}
	mopts := keyfunc.MultipleOptions{
		KeySelector: keyfunc.KeySelectorFirst,
	}
	multi, err := keyfunc.GetMultiple(m, mopts)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWK Set URLs: %w", err)
	}
	return multi.Keyfunc, nil
}

func keyfuncOptions(givenKeys map[string]keyfunc.GivenKey) keyfunc.Options {
	return keyfunc.Options{
		GivenKeys: givenKeys,
		RefreshErrorHandler: func(err error) {
			log.Printf("failed to do a background refresh of JWK Set: %s", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	}
}
