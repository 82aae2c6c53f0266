// Package token issues and verifies the HMAC-signed access tokens that carry
// the caller identity between requests.
//
// Tokens are never stored server side. A token is valid until its exp claim
// passes; there is no revocation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/bizxr/erp-portal/models"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HMAC key size accepted when issuing tokens
const MinSecretLength = 32

var (
	// ErrConfig is returned when a token cannot be issued because of bad settings or input
	ErrConfig = errors.New("token configuration error")

	// ErrSecretTooShort is returned when the signing secret is under MinSecretLength bytes
	ErrSecretTooShort = fmt.Errorf("%w: secret must be at least %d bytes", ErrConfig, MinSecretLength)

	// ErrMissingEmployeeCode is returned when issuing for an identity without an employee code
	ErrMissingEmployeeCode = fmt.Errorf("%w: employee code is required", ErrConfig)

	// ErrInvalidTTL is returned when the token lifetime is below one minute
	ErrInvalidTTL = fmt.Errorf("%w: ttl must be at least one minute", ErrConfig)

	// ErrInvalidToken is returned for any token that fails verification
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)

	// ErrMissingClaim is returned when a required claim is absent
	ErrMissingClaim = fmt.Errorf("%w: missing required claim", ErrInvalidToken)
)

var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// Config holds codec settings. They are read once at startup.
type Config struct {
	Issuer             string
	Secret             []byte
	AccessTokenMinutes int
}

// Codec issues and verifies access tokens with a fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	issuer     string
	secret     []byte
	ttlMinutes int
	now        func() time.Time
}

// Option customizes a Codec
type Option func(*Codec)

// WithClock overrides the time source, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a codec. The secret length is checked on Issue, not here.
func NewCodec(cfg Config, opts ...Option) *Codec {
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	c := &Codec{
		issuer:     cfg.Issuer,
		secret:     secret,
		ttlMinutes: cfg.AccessTokenMinutes,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs a token for the identity using the codec's issuer, TTL and secret
func (c *Codec) Issue(identity models.Identity) (string, error) {
	return c.issue(identity, c.ttlMinutes, c.secret)
}

// Verify checks a token against the codec's secret (and issuer when one is set)
func (c *Codec) Verify(tokenString string) (models.Identity, error) {
	return c.verify(tokenString, c.secret)
}

// TTL returns the configured access token lifetime
func (c *Codec) TTL() time.Duration {
	return time.Duration(c.ttlMinutes) * time.Minute
}

// Issue signs a token for the identity with the given lifetime and secret.
// No issuer claim is set.
func Issue(identity models.Identity, ttlMinutes int, secret []byte) (string, error) {
	c := &Codec{now: time.Now}
	return c.issue(identity, ttlMinutes, secret)
}

// Verify checks a token signed by Issue and returns the identity it carries
func Verify(tokenString string, secret []byte) (models.Identity, error) {
	c := &Codec{now: time.Now}
	return c.verify(tokenString, secret)
}

func (c *Codec) issue(identity models.Identity, ttlMinutes int, secret []byte) (string, error) {
	if len(secret) < MinSecretLength {
		return "", ErrSecretTooShort
	}
	if identity.EpCode == "" {
		return "", ErrMissingEmployeeCode
	}
	if ttlMinutes < 1 {
		return "", ErrInvalidTTL
	}

	now := c.now()
	claims := newClaims(identity)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   identity.EpCode,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlMinutes) * time.Minute)),
	}

	signed, err := jwt.NewWithClaims(signingMethodFor(secret), claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (c *Codec) verify(tokenString string, secret []byte) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(hmacMethods),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	return claims.identity()
}

// signingMethodFor picks the strongest HMAC variant the key size supports
func signingMethodFor(secret []byte) jwt.SigningMethod {
	switch {
	case len(secret) >= 64:
		return jwt.SigningMethodHS512
	case len(secret) >= 48:
		return jwt.SigningMethodHS384
	default:
		return jwt.SigningMethodHS256
	}
}
