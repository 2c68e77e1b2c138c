// Package token issues and verifies the signed bearer tokens that carry a
// session identity. Tokens are stateless: validity is determined purely by
// the HMAC signature and the embedded expiry, with no server-side record.
//
// Verification accepts no clock-skew leeway (the golang-jwt default); a
// token is expired the instant now >= exp.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. The HTTP layer collapses all three to a
// single 401; they stay distinct here for logging and telemetry.
var (
	// ErrExpired indicates the token's expiry has passed.
	ErrExpired = errors.New("token: expired")
	// ErrInvalidSignature indicates the signature does not match.
	ErrInvalidSignature = errors.New("token: invalid signature")
	// ErrMalformed indicates the token could not be parsed.
	ErrMalformed = errors.New("token: malformed")
)

// Claims is the payload embedded in every session token.
type Claims struct {
	gojwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// SubjectID returns the subject user ID carried by the claims.
func (c *Claims) SubjectID() string { return c.Subject }

// Service issues and verifies session tokens with a shared HMAC secret.
type Service struct {
	cfg Config
	now func() time.Time
}

// NewService creates a token service. The config must already be validated;
// NewService re-checks the hard invariants and fails rather than producing
// a service that signs with a weak secret.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Service{cfg: *cfg, now: time.Now}, nil
}

// Issue creates a signed token for the given subject. Expiry is issue time
// plus the configured TTL.
func (s *Service) Issue(subjectID, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Email: email,
	}

	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify validates a token string and returns its claims. Failures map to
// ErrExpired, ErrInvalidSignature, or ErrMalformed.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}

// keyFunc returns the verification key after pinning the signing method,
// so an alg-substitution token never reaches signature comparison.
func (s *Service) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// classifyError maps golang-jwt parse errors onto this package's sentinels.
func classifyError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
