package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/multi-auth-api/internal/domain"
)

func init() {
	// exp carries microseconds; whole-second truncation would end sub-second
	// lifetimes before they start and cut every token short by up to a second.
	jwt.TimePrecision = time.Microsecond
}

// TokenManager issues and verifies HMAC signed JWTs carrying only sub and exp.
// It holds no mutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a TokenManager.
type Option func(*TokenManager)

// WithClock replaces the wall clock used for expiry computation and checks.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a manager for the given secret and HMAC algorithm
// (HS256, HS384 or HS512). ttl is the default lifetime used by Issue.
func NewTokenManager(secret, algorithm string, ttl time.Duration, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}

	tm := &TokenManager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// TTL returns the default token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a token for identity expiring after lifetime, or after the
// default lifetime when lifetime is not positive.
func (tm *TokenManager) Issue(identity domain.Identity, lifetime time.Duration) (string, time.Time, error) {
	if lifetime <= 0 {
		lifetime = tm.ttl
	}
	expiresAt := tm.now().UTC().Add(lifetime)

	claims := jwt.RegisteredClaims{
		Subject:   string(identity),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(tm.method, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// A token is rejected from the instant its expiry is reached.
func (tm *TokenManager) Verify(tokenStr string) (domain.Identity, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{tm.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return domain.Identity(claims.Subject), nil
}
