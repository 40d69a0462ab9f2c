package auth

import (
	"crypto/subtle"

	"github.com/spec-kit/multi-auth-api/internal/domain"
)

// StaticTokenVerifier checks a presented value against the single shared API token.
type StaticTokenVerifier struct {
	token []byte
}

// NewStaticTokenVerifier wraps the configured API token.
func NewStaticTokenVerifier(token string) StaticTokenVerifier {
	return StaticTokenVerifier{token: []byte(token)}
}

// Verify grants the generic API caller principal when presented matches the
// configured token exactly. An unconfigured token never matches.
func (v StaticTokenVerifier) Verify(presented string) (domain.Principal, error) {
	if len(v.token) == 0 {
		return domain.Principal{}, ErrInvalidAPIToken
	}
	if subtle.ConstantTimeCompare(v.token, []byte(presented)) != 1 {
		return domain.Principal{}, ErrInvalidAPIToken
	}
	return domain.Principal{Scheme: domain.AuthSchemeStaticToken}, nil
}
