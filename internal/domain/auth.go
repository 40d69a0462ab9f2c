package domain

import "time"

// Identity is the username a signed token asserts.
type Identity string

// AuthScheme identifies how a request was authenticated.
type AuthScheme string

const (
	AuthSchemeJWT         AuthScheme = "jwt"
	AuthSchemeStaticToken AuthScheme = "simple_token"
)

// Principal is the authenticated caller attached to a request. Identity is
// empty for the static token scheme, which proves possession of the shared
// secret only.
type Principal struct {
	Scheme   AuthScheme
	Identity Identity
}

// HasIdentity reports whether the principal names a specific user.
func (p Principal) HasIdentity() bool {
	return p.Identity != ""
}

// TokenTypeBearer is the OAuth2 token type returned at login.
const TokenTypeBearer = "bearer"

// TokenGrant is the result of a successful login.
type TokenGrant struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
