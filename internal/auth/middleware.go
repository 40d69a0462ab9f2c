package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/multi-auth-api/internal/domain"
	"github.com/spec-kit/multi-auth-api/internal/events"
	apperrors "github.com/spec-kit/multi-auth-api/pkg/util"
)

const principalKey = "auth_principal"

const (
	HeaderAuthorization  = "Authorization"
	HeaderAuthentication = "Authentication"
)

const (
	DetailInvalidJWT      = "Could not validate JWT credentials"
	DetailInvalidAPIToken = "Invalid or missing API token"
)

var errMissingCredential = errors.New("missing credential")

// Guards adapts the verifiers into fiber handlers that reject
// unauthenticated requests before they reach a route handler.
type Guards struct {
	tokens *TokenManager
	static StaticTokenVerifier
	events events.Dispatcher
}

// NewGuards constructs the route guards.
func NewGuards(tokens *TokenManager, static StaticTokenVerifier, dispatcher events.Dispatcher) *Guards {
	if dispatcher == nil {
		dispatcher = events.NewNoopDispatcher()
	}
	return &Guards{tokens: tokens, static: static, events: dispatcher}
}

// RequireJWT enforces a valid `Authorization: Bearer <token>` header.
func (g *Guards) RequireJWT(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(HeaderAuthorization))
	if err != nil {
		return g.reject(c, domain.AuthSchemeJWT, err)
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		return g.reject(c, domain.AuthSchemeJWT, err)
	}

	c.Locals(principalKey, &domain.Principal{Scheme: domain.AuthSchemeJWT, Identity: identity})
	return c.Next()
}

// RequireStaticToken enforces an `Authentication: <token>` header equal to the shared API token.
func (g *Guards) RequireStaticToken(c *fiber.Ctx) error {
	presented := c.Get(HeaderAuthentication)
	if presented == "" {
		return g.reject(c, domain.AuthSchemeStaticToken, errMissingCredential)
	}

	principal, err := g.static.Verify(presented)
	if err != nil {
		return g.reject(c, domain.AuthSchemeStaticToken, err)
	}

	c.Locals(principalKey, &principal)
	return c.Next()
}

func (g *Guards) reject(c *fiber.Ctx, scheme domain.AuthScheme, cause error) error {
	g.events.Publish(c.UserContext(), events.Event{
		Type:   events.EventCredentialRejected,
		Scheme: scheme,
		Reason: cause.Error(),
	})

	if scheme == domain.AuthSchemeJWT {
		return apperrors.NewUnauthenticated(DetailInvalidJWT, map[string]string{"WWW-Authenticate": "Bearer"}, cause)
	}
	return apperrors.NewUnauthenticated(DetailInvalidAPIToken, nil, cause)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errMissingCredential
	}
	return token, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
