package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/multi-auth-api/internal/api/dto"
	"github.com/spec-kit/multi-auth-api/internal/auth"
	apperrors "github.com/spec-kit/multi-auth-api/pkg/util"
)

// ExamplesHandler serves the example routes behind each authentication scheme.
type ExamplesHandler struct{}

// NewExamplesHandler returns a new handler instance.
func NewExamplesHandler() *ExamplesHandler {
	return &ExamplesHandler{}
}

// JWTOnly handles GET /examples/protected/jwt-only.
func (h *ExamplesHandler) JWTOnly(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.HasIdentity() {
		return apperrors.NewUnauthenticated(auth.DetailInvalidJWT, map[string]string{"WWW-Authenticate": "Bearer"}, nil)
	}
	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("Hello %s, you are authenticated via JWT.", principal.Identity),
	})
}

// SimpleTokenOnly handles GET /examples/protected/simple-token-only.
func (h *ExamplesHandler) SimpleTokenOnly(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthenticated(auth.DetailInvalidAPIToken, nil, nil)
	}
	return c.JSON(dto.MessageResponse{Message: "You are authenticated via a simple API token."})
}

// Public handles GET /examples/public/unprotected.
func (h *ExamplesHandler) Public(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "This endpoint is public and requires no authentication."})
}
