package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/multi-auth-api/internal/api/dto"
	"github.com/spec-kit/multi-auth-api/internal/auth"
	"github.com/spec-kit/multi-auth-api/internal/service"
	apperrors "github.com/spec-kit/multi-auth-api/pkg/util"
)

// DetailIncorrectCredentials is returned for unknown users and wrong passwords alike.
const DetailIncorrectCredentials = "Incorrect username or password"

// LoginHandler exposes the token endpoint.
type LoginHandler struct {
	auth *service.AuthService
}

// NewLoginHandler constructs handler.
func NewLoginHandler(authService *service.AuthService) *LoginHandler {
	return &LoginHandler{auth: authService}
}

// Token handles POST /login/token.
func (h *LoginHandler) Token(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid login form")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	grant, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return apperrors.NewUnauthenticated(DetailIncorrectCredentials, map[string]string{"WWW-Authenticate": "Bearer"}, err)
		}
		return apperrors.NewInternalError(err)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(dto.TokenResponse{AccessToken: grant.AccessToken, TokenType: grant.TokenType})
}
