package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/api/dto"
	"github.com/gestao-tpt/helpdesk/internal/auth"
	"github.com/gestao-tpt/helpdesk/internal/service"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// AuthHandler manages login and the current-user endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Context(), req.Email, req.Senha)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresAt:   result.ExpiresAt,
		Usuario:     dto.FromUsuario(result.Usuario),
	})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Usuario == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	return c.JSON(fiber.Map{"data": dto.FromUsuario(principal.Usuario)})
}
