package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Usuario *domain.Usuario
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	usuarios repository.UsuarioRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, usuarios repository.UsuarioRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, usuarios: usuarios}
}

// Handle enforces authentication for protected routes. Soft-deleted users are
// rejected even when their token is still within its TTL.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("cabeçalho de autorização ausente")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("cabeçalho de autorização inválido")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("token inválido ou expirado")
	}

	usuario, err := m.usuarios.GetByID(c.Context(), claims.UsuarioID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("usuário não encontrado")
		}
		return apperrors.MapError(err)
	}

	_ = m.usuarios.TouchUltimoAcesso(c.Context(), usuario.ID, time.Now().UTC())

	c.Locals(principalKey, &Principal{Usuario: usuario})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
