package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// Capability names an action class checked against the caller's role. Role
// checks always go through Allowed so a typo'd role value can never grant
// access.
type Capability string

const (
	CapTickets           Capability = "tickets"
	CapCadastroLeitura   Capability = "cadastro:read"
	CapCadastroEscrita   Capability = "cadastro:write"
	CapCategoriasEscrita Capability = "categorias:write"
	CapFaturamento       Capability = "faturamento"
	CapDashboard         Capability = "dashboard"
)

// Allowed reports whether the role grants the capability. Admins can do
// everything; technicians get ticket work and read access to reference data.
func Allowed(role domain.Role, cap Capability) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleTecnico:
		switch cap {
		case CapTickets, CapCadastroLeitura, CapDashboard:
			return true
		}
	}
	return false
}

// RequireCapability gates a route group on the authenticated user's role.
func RequireCapability(cap Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "autenticação necessária")
		}
		if !Allowed(principal.Usuario.Role, cap) {
			return fiber.NewError(fiber.StatusForbidden, "apenas administradores")
		}
		return c.Next()
	}
}

// RequireAuth ensures the caller is authenticated.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "autenticação necessária")
		}
		return c.Next()
	}
}
