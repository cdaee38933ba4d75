package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestao-tpt/helpdesk/internal/api/http/handlers"
	"github.com/gestao-tpt/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Empresas       *handlers.EmpresasHandler
	Contatos       *handlers.ContatosHandler
	Categorias     *handlers.CategoriasHandler
	Tickets        *handlers.TicketsHandler
	Faturamento    *handlers.FaturamentoHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	protected.Get("/auth/me", cfg.Auth.Me)

	empresas := protected.Group("/empresas")
	empresas.Get("/", auth.RequireCapability(auth.CapCadastroLeitura), cfg.Empresas.List)
	empresas.Get("/:id", auth.RequireCapability(auth.CapCadastroLeitura), cfg.Empresas.Get)
	empresas.Post("/", auth.RequireCapability(auth.CapCadastroEscrita), cfg.Empresas.Create)
	empresas.Patch("/:id", auth.RequireCapability(auth.CapCadastroEscrita), cfg.Empresas.Update)
	empresas.Delete("/:id", auth.RequireCapability(auth.CapCadastroEscrita), cfg.Empresas.Delete)

	contatos := protected.Group("/contatos")
	contatos.Get("/", auth.RequireCapability(auth.CapCadastroLeitura), cfg.Contatos.List)
	contatos.Get("/:id", auth.RequireCapability(auth.CapCadastroLeitura), cfg.Contatos.Get)
	contatos.Post("/", auth.RequireCapability(auth.CapCadastroEscrita), cfg.Contatos.Create)
	contatos.Patch("/:id", auth.RequireCapability(auth.CapCadastroEscrita), cfg.Contatos.Update)
	contatos.Delete("/:id", auth.RequireCapability(auth.CapCadastroEscrita), cfg.Contatos.Delete)

	categorias := protected.Group("/categorias")
	categorias.Get("/", auth.RequireCapability(auth.CapCadastroLeitura), cfg.Categorias.List)
	categorias.Get("/:id", auth.RequireCapability(auth.CapCadastroLeitura), cfg.Categorias.Get)
	categorias.Post("/", auth.RequireCapability(auth.CapCategoriasEscrita), cfg.Categorias.Create)
	categorias.Patch("/:id", auth.RequireCapability(auth.CapCategoriasEscrita), cfg.Categorias.Update)
	categorias.Delete("/:id", auth.RequireCapability(auth.CapCategoriasEscrita), cfg.Categorias.Delete)

	tickets := protected.Group("/tickets", auth.RequireCapability(auth.CapTickets))
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/fechar", cfg.Tickets.Fechar)

	faturamento := protected.Group("/faturamento", auth.RequireCapability(auth.CapFaturamento))
	faturamento.Post("/", cfg.Faturamento.Create)
	faturamento.Get("/", cfg.Faturamento.List)
	faturamento.Get("/resumo", cfg.Faturamento.Resumo)
	faturamento.Get("/export/:formato", cfg.Faturamento.Export)
	faturamento.Get("/:id", cfg.Faturamento.Get)
	faturamento.Patch("/:id", cfg.Faturamento.Update)
	faturamento.Patch("/:id/status", cfg.Faturamento.UpdateStatus)
	faturamento.Delete("/:id", cfg.Faturamento.Delete)

	dashboard := protected.Group("/dashboard", auth.RequireCapability(auth.CapDashboard))
	dashboard.Get("/resumo", cfg.Dashboard.Resumo)
}
