package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gestao-tpt/helpdesk/internal/api/http"
	"github.com/gestao-tpt/helpdesk/internal/api/http/handlers"
	"github.com/gestao-tpt/helpdesk/internal/auth"
	"github.com/gestao-tpt/helpdesk/internal/config"
	"github.com/gestao-tpt/helpdesk/internal/events"
	"github.com/gestao-tpt/helpdesk/internal/observability"
	"github.com/gestao-tpt/helpdesk/internal/persistence"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	"github.com/gestao-tpt/helpdesk/internal/service"
	"github.com/gestao-tpt/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	usuarioRepo := repository.NewUsuarioRepository(pool)
	empresaRepo := repository.NewEmpresaRepository(pool)
	contatoRepo := repository.NewContatoRepository(pool)
	categoriaRepo := repository.NewCategoriaRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	faturamentoRepo := repository.NewFaturamentoRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	throttle := auth.NewLoginThrottle(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginBlockMinutes)

	authService := service.NewAuthService(service.AuthDependencies{
		UsuarioRepo: usuarioRepo,
		Tokens:      tokens,
		Throttle:    throttle,
		BcryptCost:  cfg.Auth.BcryptCost,
		Logger:      logger,
	})
	empresaService := service.NewEmpresaService(empresaRepo)
	contatoService := service.NewContatoService(contatoRepo, empresaRepo)
	categoriaService := service.NewCategoriaService(categoriaRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		EmpresaRepo:   empresaRepo,
		ContatoRepo:   contatoRepo,
		CategoriaRepo: categoriaRepo,
		Dispatcher:    dispatcher,
	})
	faturamentoService := service.NewFaturamentoService(service.FaturamentoDependencies{
		FaturamentoRepo: faturamentoRepo,
		TicketRepo:      ticketRepo,
		EmpresaRepo:     empresaRepo,
		Dispatcher:      dispatcher,
	})
	dashboardService := service.NewDashboardService(ticketRepo, faturamentoRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if err := authService.EnsureAdminUser(ctx, cfg.Seed); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(tokens, usuarioRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Empresas:       handlers.NewEmpresasHandler(empresaService),
		Contatos:       handlers.NewContatosHandler(contatoService),
		Categorias:     handlers.NewCategoriasHandler(categoriaService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Faturamento:    handlers.NewFaturamentoHandler(faturamentoService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
