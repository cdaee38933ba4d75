package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gestao-tpt/helpdesk/internal/auth"
	"github.com/gestao-tpt/helpdesk/internal/config"
	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// AuthService handles credential verification, token issuance and the
// development admin bootstrap.
type AuthService struct {
	usuarios   repository.UsuarioRepository
	tokens     *auth.TokenManager
	throttle   *auth.LoginThrottle
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UsuarioRepo repository.UsuarioRepository
	Tokens      *auth.TokenManager
	Throttle    *auth.LoginThrottle
	BcryptCost  int
	Logger      *zap.Logger
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Usuario   *domain.Usuario
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		usuarios:   deps.UsuarioRepo,
		tokens:     deps.Tokens,
		throttle:   deps.Throttle,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Login verifies credentials and returns a signed token. Failures against a
// known or unknown email look identical to the caller, and repeated failures
// for the same email are throttled.
func (s *AuthService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle indisponível", zap.Error(err))
	} else if blocked {
		return nil, apperrors.NewDomainError(
			"TOO_MANY_ATTEMPTS",
			"Muitas tentativas de login. Tente novamente mais tarde",
			http.StatusTooManyRequests, nil)
	}

	usuario, err := s.usuarios.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.failedLogin(ctx, email)
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(usuario.SenhaHash, senha); err != nil {
		return nil, s.failedLogin(ctx, email)
	}

	token, expiresAt, err := s.tokens.GenerateToken(usuario.ID, usuario.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn("login throttle reset falhou", zap.Error(err))
	}
	if err := s.usuarios.TouchUltimoAcesso(ctx, usuario.ID, s.now().UTC()); err != nil {
		s.logger.Warn("ultimo_acesso não atualizado", zap.String("usuario_id", usuario.ID), zap.Error(err))
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Usuario: usuario}, nil
}

func (s *AuthService) failedLogin(ctx context.Context, email string) error {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn("login throttle record falhou", zap.Error(err))
	}
	return apperrors.NewUnauthorized("Email ou senha inválidos")
}

// EnsureAdminUser creates the seed admin account when it does not exist yet.
// Used on startup in development and testing environments.
func (s *AuthService) EnsureAdminUser(ctx context.Context, seed config.SeedConfig) error {
	if !seed.Enabled {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if _, err := s.usuarios.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(seed.AdminSenha, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	usuario := &domain.Usuario{
		Email:     email,
		SenhaHash: hash,
		Nome:      seed.AdminNome,
		Role:      domain.RoleAdmin,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil
		}
		return apperrors.MapError(err)
	}

	s.logger.Info("admin seed criado", zap.String("email", email))
	return nil
}
