package dto

import (
	"time"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
}

// LoginResponse carries the bearer token and its owner.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Usuario     UsuarioResponse `json:"usuario"`
}

// UsuarioResponse exposes account data without the password hash.
type UsuarioResponse struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Nome         string      `json:"nome"`
	Role         domain.Role `json:"role"`
	UltimoAcesso *time.Time  `json:"ultimo_acesso"`
	DataCriacao  time.Time   `json:"data_criacao"`
}

// FromUsuario maps the domain user.
func FromUsuario(u *domain.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:           u.ID,
		Email:        u.Email,
		Nome:         u.Nome,
		Role:         u.Role,
		UltimoAcesso: u.UltimoAcesso,
		DataCriacao:  u.DataCriacao,
	}
}
