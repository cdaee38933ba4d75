package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// UsuarioRepository manages operator accounts.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *domain.Usuario) error
	GetByID(ctx context.Context, id string) (*domain.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*domain.Usuario, error)
	TouchUltimoAcesso(ctx context.Context, id string, at time.Time) error
}

type usuarioRepository struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository builds the repository.
func NewUsuarioRepository(pool *pgxpool.Pool) UsuarioRepository {
	return &usuarioRepository{pool: pool}
}

const usuarioColumns = `id, email, senha_hash, nome, role, ultimo_acesso, ativo, data_criacao, data_atualizacao`

func (r *usuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) error {
	const query = `
        INSERT INTO usuarios (email, senha_hash, nome, role)
        VALUES ($1,$2,$3,$4)
        RETURNING id, ativo, data_criacao, data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		usuario.Email,
		usuario.SenhaHash,
		usuario.Nome,
		usuario.Role,
	).Scan(&usuario.ID, &usuario.Ativo, &usuario.DataCriacao, &usuario.DataAtualizacao)
}

func (r *usuarioRepository) GetByID(ctx context.Context, id string) (*domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id=$1 AND ativo = TRUE`
	return r.fetchSingle(ctx, query, id)
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE email=$1 AND ativo = TRUE`
	return r.fetchSingle(ctx, query, email)
}

func (r *usuarioRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Usuario, error) {
	var usuario domain.Usuario
	var role string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&usuario.ID,
		&usuario.Email,
		&usuario.SenhaHash,
		&usuario.Nome,
		&role,
		&usuario.UltimoAcesso,
		&usuario.Ativo,
		&usuario.DataCriacao,
		&usuario.DataAtualizacao,
	); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	usuario.Role = parsed
	return &usuario, nil
}

func (r *usuarioRepository) TouchUltimoAcesso(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE usuarios SET ultimo_acesso=$1 WHERE id=$2`
	_, err := r.pool.Exec(ctx, query, at, id)
	return err
}
