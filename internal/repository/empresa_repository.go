package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// EmpresaRepository manages company persistence.
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *domain.Empresa) error
	Update(ctx context.Context, empresa *domain.Empresa) error
	GetByID(ctx context.Context, id string) (*domain.Empresa, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*domain.Empresa, error)
	List(ctx context.Context, limit, offset int) ([]domain.Empresa, error)
	SoftDelete(ctx context.Context, id string) error
}

type empresaRepository struct {
	pool *pgxpool.Pool
}

// NewEmpresaRepository builds the repository.
func NewEmpresaRepository(pool *pgxpool.Pool) EmpresaRepository {
	return &empresaRepository{pool: pool}
}

const empresaColumns = `id, nome, cnpj, telefone, email, endereco, contato_principal_id, ativo, data_criacao, data_atualizacao`

func (r *empresaRepository) Create(ctx context.Context, empresa *domain.Empresa) error {
	const query = `
        INSERT INTO empresas (nome, cnpj, telefone, email, endereco, contato_principal_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, ativo, data_criacao, data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		empresa.Nome,
		empresa.CNPJ,
		empresa.Telefone,
		empresa.Email,
		empresa.Endereco,
		empresa.ContatoPrincipalID,
	).Scan(&empresa.ID, &empresa.Ativo, &empresa.DataCriacao, &empresa.DataAtualizacao)
}

func (r *empresaRepository) Update(ctx context.Context, empresa *domain.Empresa) error {
	const query = `
        UPDATE empresas SET nome=$1, cnpj=$2, telefone=$3, email=$4, endereco=$5,
            contato_principal_id=$6, data_atualizacao=NOW()
        WHERE id=$7 AND ativo = TRUE
        RETURNING data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		empresa.Nome,
		empresa.CNPJ,
		empresa.Telefone,
		empresa.Email,
		empresa.Endereco,
		empresa.ContatoPrincipalID,
		empresa.ID,
	).Scan(&empresa.DataAtualizacao)
}

func (r *empresaRepository) GetByID(ctx context.Context, id string) (*domain.Empresa, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresas WHERE id=$1 AND ativo = TRUE`
	return r.fetchSingle(ctx, query, id)
}

func (r *empresaRepository) GetByCNPJ(ctx context.Context, cnpj string) (*domain.Empresa, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresas WHERE cnpj=$1 AND ativo = TRUE`
	return r.fetchSingle(ctx, query, cnpj)
}

func (r *empresaRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Empresa, error) {
	var empresa domain.Empresa
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&empresa.ID,
		&empresa.Nome,
		&empresa.CNPJ,
		&empresa.Telefone,
		&empresa.Email,
		&empresa.Endereco,
		&empresa.ContatoPrincipalID,
		&empresa.Ativo,
		&empresa.DataCriacao,
		&empresa.DataAtualizacao,
	); err != nil {
		return nil, err
	}
	return &empresa, nil
}

func (r *empresaRepository) List(ctx context.Context, limit, offset int) ([]domain.Empresa, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + empresaColumns + ` FROM empresas WHERE ativo = TRUE ORDER BY nome LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Empresa
	for rows.Next() {
		var empresa domain.Empresa
		if err := rows.Scan(
			&empresa.ID,
			&empresa.Nome,
			&empresa.CNPJ,
			&empresa.Telefone,
			&empresa.Email,
			&empresa.Endereco,
			&empresa.ContatoPrincipalID,
			&empresa.Ativo,
			&empresa.DataCriacao,
			&empresa.DataAtualizacao,
		); err != nil {
			return nil, err
		}
		result = append(result, empresa)
	}
	return result, rows.Err()
}

func (r *empresaRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE empresas SET ativo = FALSE, data_atualizacao=NOW()
        WHERE id=$1 AND ativo = TRUE
        RETURNING id`
	var deleted string
	return r.pool.QueryRow(ctx, query, id).Scan(&deleted)
}
