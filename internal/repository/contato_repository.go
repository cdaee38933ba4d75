package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// ContatoRepository manages contact persistence.
type ContatoRepository interface {
	Create(ctx context.Context, contato *domain.Contato) error
	Update(ctx context.Context, contato *domain.Contato) error
	GetByID(ctx context.Context, id string) (*domain.Contato, error)
	List(ctx context.Context, empresaID *string, limit, offset int) ([]domain.Contato, error)
	SoftDelete(ctx context.Context, id string) error
}

type contatoRepository struct {
	pool *pgxpool.Pool
}

// NewContatoRepository builds the repository.
func NewContatoRepository(pool *pgxpool.Pool) ContatoRepository {
	return &contatoRepository{pool: pool}
}

const contatoColumns = `id, empresa_id, nome, email, telefone, cargo, departamento, principal, ativo, data_criacao, data_atualizacao`

func (r *contatoRepository) Create(ctx context.Context, contato *domain.Contato) error {
	const query = `
        INSERT INTO contatos (empresa_id, nome, email, telefone, cargo, departamento, principal)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, ativo, data_criacao, data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		contato.EmpresaID,
		contato.Nome,
		contato.Email,
		contato.Telefone,
		contato.Cargo,
		contato.Departamento,
		contato.Principal,
	).Scan(&contato.ID, &contato.Ativo, &contato.DataCriacao, &contato.DataAtualizacao)
}

func (r *contatoRepository) Update(ctx context.Context, contato *domain.Contato) error {
	const query = `
        UPDATE contatos SET nome=$1, email=$2, telefone=$3, cargo=$4, departamento=$5,
            principal=$6, data_atualizacao=NOW()
        WHERE id=$7 AND ativo = TRUE
        RETURNING data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		contato.Nome,
		contato.Email,
		contato.Telefone,
		contato.Cargo,
		contato.Departamento,
		contato.Principal,
		contato.ID,
	).Scan(&contato.DataAtualizacao)
}

func (r *contatoRepository) GetByID(ctx context.Context, id string) (*domain.Contato, error) {
	query := `SELECT ` + contatoColumns + ` FROM contatos WHERE id=$1 AND ativo = TRUE`
	var contato domain.Contato
	if err := r.pool.QueryRow(ctx, query, id).Scan(contatoFields(&contato)...); err != nil {
		return nil, err
	}
	return &contato, nil
}

func (r *contatoRepository) List(ctx context.Context, empresaID *string, limit, offset int) ([]domain.Contato, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + contatoColumns + ` FROM contatos WHERE ativo = TRUE`
	args := []any{}
	if empresaID != nil {
		args = append(args, *empresaID)
		query += ` AND empresa_id=$1 ORDER BY nome LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY nome LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contato
	for rows.Next() {
		var contato domain.Contato
		if err := rows.Scan(contatoFields(&contato)...); err != nil {
			return nil, err
		}
		result = append(result, contato)
	}
	return result, rows.Err()
}

func (r *contatoRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE contatos SET ativo = FALSE, data_atualizacao=NOW()
        WHERE id=$1 AND ativo = TRUE
        RETURNING id`
	var deleted string
	return r.pool.QueryRow(ctx, query, id).Scan(&deleted)
}

func contatoFields(c *domain.Contato) []any {
	return []any{
		&c.ID,
		&c.EmpresaID,
		&c.Nome,
		&c.Email,
		&c.Telefone,
		&c.Cargo,
		&c.Departamento,
		&c.Principal,
		&c.Ativo,
		&c.DataCriacao,
		&c.DataAtualizacao,
	}
}
