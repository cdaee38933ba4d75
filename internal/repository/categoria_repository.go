package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// CategoriaRepository manages service category persistence.
type CategoriaRepository interface {
	Create(ctx context.Context, categoria *domain.CategoriaServico) error
	Update(ctx context.Context, categoria *domain.CategoriaServico) error
	GetByID(ctx context.Context, id string) (*domain.CategoriaServico, error)
	GetByNome(ctx context.Context, nome string) (*domain.CategoriaServico, error)
	ListActive(ctx context.Context) ([]domain.CategoriaServico, error)
	SoftDelete(ctx context.Context, id string) error
}

type categoriaRepository struct {
	pool *pgxpool.Pool
}

// NewCategoriaRepository builds the repository.
func NewCategoriaRepository(pool *pgxpool.Pool) CategoriaRepository {
	return &categoriaRepository{pool: pool}
}

const categoriaColumns = `id, nome, descricao, cor_tag, icone, ordem, ativo, data_criacao, data_atualizacao`

func (r *categoriaRepository) Create(ctx context.Context, categoria *domain.CategoriaServico) error {
	const query = `
        INSERT INTO categorias_servico (nome, descricao, cor_tag, icone, ordem)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, ativo, data_criacao, data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		categoria.Nome,
		categoria.Descricao,
		categoria.CorTag,
		categoria.Icone,
		categoria.Ordem,
	).Scan(&categoria.ID, &categoria.Ativo, &categoria.DataCriacao, &categoria.DataAtualizacao)
}

func (r *categoriaRepository) Update(ctx context.Context, categoria *domain.CategoriaServico) error {
	const query = `
        UPDATE categorias_servico SET nome=$1, descricao=$2, cor_tag=$3, icone=$4, ordem=$5,
            data_atualizacao=NOW()
        WHERE id=$6 AND ativo = TRUE
        RETURNING data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		categoria.Nome,
		categoria.Descricao,
		categoria.CorTag,
		categoria.Icone,
		categoria.Ordem,
		categoria.ID,
	).Scan(&categoria.DataAtualizacao)
}

func (r *categoriaRepository) GetByID(ctx context.Context, id string) (*domain.CategoriaServico, error) {
	query := `SELECT ` + categoriaColumns + ` FROM categorias_servico WHERE id=$1 AND ativo = TRUE`
	return r.fetchSingle(ctx, query, id)
}

// GetByNome matches regardless of the ativo flag: the column carries a hard
// unique constraint, so a soft-deleted category still blocks reuse of its name.
func (r *categoriaRepository) GetByNome(ctx context.Context, nome string) (*domain.CategoriaServico, error) {
	query := `SELECT ` + categoriaColumns + ` FROM categorias_servico WHERE nome=$1`
	return r.fetchSingle(ctx, query, nome)
}

func (r *categoriaRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.CategoriaServico, error) {
	var categoria domain.CategoriaServico
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&categoria.ID,
		&categoria.Nome,
		&categoria.Descricao,
		&categoria.CorTag,
		&categoria.Icone,
		&categoria.Ordem,
		&categoria.Ativo,
		&categoria.DataCriacao,
		&categoria.DataAtualizacao,
	); err != nil {
		return nil, err
	}
	return &categoria, nil
}

func (r *categoriaRepository) ListActive(ctx context.Context) ([]domain.CategoriaServico, error) {
	query := `SELECT ` + categoriaColumns + ` FROM categorias_servico WHERE ativo = TRUE ORDER BY ordem`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CategoriaServico
	for rows.Next() {
		var categoria domain.CategoriaServico
		if err := rows.Scan(
			&categoria.ID,
			&categoria.Nome,
			&categoria.Descricao,
			&categoria.CorTag,
			&categoria.Icone,
			&categoria.Ordem,
			&categoria.Ativo,
			&categoria.DataCriacao,
			&categoria.DataAtualizacao,
		); err != nil {
			return nil, err
		}
		result = append(result, categoria)
	}
	return result, rows.Err()
}

func (r *categoriaRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE categorias_servico SET ativo = FALSE, data_atualizacao=NOW()
        WHERE id=$1 AND ativo = TRUE
        RETURNING id`
	var deleted string
	return r.pool.QueryRow(ctx, query, id).Scan(&deleted)
}
