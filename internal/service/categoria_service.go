package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// CategoriaService manages service categories.
type CategoriaService struct {
	categorias repository.CategoriaRepository
}

// CategoriaCreateInput describes category creation payload.
type CategoriaCreateInput struct {
	Nome      string
	Descricao *string
	CorTag    string
	Icone     *string
	Ordem     int
}

// CategoriaPatch carries the optional fields of a partial update.
type CategoriaPatch struct {
	Nome      *string
	Descricao *string
	CorTag    *string
	Icone     *string
	Ordem     *int
}

// NewCategoriaService constructs the service.
func NewCategoriaService(categorias repository.CategoriaRepository) *CategoriaService {
	return &CategoriaService{categorias: categorias}
}

// Criar registers a category. Names are unique even against soft-deleted
// categories since the column constraint is a hard one.
func (s *CategoriaService) Criar(ctx context.Context, input CategoriaCreateInput) (*domain.CategoriaServico, error) {
	nome := strings.TrimSpace(input.Nome)
	if err := s.checkNome(ctx, nome, ""); err != nil {
		return nil, err
	}

	categoria := &domain.CategoriaServico{
		Nome:      nome,
		Descricao: normalizeOptional(input.Descricao),
		CorTag:    strings.TrimSpace(input.CorTag),
		Icone:     normalizeOptional(input.Icone),
		Ordem:     input.Ordem,
	}
	if categoria.CorTag == "" {
		categoria.CorTag = "#6B7280"
	}
	if err := s.categorias.Create(ctx, categoria); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, apperrors.NewConflict("Categoria já existe", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return categoria, nil
}

// Obter fetches an active category.
func (s *CategoriaService) Obter(ctx context.Context, id string) (*domain.CategoriaServico, error) {
	categoria, err := s.categorias.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Categoria")
	}
	return categoria, nil
}

// Listar returns active categories ordered for display.
func (s *CategoriaService) Listar(ctx context.Context) ([]domain.CategoriaServico, error) {
	result, err := s.categorias.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Atualizar applies a partial update to a category.
func (s *CategoriaService) Atualizar(ctx context.Context, id string, patch CategoriaPatch) (*domain.CategoriaServico, error) {
	categoria, err := s.categorias.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Categoria")
	}

	if patch.Nome != nil {
		nome := strings.TrimSpace(*patch.Nome)
		if err := s.checkNome(ctx, nome, categoria.ID); err != nil {
			return nil, err
		}
		categoria.Nome = nome
	}
	if patch.Descricao != nil {
		categoria.Descricao = normalizeOptional(patch.Descricao)
	}
	if patch.CorTag != nil {
		categoria.CorTag = strings.TrimSpace(*patch.CorTag)
	}
	if patch.Icone != nil {
		categoria.Icone = normalizeOptional(patch.Icone)
	}
	if patch.Ordem != nil {
		categoria.Ordem = *patch.Ordem
	}

	if err := s.categorias.Update(ctx, categoria); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, apperrors.NewConflict("Categoria já existe", nil)
		}
		return nil, notFoundIfNoRows(err, "Categoria")
	}
	return categoria, nil
}

// Excluir soft-deletes a category.
func (s *CategoriaService) Excluir(ctx context.Context, id string) error {
	if err := s.categorias.SoftDelete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "Categoria")
	}
	return nil
}

func (s *CategoriaService) checkNome(ctx context.Context, nome, selfID string) error {
	existing, err := s.categorias.GetByNome(ctx, nome)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}
	if existing.ID != selfID {
		return apperrors.NewConflict("Categoria já existe", nil)
	}
	return nil
}
