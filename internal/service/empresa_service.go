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

// EmpresaService manages client companies.
type EmpresaService struct {
	empresas repository.EmpresaRepository
}

// EmpresaCreateInput describes company creation payload.
type EmpresaCreateInput struct {
	Nome               string
	CNPJ               *string
	Telefone           *string
	Email              *string
	Endereco           *string
	ContatoPrincipalID *string
}

// EmpresaPatch carries the optional fields of a partial update.
type EmpresaPatch struct {
	Nome               *string
	CNPJ               *string
	Telefone           *string
	Email              *string
	Endereco           *string
	ContatoPrincipalID *string
}

// NewEmpresaService constructs the service.
func NewEmpresaService(empresas repository.EmpresaRepository) *EmpresaService {
	return &EmpresaService{empresas: empresas}
}

// Criar registers a company, rejecting duplicate CNPJ among active companies.
func (s *EmpresaService) Criar(ctx context.Context, input EmpresaCreateInput) (*domain.Empresa, error) {
	cnpj := normalizeOptional(input.CNPJ)
	if cnpj != nil {
		if err := s.checkCNPJ(ctx, *cnpj, ""); err != nil {
			return nil, err
		}
	}

	empresa := &domain.Empresa{
		Nome:               strings.TrimSpace(input.Nome),
		CNPJ:               cnpj,
		Telefone:           normalizeOptional(input.Telefone),
		Email:              normalizeOptional(input.Email),
		Endereco:           normalizeOptional(input.Endereco),
		ContatoPrincipalID: input.ContatoPrincipalID,
	}
	if err := s.empresas.Create(ctx, empresa); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, apperrors.NewConflict("CNPJ já cadastrado", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return empresa, nil
}

// Obter fetches an active company.
func (s *EmpresaService) Obter(ctx context.Context, id string) (*domain.Empresa, error) {
	empresa, err := s.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Empresa")
	}
	return empresa, nil
}

// Listar returns active companies ordered by name.
func (s *EmpresaService) Listar(ctx context.Context, limit, offset int) ([]domain.Empresa, error) {
	result, err := s.empresas.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Atualizar applies a partial update to a company.
func (s *EmpresaService) Atualizar(ctx context.Context, id string, patch EmpresaPatch) (*domain.Empresa, error) {
	empresa, err := s.empresas.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Empresa")
	}

	if patch.Nome != nil {
		empresa.Nome = strings.TrimSpace(*patch.Nome)
	}
	if patch.CNPJ != nil {
		cnpj := normalizeOptional(patch.CNPJ)
		if cnpj != nil {
			if err := s.checkCNPJ(ctx, *cnpj, empresa.ID); err != nil {
				return nil, err
			}
		}
		empresa.CNPJ = cnpj
	}
	if patch.Telefone != nil {
		empresa.Telefone = normalizeOptional(patch.Telefone)
	}
	if patch.Email != nil {
		empresa.Email = normalizeOptional(patch.Email)
	}
	if patch.Endereco != nil {
		empresa.Endereco = normalizeOptional(patch.Endereco)
	}
	if patch.ContatoPrincipalID != nil {
		empresa.ContatoPrincipalID = patch.ContatoPrincipalID
	}

	if err := s.empresas.Update(ctx, empresa); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, apperrors.NewConflict("CNPJ já cadastrado", nil)
		}
		return nil, notFoundIfNoRows(err, "Empresa")
	}
	return empresa, nil
}

// Excluir soft-deletes a company.
func (s *EmpresaService) Excluir(ctx context.Context, id string) error {
	if err := s.empresas.SoftDelete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "Empresa")
	}
	return nil
}

func (s *EmpresaService) checkCNPJ(ctx context.Context, cnpj, selfID string) error {
	existing, err := s.empresas.GetByCNPJ(ctx, cnpj)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}
	if existing.ID != selfID {
		return apperrors.NewConflict("CNPJ já cadastrado", nil)
	}
	return nil
}

// normalizeOptional trims an optional string, mapping empty to nil.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
