package service

import (
	"context"
	"strings"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// ContatoService manages company contacts.
type ContatoService struct {
	contatos repository.ContatoRepository
	empresas repository.EmpresaRepository
}

// ContatoCreateInput describes contact creation payload.
type ContatoCreateInput struct {
	EmpresaID    string
	Nome         string
	Email        *string
	Telefone     *string
	Cargo        *string
	Departamento *string
	Principal    bool
}

// ContatoPatch carries the optional fields of a partial update.
type ContatoPatch struct {
	Nome         *string
	Email        *string
	Telefone     *string
	Cargo        *string
	Departamento *string
	Principal    *bool
}

// NewContatoService constructs the service.
func NewContatoService(contatos repository.ContatoRepository, empresas repository.EmpresaRepository) *ContatoService {
	return &ContatoService{contatos: contatos, empresas: empresas}
}

// Criar registers a contact under an active company.
func (s *ContatoService) Criar(ctx context.Context, input ContatoCreateInput) (*domain.Contato, error) {
	if _, err := s.empresas.GetByID(ctx, input.EmpresaID); err != nil {
		return nil, refValidation(err, "Empresa não encontrada")
	}

	contato := &domain.Contato{
		EmpresaID:    input.EmpresaID,
		Nome:         strings.TrimSpace(input.Nome),
		Email:        normalizeOptional(input.Email),
		Telefone:     normalizeOptional(input.Telefone),
		Cargo:        normalizeOptional(input.Cargo),
		Departamento: normalizeOptional(input.Departamento),
		Principal:    input.Principal,
	}
	if err := s.contatos.Create(ctx, contato); err != nil {
		return nil, apperrors.MapError(err)
	}
	return contato, nil
}

// Obter fetches an active contact.
func (s *ContatoService) Obter(ctx context.Context, id string) (*domain.Contato, error) {
	contato, err := s.contatos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Contato")
	}
	return contato, nil
}

// Listar returns active contacts, optionally scoped to a company.
func (s *ContatoService) Listar(ctx context.Context, empresaID *string, limit, offset int) ([]domain.Contato, error) {
	result, err := s.contatos.List(ctx, empresaID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Atualizar applies a partial update to a contact.
func (s *ContatoService) Atualizar(ctx context.Context, id string, patch ContatoPatch) (*domain.Contato, error) {
	contato, err := s.contatos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Contato")
	}

	if patch.Nome != nil {
		contato.Nome = strings.TrimSpace(*patch.Nome)
	}
	if patch.Email != nil {
		contato.Email = normalizeOptional(patch.Email)
	}
	if patch.Telefone != nil {
		contato.Telefone = normalizeOptional(patch.Telefone)
	}
	if patch.Cargo != nil {
		contato.Cargo = normalizeOptional(patch.Cargo)
	}
	if patch.Departamento != nil {
		contato.Departamento = normalizeOptional(patch.Departamento)
	}
	if patch.Principal != nil {
		contato.Principal = *patch.Principal
	}

	if err := s.contatos.Update(ctx, contato); err != nil {
		return nil, notFoundIfNoRows(err, "Contato")
	}
	return contato, nil
}

// Excluir soft-deletes a contact.
func (s *ContatoService) Excluir(ctx context.Context, id string) error {
	if err := s.contatos.SoftDelete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "Contato")
	}
	return nil
}
