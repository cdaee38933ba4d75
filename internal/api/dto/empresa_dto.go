package dto

import (
	"time"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/service"
)

// CreateEmpresaRequest payload.
type CreateEmpresaRequest struct {
	Nome               string  `json:"nome" validate:"required,min=2,max=255"`
	CNPJ               *string `json:"cnpj" validate:"omitempty,min=14,max=18"`
	Telefone           *string `json:"telefone" validate:"omitempty,max=20"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Endereco           *string `json:"endereco"`
	ContatoPrincipalID *string `json:"contato_principal_id" validate:"omitempty,uuid"`
}

// UpdateEmpresaRequest carries optional fields; absent keys are not touched.
type UpdateEmpresaRequest struct {
	Nome               *string `json:"nome" validate:"omitempty,min=2,max=255"`
	CNPJ               *string `json:"cnpj" validate:"omitempty,max=18"`
	Telefone           *string `json:"telefone" validate:"omitempty,max=20"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Endereco           *string `json:"endereco"`
	ContatoPrincipalID *string `json:"contato_principal_id" validate:"omitempty,uuid"`
}

// EmpresaResponse payload.
type EmpresaResponse struct {
	ID                 string    `json:"id"`
	Nome               string    `json:"nome"`
	CNPJ               *string   `json:"cnpj"`
	Telefone           *string   `json:"telefone"`
	Email              *string   `json:"email"`
	Endereco           *string   `json:"endereco"`
	ContatoPrincipalID *string   `json:"contato_principal_id"`
	Ativo              bool      `json:"ativo"`
	DataCriacao        time.Time `json:"data_criacao"`
	DataAtualizacao    time.Time `json:"data_atualizacao"`
}

// ToCreateInput maps the request to the service input.
func (r CreateEmpresaRequest) ToCreateInput() service.EmpresaCreateInput {
	return service.EmpresaCreateInput{
		Nome:               r.Nome,
		CNPJ:               r.CNPJ,
		Telefone:           r.Telefone,
		Email:              r.Email,
		Endereco:           r.Endereco,
		ContatoPrincipalID: r.ContatoPrincipalID,
	}
}

// ToPatch maps the request to the service patch.
func (r UpdateEmpresaRequest) ToPatch() service.EmpresaPatch {
	return service.EmpresaPatch{
		Nome:               r.Nome,
		CNPJ:               r.CNPJ,
		Telefone:           r.Telefone,
		Email:              r.Email,
		Endereco:           r.Endereco,
		ContatoPrincipalID: r.ContatoPrincipalID,
	}
}

// FromEmpresa maps the domain company.
func FromEmpresa(e *domain.Empresa) EmpresaResponse {
	return EmpresaResponse{
		ID:                 e.ID,
		Nome:               e.Nome,
		CNPJ:               e.CNPJ,
		Telefone:           e.Telefone,
		Email:              e.Email,
		Endereco:           e.Endereco,
		ContatoPrincipalID: e.ContatoPrincipalID,
		Ativo:              e.Ativo,
		DataCriacao:        e.DataCriacao,
		DataAtualizacao:    e.DataAtualizacao,
	}
}

// FromEmpresas maps a listing.
func FromEmpresas(items []domain.Empresa) []EmpresaResponse {
	result := make([]EmpresaResponse, len(items))
	for i := range items {
		result[i] = FromEmpresa(&items[i])
	}
	return result
}
