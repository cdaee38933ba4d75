package dto

import (
	"time"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/service"
)

// CreateContatoRequest payload.
type CreateContatoRequest struct {
	EmpresaID    string  `json:"empresa_id" validate:"required,uuid"`
	Nome         string  `json:"nome" validate:"required,min=2,max=255"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Telefone     *string `json:"telefone" validate:"omitempty,max=20"`
	Cargo        *string `json:"cargo" validate:"omitempty,max=100"`
	Departamento *string `json:"departamento" validate:"omitempty,max=100"`
	Principal    bool    `json:"principal"`
}

// UpdateContatoRequest carries optional fields; absent keys are not touched.
type UpdateContatoRequest struct {
	Nome         *string `json:"nome" validate:"omitempty,min=2,max=255"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Telefone     *string `json:"telefone" validate:"omitempty,max=20"`
	Cargo        *string `json:"cargo" validate:"omitempty,max=100"`
	Departamento *string `json:"departamento" validate:"omitempty,max=100"`
	Principal    *bool   `json:"principal"`
}

// ContatoResponse payload.
type ContatoResponse struct {
	ID              string    `json:"id"`
	EmpresaID       string    `json:"empresa_id"`
	Nome            string    `json:"nome"`
	Email           *string   `json:"email"`
	Telefone        *string   `json:"telefone"`
	Cargo           *string   `json:"cargo"`
	Departamento    *string   `json:"departamento"`
	Principal       bool      `json:"principal"`
	Ativo           bool      `json:"ativo"`
	DataCriacao     time.Time `json:"data_criacao"`
	DataAtualizacao time.Time `json:"data_atualizacao"`
}

// ToCreateInput maps the request to the service input.
func (r CreateContatoRequest) ToCreateInput() service.ContatoCreateInput {
	return service.ContatoCreateInput{
		EmpresaID:    r.EmpresaID,
		Nome:         r.Nome,
		Email:        r.Email,
		Telefone:     r.Telefone,
		Cargo:        r.Cargo,
		Departamento: r.Departamento,
		Principal:    r.Principal,
	}
}

// ToPatch maps the request to the service patch.
func (r UpdateContatoRequest) ToPatch() service.ContatoPatch {
	return service.ContatoPatch{
		Nome:         r.Nome,
		Email:        r.Email,
		Telefone:     r.Telefone,
		Cargo:        r.Cargo,
		Departamento: r.Departamento,
		Principal:    r.Principal,
	}
}

// FromContato maps the domain contact.
func FromContato(c *domain.Contato) ContatoResponse {
	return ContatoResponse{
		ID:              c.ID,
		EmpresaID:       c.EmpresaID,
		Nome:            c.Nome,
		Email:           c.Email,
		Telefone:        c.Telefone,
		Cargo:           c.Cargo,
		Departamento:    c.Departamento,
		Principal:       c.Principal,
		Ativo:           c.Ativo,
		DataCriacao:     c.DataCriacao,
		DataAtualizacao: c.DataAtualizacao,
	}
}

// FromContatos maps a listing.
func FromContatos(items []domain.Contato) []ContatoResponse {
	result := make([]ContatoResponse, len(items))
	for i := range items {
		result[i] = FromContato(&items[i])
	}
	return result
}
