package dto

import (
	"time"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/service"
)

// CreateCategoriaRequest payload.
type CreateCategoriaRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2,max=100"`
	Descricao *string `json:"descricao"`
	CorTag    string  `json:"cor_tag" validate:"omitempty,hexcolor"`
	Icone     *string `json:"icone" validate:"omitempty,max=50"`
	Ordem     int     `json:"ordem" validate:"gte=0"`
}

// UpdateCategoriaRequest carries optional fields; absent keys are not touched.
type UpdateCategoriaRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,min=2,max=100"`
	Descricao *string `json:"descricao"`
	CorTag    *string `json:"cor_tag" validate:"omitempty,hexcolor"`
	Icone     *string `json:"icone" validate:"omitempty,max=50"`
	Ordem     *int    `json:"ordem" validate:"omitempty,gte=0"`
}

// CategoriaResponse payload.
type CategoriaResponse struct {
	ID              string    `json:"id"`
	Nome            string    `json:"nome"`
	Descricao       *string   `json:"descricao"`
	CorTag          string    `json:"cor_tag"`
	Icone           *string   `json:"icone"`
	Ordem           int       `json:"ordem"`
	Ativo           bool      `json:"ativo"`
	DataCriacao     time.Time `json:"data_criacao"`
	DataAtualizacao time.Time `json:"data_atualizacao"`
}

// ToCreateInput maps the request to the service input.
func (r CreateCategoriaRequest) ToCreateInput() service.CategoriaCreateInput {
	return service.CategoriaCreateInput{
		Nome:      r.Nome,
		Descricao: r.Descricao,
		CorTag:    r.CorTag,
		Icone:     r.Icone,
		Ordem:     r.Ordem,
	}
}

// ToPatch maps the request to the service patch.
func (r UpdateCategoriaRequest) ToPatch() service.CategoriaPatch {
	return service.CategoriaPatch{
		Nome:      r.Nome,
		Descricao: r.Descricao,
		CorTag:    r.CorTag,
		Icone:     r.Icone,
		Ordem:     r.Ordem,
	}
}

// FromCategoria maps the domain category.
func FromCategoria(c *domain.CategoriaServico) CategoriaResponse {
	return CategoriaResponse{
		ID:              c.ID,
		Nome:            c.Nome,
		Descricao:       c.Descricao,
		CorTag:          c.CorTag,
		Icone:           c.Icone,
		Ordem:           c.Ordem,
		Ativo:           c.Ativo,
		DataCriacao:     c.DataCriacao,
		DataAtualizacao: c.DataAtualizacao,
	}
}

// FromCategorias maps a listing.
func FromCategorias(items []domain.CategoriaServico) []CategoriaResponse {
	result := make([]CategoriaResponse, len(items))
	for i := range items {
		result[i] = FromCategoria(&items[i])
	}
	return result
}
