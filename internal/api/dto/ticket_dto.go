package dto

import (
	"time"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	EmpresaID   string `json:"empresa_id" validate:"required,uuid"`
	ContatoID   string `json:"contato_id" validate:"required,uuid"`
	CategoriaID string `json:"categoria_id" validate:"required,uuid"`
	Titulo      string `json:"titulo" validate:"required,min=5,max=255"`
	Descricao   string `json:"descricao" validate:"required,min=10"`
}

// UpdateTicketRequest carries optional fields; absent keys are not touched.
type UpdateTicketRequest struct {
	Titulo      *string `json:"titulo" validate:"omitempty,min=5,max=255"`
	Descricao   *string `json:"descricao" validate:"omitempty,min=10"`
	CategoriaID *string `json:"categoria_id" validate:"omitempty,uuid"`
	ContatoID   *string `json:"contato_id" validate:"omitempty,uuid"`
	Status      *string `json:"status" validate:"omitempty,ticket_status"`
}

// UpdateTicketStatusRequest payload for the status transition endpoint.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,ticket_status"`
}

// FecharTicketRequest payload for the close action.
type FecharTicketRequest struct {
	SolucaoDescricao string   `json:"solucao_descricao" validate:"required,min=10"`
	TempoGastoHoras  *float64 `json:"tempo_gasto_horas" validate:"omitempty,gte=0"`
}

// TicketResponse payload.
type TicketResponse struct {
	ID               string              `json:"id"`
	Numero           string              `json:"numero"`
	EmpresaID        string              `json:"empresa_id"`
	ContatoID        string              `json:"contato_id"`
	CategoriaID      string              `json:"categoria_id"`
	Titulo           string              `json:"titulo"`
	Descricao        string              `json:"descricao"`
	Status           domain.TicketStatus `json:"status"`
	SolucaoDescricao *string             `json:"solucao_descricao"`
	TempoGastoHoras  *float64            `json:"tempo_gasto_horas"`
	DataFechamento   *time.Time          `json:"data_fechamento"`
	DataCriacao      time.Time           `json:"data_criacao"`
	DataAtualizacao  time.Time           `json:"data_atualizacao"`
}

// ToCreateInput maps the request to the service input.
func (r CreateTicketRequest) ToCreateInput() service.TicketCreateInput {
	return service.TicketCreateInput{
		EmpresaID:   r.EmpresaID,
		ContatoID:   r.ContatoID,
		CategoriaID: r.CategoriaID,
		Titulo:      r.Titulo,
		Descricao:   r.Descricao,
	}
}

// ToPatch maps the request to the service patch.
func (r UpdateTicketRequest) ToPatch() service.TicketPatch {
	patch := service.TicketPatch{
		Titulo:      r.Titulo,
		Descricao:   r.Descricao,
		CategoriaID: r.CategoriaID,
		ContatoID:   r.ContatoID,
	}
	if r.Status != nil {
		status := domain.TicketStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// FromTicket maps the domain ticket.
func FromTicket(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:               t.ID,
		Numero:           t.Numero,
		EmpresaID:        t.EmpresaID,
		ContatoID:        t.ContatoID,
		CategoriaID:      t.CategoriaID,
		Titulo:           t.Titulo,
		Descricao:        t.Descricao,
		Status:           t.Status,
		SolucaoDescricao: t.SolucaoDescricao,
		TempoGastoHoras:  t.TempoGastoHoras,
		DataFechamento:   t.DataFechamento,
		DataCriacao:      t.DataCriacao,
		DataAtualizacao:  t.DataAtualizacao,
	}
}

// FromTickets maps a listing.
func FromTickets(items []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, len(items))
	for i := range items {
		result[i] = FromTicket(&items[i])
	}
	return result
}
