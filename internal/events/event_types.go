package events

import (
	"time"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketClosed        EventType = "ticket_closed"
	EventFaturamentoCreated  EventType = "faturamento_created"
	EventFaturamentoBilled   EventType = "faturamento_billed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UsuarioID string      `json:"usuario_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID  string `json:"ticket_id"`
	Numero    string `json:"numero"`
	EmpresaID string `json:"empresa_id"`
	Titulo    string `json:"titulo"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	Numero    string              `json:"numero"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	TicketID        string   `json:"ticket_id"`
	Numero          string   `json:"numero"`
	TempoGastoHoras *float64 `json:"tempo_gasto_horas,omitempty"`
}

// FaturamentoCreatedPayload payload.
type FaturamentoCreatedPayload struct {
	FaturamentoID string `json:"faturamento_id"`
	TicketID      string `json:"ticket_id"`
	EmpresaID     string `json:"empresa_id"`
	MesReferencia string `json:"mes_referencia"`
	Valor         string `json:"valor"`
}

// FaturamentoBilledPayload payload.
type FaturamentoBilledPayload struct {
	FaturamentoID    string  `json:"faturamento_id"`
	TicketID         string  `json:"ticket_id"`
	MesReferencia    string  `json:"mes_referencia"`
	Valor            string  `json:"valor"`
	NumeroNotaFiscal *string `json:"numero_nota_fiscal,omitempty"`
}
