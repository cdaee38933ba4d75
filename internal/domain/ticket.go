package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusAberto      TicketStatus = "aberto"
	TicketStatusEmAndamento TicketStatus = "em_andamento"
	TicketStatusResolvido   TicketStatus = "resolvido"
	TicketStatusFechado     TicketStatus = "fechado"
)

// ValidTicketStatus reports whether the value is one of the four legal states.
func ValidTicketStatus(status TicketStatus) bool {
	switch status {
	case TicketStatusAberto, TicketStatusEmAndamento, TicketStatusResolvido, TicketStatusFechado:
		return true
	}
	return false
}

// TicketStatuses lists legal states for error messages.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusAberto, TicketStatusEmAndamento, TicketStatusResolvido, TicketStatusFechado}
}

// Ticket is the aggregate for support work raised by a company contact.
// Numero carries the human-facing date-scoped identifier (TPT-YYYYMMDD-NNN).
// DataFechamento is non-nil if and only if Status is fechado.
type Ticket struct {
	ID               string
	Numero           string
	EmpresaID        string
	ContatoID        string
	CategoriaID      string
	Titulo           string
	Descricao        string
	Status           TicketStatus
	SolucaoDescricao *string
	TempoGastoHoras  *float64
	DataFechamento   *time.Time
	Ativo            bool
	DataCriacao      time.Time
	DataAtualizacao  time.Time
}

// Fechado reports whether the ticket is in the terminal closed state.
func (t *Ticket) Fechado() bool {
	return t.Status == TicketStatusFechado
}
