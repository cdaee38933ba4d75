package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/events"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// TicketService coordinates ticket workflows: creation with reference checks,
// the status lifecycle and the dedicated close action.
type TicketService struct {
	tickets    repository.TicketRepository
	empresas   repository.EmpresaRepository
	contatos   repository.ContatoRepository
	categorias repository.CategoriaRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	EmpresaRepo   repository.EmpresaRepository
	ContatoRepo   repository.ContatoRepository
	CategoriaRepo repository.CategoriaRepository
	Dispatcher    events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	EmpresaID   string
	ContatoID   string
	CategoriaID string
	Titulo      string
	Descricao   string
}

// TicketPatch carries the optional fields of a partial update. Nil means the
// field was not supplied.
type TicketPatch struct {
	Titulo      *string
	Descricao   *string
	CategoriaID *string
	ContatoID   *string
	Status      *domain.TicketStatus
}

// TicketListInput describes listing filters.
type TicketListInput struct {
	Status    *domain.TicketStatus
	EmpresaID *string
	Limit     int
	Offset    int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		empresas:   deps.EmpresaRepo,
		contatos:   deps.ContatoRepo,
		categorias: deps.CategoriaRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Criar creates a ticket in the aberto state after checking every referenced
// entity exists and is active. The numero is assigned by the repository
// inside the insert transaction.
func (s *TicketService) Criar(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if _, err := s.empresas.GetByID(ctx, input.EmpresaID); err != nil {
		return nil, refValidation(err, "Empresa não encontrada")
	}
	if _, err := s.contatos.GetByID(ctx, input.ContatoID); err != nil {
		return nil, refValidation(err, "Contato não encontrado")
	}
	if _, err := s.categorias.GetByID(ctx, input.CategoriaID); err != nil {
		return nil, refValidation(err, "Categoria não encontrada")
	}

	ticket := &domain.Ticket{
		EmpresaID:   input.EmpresaID,
		ContatoID:   input.ContatoID,
		CategoriaID: input.CategoriaID,
		Titulo:      strings.TrimSpace(input.Titulo),
		Descricao:   strings.TrimSpace(input.Descricao),
		Status:      domain.TicketStatusAberto,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:  ticket.ID,
			Numero:    ticket.Numero,
			EmpresaID: ticket.EmpresaID,
			Titulo:    ticket.Titulo,
		},
	})
	return ticket, nil
}

// Obter fetches an active ticket.
func (s *TicketService) Obter(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}
	return ticket, nil
}

// Listar returns active tickets with optional status/company filters.
func (s *TicketService) Listar(ctx context.Context, input TicketListInput) ([]domain.Ticket, error) {
	if input.Status != nil && !domain.ValidTicketStatus(*input.Status) {
		return nil, invalidStatusError()
	}
	return s.tickets.List(ctx, repository.TicketFilter{
		Status:    input.Status,
		EmpresaID: input.EmpresaID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
}

// Atualizar applies a partial field edit. A supplied status passes the same
// validity check as the generic status change, including the closure
// timestamp rule.
func (s *TicketService) Atualizar(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}

	if patch.Titulo != nil {
		ticket.Titulo = strings.TrimSpace(*patch.Titulo)
	}
	if patch.Descricao != nil {
		ticket.Descricao = strings.TrimSpace(*patch.Descricao)
	}
	if patch.CategoriaID != nil {
		ticket.CategoriaID = *patch.CategoriaID
	}
	if patch.ContatoID != nil {
		ticket.ContatoID = *patch.ContatoID
	}
	if patch.Status != nil {
		if !domain.ValidTicketStatus(*patch.Status) {
			return nil, invalidStatusError()
		}
		s.applyStatus(ticket, *patch.Status)
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}
	return ticket, nil
}

// MudarStatus performs the generic status change. Any of the four legal
// states is reachable from any other; moving to fechado stamps the closure
// time, moving away clears it.
func (s *TicketService) MudarStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(status) {
		return nil, invalidStatusError()
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}

	oldStatus := ticket.Status
	s.applyStatus(ticket, status)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  ticket.ID,
			Numero:    ticket.Numero,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// Fechar closes a ticket, storing solution text, hours spent and the closure
// timestamp in one update. A second close attempt is a conflict.
func (s *TicketService) Fechar(ctx context.Context, id, solucao string, tempoGastoHoras *float64) (*domain.Ticket, error) {
	solucao = strings.TrimSpace(solucao)
	if solucao == "" {
		return nil, apperrors.NewValidationError("Solução é obrigatória", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}
	if ticket.Fechado() {
		return nil, apperrors.NewConflict("Ticket já está fechado", nil)
	}

	now := s.now().UTC()
	ticket.Status = domain.TicketStatusFechado
	ticket.SolucaoDescricao = &solucao
	ticket.TempoGastoHoras = tempoGastoHoras
	ticket.DataFechamento = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, notFoundIfNoRows(err, "Ticket")
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketClosed,
		Payload: events.TicketClosedPayload{
			TicketID:        ticket.ID,
			Numero:          ticket.Numero,
			TempoGastoHoras: tempoGastoHoras,
		},
	})
	return ticket, nil
}

// applyStatus keeps the data_fechamento iff fechado invariant.
func (s *TicketService) applyStatus(ticket *domain.Ticket, status domain.TicketStatus) {
	ticket.Status = status
	if status == domain.TicketStatusFechado {
		now := s.now().UTC()
		ticket.DataFechamento = &now
	} else {
		ticket.DataFechamento = nil
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func invalidStatusError() error {
	statuses := domain.TicketStatuses()
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return apperrors.NewValidationError(
		fmt.Sprintf("Status inválido. Use: %s", strings.Join(names, ", ")), nil)
}

// refValidation maps a missing reference to a validation error; other store
// failures stay internal.
func refValidation(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewValidationError(message, nil)
	}
	return apperrors.MapError(err)
}

func notFoundIfNoRows(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}
