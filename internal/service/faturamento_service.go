package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/events"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// FaturamentoService maintains the 1:1 ticket↔invoice relationship, the
// faturado transition rule and the per-period rollups.
type FaturamentoService struct {
	faturamentos repository.FaturamentoRepository
	tickets      repository.TicketRepository
	empresas     repository.EmpresaRepository
	dispatcher   events.Dispatcher
	now          func() time.Time
}

// FaturamentoDependencies bundles repositories for the service.
type FaturamentoDependencies struct {
	FaturamentoRepo repository.FaturamentoRepository
	TicketRepo      repository.TicketRepository
	EmpresaRepo     repository.EmpresaRepository
	Dispatcher      events.Dispatcher
}

// FaturamentoCreateInput describes invoice creation payload.
type FaturamentoCreateInput struct {
	TicketID         string
	EmpresaID        string
	Valor            decimal.Decimal
	Descricao        *string
	MesReferencia    string
	Faturado         bool
	NumeroNotaFiscal *string
}

// FaturamentoPatch carries the optional fields of a partial update. Nil means
// the field was not supplied.
type FaturamentoPatch struct {
	Valor            *decimal.Decimal
	Descricao        *string
	MesReferencia    *string
	Faturado         *bool
	NumeroNotaFiscal *string
}

// FaturamentoListInput describes listing/export filters. A nil MesReferencia
// defaults to the current calendar month.
type FaturamentoListInput struct {
	MesReferencia *string
	EmpresaID     *string
	Faturado      *bool
	Limit         int
	Offset        int
}

// NewFaturamentoService constructs the service.
func NewFaturamentoService(deps FaturamentoDependencies) *FaturamentoService {
	return &FaturamentoService{
		faturamentos: deps.FaturamentoRepo,
		tickets:      deps.TicketRepo,
		empresas:     deps.EmpresaRepo,
		dispatcher:   deps.Dispatcher,
		now:          time.Now,
	}
}

// Criar creates the single active invoice for a ticket. The supplied company
// must be the ticket's actual company; a second active invoice for the same
// ticket is a conflict (enforced again by ux_faturamento_ticket_ativo under
// concurrency).
func (s *FaturamentoService) Criar(ctx context.Context, input FaturamentoCreateInput) (*domain.Faturamento, error) {
	if !input.Valor.IsPositive() {
		return nil, apperrors.NewValidationError("Valor deve ser maior que zero", nil)
	}
	if !domain.ValidMesReferencia(input.MesReferencia) {
		return nil, apperrors.NewValidationError("Mês de referência inválido. Use AAAA-MM", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, input.TicketID)
	if err != nil {
		return nil, refValidation(err, "Ticket não encontrado")
	}
	if ticket.EmpresaID != input.EmpresaID {
		return nil, apperrors.NewValidationError("Empresa do ticket não confere", nil)
	}
	if _, err := s.empresas.GetByID(ctx, input.EmpresaID); err != nil {
		return nil, refValidation(err, "Empresa não encontrada")
	}

	if _, err := s.faturamentos.GetActiveByTicket(ctx, input.TicketID); err == nil {
		return nil, apperrors.NewConflict("Já existe faturamento para este ticket", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	now := s.now().UTC()
	faturamento := &domain.Faturamento{
		TicketID:         input.TicketID,
		EmpresaID:        input.EmpresaID,
		Valor:            input.Valor,
		Descricao:        normalizeDescricao(input.Descricao),
		MesReferencia:    input.MesReferencia,
		DataFaturamento:  &now,
		Faturado:         input.Faturado,
		NumeroNotaFiscal: input.NumeroNotaFiscal,
	}
	if input.Faturado {
		faturamento.DataFaturacao = &now
	}

	if err := s.faturamentos.Create(ctx, faturamento); err != nil {
		if repository.IsUniqueViolation(err, "ux_faturamento_ticket_ativo") {
			return nil, apperrors.NewConflict("Já existe faturamento para este ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventFaturamentoCreated,
		Payload: events.FaturamentoCreatedPayload{
			FaturamentoID: faturamento.ID,
			TicketID:      faturamento.TicketID,
			EmpresaID:     faturamento.EmpresaID,
			MesReferencia: faturamento.MesReferencia,
			Valor:         faturamento.Valor.StringFixed(2),
		},
	})
	if faturamento.Faturado {
		s.publishBilled(ctx, faturamento)
	}
	return faturamento, nil
}

// Obter fetches an active invoice.
func (s *FaturamentoService) Obter(ctx context.Context, id string) (*domain.Faturamento, error) {
	faturamento, err := s.faturamentos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Faturamento")
	}
	return faturamento, nil
}

// Atualizar applies a partial field edit. The faturado transition rule is
// evaluated against the value prior to this update: false→true stamps the
// billing timestamp, true→false clears it, same-value leaves it untouched.
func (s *FaturamentoService) Atualizar(ctx context.Context, id string, patch FaturamentoPatch) (*domain.Faturamento, error) {
	faturamento, err := s.faturamentos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Faturamento")
	}

	faturadoInicial := faturamento.Faturado

	if patch.Valor != nil {
		if !patch.Valor.IsPositive() {
			return nil, apperrors.NewValidationError("Valor deve ser maior que zero", nil)
		}
		faturamento.Valor = *patch.Valor
	}
	if patch.Descricao != nil {
		faturamento.Descricao = normalizeDescricao(patch.Descricao)
	}
	if patch.MesReferencia != nil {
		if !domain.ValidMesReferencia(*patch.MesReferencia) {
			return nil, apperrors.NewValidationError("Mês de referência inválido. Use AAAA-MM", nil)
		}
		faturamento.MesReferencia = *patch.MesReferencia
	}
	if patch.NumeroNotaFiscal != nil {
		faturamento.NumeroNotaFiscal = patch.NumeroNotaFiscal
	}
	if patch.Faturado != nil {
		faturamento.Faturado = *patch.Faturado
		s.applyFaturadoTransition(faturamento, faturadoInicial)
	}

	if err := s.faturamentos.Update(ctx, faturamento); err != nil {
		return nil, notFoundIfNoRows(err, "Faturamento")
	}

	if patch.Faturado != nil && *patch.Faturado && !faturadoInicial {
		s.publishBilled(ctx, faturamento)
	}
	return faturamento, nil
}

// AtualizarStatus is the abbreviated path: it sets faturado and the invoice
// number directly, recomputing the billing timestamp under the same
// transition rule as Atualizar.
func (s *FaturamentoService) AtualizarStatus(ctx context.Context, id string, faturado bool, numeroNotaFiscal *string) (*domain.Faturamento, error) {
	faturamento, err := s.faturamentos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "Faturamento")
	}

	faturadoInicial := faturamento.Faturado
	faturamento.Faturado = faturado
	faturamento.NumeroNotaFiscal = numeroNotaFiscal
	s.applyFaturadoTransition(faturamento, faturadoInicial)

	if err := s.faturamentos.Update(ctx, faturamento); err != nil {
		return nil, notFoundIfNoRows(err, "Faturamento")
	}

	if faturado && !faturadoInicial {
		s.publishBilled(ctx, faturamento)
	}
	return faturamento, nil
}

// Excluir soft-deletes an invoice. The ticket is untouched and a new invoice
// may be created for it afterwards.
func (s *FaturamentoService) Excluir(ctx context.Context, id string) error {
	if err := s.faturamentos.SoftDelete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "Faturamento")
	}
	return nil
}

// Resumo aggregates one billing period, defaulting to the current month.
func (s *FaturamentoService) Resumo(ctx context.Context, mesReferencia *string, empresaID *string) (*domain.FaturamentoResumo, error) {
	mes, err := s.resolveMes(mesReferencia)
	if err != nil {
		return nil, err
	}
	resumo, err := s.faturamentos.Resumo(ctx, mes, empresaID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return resumo, nil
}

// Listar returns joined invoice rows for one billing period.
func (s *FaturamentoService) Listar(ctx context.Context, input FaturamentoListInput) ([]domain.FaturamentoLinha, error) {
	mes, err := s.resolveMes(input.MesReferencia)
	if err != nil {
		return nil, err
	}
	linhas, err := s.faturamentos.List(ctx, repository.FaturamentoFilter{
		MesReferencia: mes,
		EmpresaID:     input.EmpresaID,
		Faturado:      input.Faturado,
		Limit:         input.Limit,
		Offset:        input.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return linhas, nil
}

// LinhasParaExport returns every row of the period for file exports.
func (s *FaturamentoService) LinhasParaExport(ctx context.Context, input FaturamentoListInput) (string, []domain.FaturamentoLinha, error) {
	mes, err := s.resolveMes(input.MesReferencia)
	if err != nil {
		return "", nil, err
	}
	linhas, err := s.faturamentos.List(ctx, repository.FaturamentoFilter{
		MesReferencia: mes,
		EmpresaID:     input.EmpresaID,
		Faturado:      input.Faturado,
		Limit:         -1,
	})
	if err != nil {
		return "", nil, apperrors.MapError(err)
	}
	return mes, linhas, nil
}

func (s *FaturamentoService) resolveMes(mesReferencia *string) (string, error) {
	if mesReferencia == nil || *mesReferencia == "" {
		return domain.MesReferenciaAtual(s.now()), nil
	}
	if !domain.ValidMesReferencia(*mesReferencia) {
		return "", apperrors.NewValidationError("Mês de referência inválido. Use AAAA-MM", nil)
	}
	return *mesReferencia, nil
}

func (s *FaturamentoService) applyFaturadoTransition(f *domain.Faturamento, faturadoInicial bool) {
	switch {
	case f.Faturado && !faturadoInicial:
		now := s.now().UTC()
		f.DataFaturacao = &now
	case !f.Faturado:
		f.DataFaturacao = nil
	}
}

func (s *FaturamentoService) publishBilled(ctx context.Context, f *domain.Faturamento) {
	s.publishEvent(ctx, events.Event{
		Type: events.EventFaturamentoBilled,
		Payload: events.FaturamentoBilledPayload{
			FaturamentoID:    f.ID,
			TicketID:         f.TicketID,
			MesReferencia:    f.MesReferencia,
			Valor:            f.Valor.StringFixed(2),
			NumeroNotaFiscal: f.NumeroNotaFiscal,
		},
	})
}

func (s *FaturamentoService) publishEvent(ctx context.Context, event events.Event) {
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

func normalizeDescricao(descricao *string) *string {
	if descricao == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*descricao)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
