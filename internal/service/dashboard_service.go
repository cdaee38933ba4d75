package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/repository"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

// DashboardService aggregates the operational counters shown on the home
// screen.
type DashboardService struct {
	tickets     repository.TicketRepository
	faturamento repository.FaturamentoRepository
	now         func() time.Time
}

// DashboardResumo carries the aggregated counters. Fechados includes
// resolvido tickets since both are terminal from the operator's point of view.
type DashboardResumo struct {
	TicketsAbertos     int             `json:"tickets_abertos"`
	TicketsEmAndamento int             `json:"tickets_em_andamento"`
	TicketsFechados    int             `json:"tickets_fechados"`
	TicketsHoje        int             `json:"tickets_hoje"`
	FaturadoMes        decimal.Decimal `json:"faturado_mes"`
	FaturadoAno        decimal.Decimal `json:"faturado_ano"`
}

// NewDashboardService constructs the service.
func NewDashboardService(tickets repository.TicketRepository, faturamento repository.FaturamentoRepository) *DashboardService {
	return &DashboardService{tickets: tickets, faturamento: faturamento, now: time.Now}
}

// Resumo computes the dashboard counters for the current day, month and year
// in UTC.
func (s *DashboardService) Resumo(ctx context.Context) (*DashboardResumo, error) {
	now := s.now().UTC()

	abertos, err := s.tickets.CountByStatus(ctx, domain.TicketStatusAberto)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	emAndamento, err := s.tickets.CountByStatus(ctx, domain.TicketStatusEmAndamento)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	fechados, err := s.tickets.CountByStatus(ctx, domain.TicketStatusResolvido, domain.TicketStatusFechado)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	inicioDia := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	hoje, err := s.tickets.CountCreatedSince(ctx, inicioDia)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	faturadoMes, err := s.faturamento.SumFaturadoMes(ctx, domain.MesReferenciaAtual(now))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	faturadoAno, err := s.faturamento.SumFaturadoAno(ctx, now.Format("2006"))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DashboardResumo{
		TicketsAbertos:     abertos,
		TicketsEmAndamento: emAndamento,
		TicketsFechados:    fechados,
		TicketsHoje:        hoje,
		FaturadoMes:        faturadoMes,
		FaturadoAno:        faturadoAno,
	}, nil
}
