package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

func TestDashboardResumo(t *testing.T) {
	tickets := newFakeTicketRepo()
	faturamentos := newFakeFaturamentoRepo()
	ctx := context.Background()

	agora := time.Date(2026, 2, 22, 14, 0, 0, 0, time.UTC)
	tickets.now = func() time.Time { return agora }

	addTicket := func(status domain.TicketStatus) *domain.Ticket {
		ticket := &domain.Ticket{
			EmpresaID: "empresa-1",
			Titulo:    "Chamado de teste",
			Descricao: "Descrição detalhada do chamado.",
			Status:    status,
		}
		require.NoError(t, tickets.Create(ctx, ticket))
		return ticket
	}
	addTicket(domain.TicketStatusAberto)
	addTicket(domain.TicketStatusAberto)
	addTicket(domain.TicketStatusEmAndamento)
	addTicket(domain.TicketStatusResolvido)
	fechado := addTicket(domain.TicketStatusFechado)

	// A billed invoice in the current month plus one from an earlier month of
	// the same year.
	require.NoError(t, faturamentos.Create(ctx, &domain.Faturamento{
		TicketID:      fechado.ID,
		EmpresaID:     "empresa-1",
		Valor:         decimal.RequireFromString("250.75"),
		MesReferencia: "2026-02",
		Faturado:      true,
	}))
	require.NoError(t, faturamentos.Create(ctx, &domain.Faturamento{
		TicketID:      "ticket-antigo",
		EmpresaID:     "empresa-1",
		Valor:         decimal.RequireFromString("100.00"),
		MesReferencia: "2026-01",
		Faturado:      true,
	}))

	svc := NewDashboardService(tickets, faturamentos)
	svc.now = func() time.Time { return agora }

	resumo, err := svc.Resumo(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, resumo.TicketsAbertos)
	require.Equal(t, 1, resumo.TicketsEmAndamento)
	// Resolvido and fechado count together as closed work.
	require.Equal(t, 2, resumo.TicketsFechados)
	require.Equal(t, 5, resumo.TicketsHoje)
	require.True(t, resumo.FaturadoMes.Equal(decimal.RequireFromString("250.75")))
	require.True(t, resumo.FaturadoAno.Equal(decimal.RequireFromString("350.75")))
}
