package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/events"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

type faturamentoFixture struct {
	svc          *FaturamentoService
	faturamentos *fakeFaturamentoRepo
	tickets      *fakeTicketRepo
	dispatcher   *captureDispatcher
	empresa      *domain.Empresa
	ticket       *domain.Ticket
}

func newFaturamentoFixture(t *testing.T) *faturamentoFixture {
	t.Helper()

	tickets := newFakeTicketRepo()
	empresas := newFakeEmpresaRepo()
	faturamentos := newFakeFaturamentoRepo()
	dispatcher := &captureDispatcher{}

	empresa := empresas.add("Acme Ltda")
	ticket := &domain.Ticket{
		EmpresaID:   empresa.ID,
		ContatoID:   "contato-1",
		CategoriaID: "categoria-1",
		Titulo:      "Troca de switch",
		Descricao:   "Substituição do switch do rack principal.",
		Status:      domain.TicketStatusResolvido,
	}
	require.NoError(t, tickets.Create(context.Background(), ticket))

	svc := NewFaturamentoService(FaturamentoDependencies{
		FaturamentoRepo: faturamentos,
		TicketRepo:      tickets,
		EmpresaRepo:     empresas,
		Dispatcher:      dispatcher,
	})
	return &faturamentoFixture{
		svc:          svc,
		faturamentos: faturamentos,
		tickets:      tickets,
		dispatcher:   dispatcher,
		empresa:      empresa,
		ticket:       ticket,
	}
}

func (f *faturamentoFixture) validInput() FaturamentoCreateInput {
	return FaturamentoCreateInput{
		TicketID:      f.ticket.ID,
		EmpresaID:     f.empresa.ID,
		Valor:         decimal.RequireFromString("250.75"),
		MesReferencia: "2026-02",
	}
}

func TestFaturamentoCriar(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	faturamento, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)
	require.False(t, faturamento.Faturado)
	require.Nil(t, faturamento.DataFaturacao)
	require.NotNil(t, faturamento.DataFaturamento)
	require.True(t, faturamento.Valor.Equal(decimal.RequireFromString("250.75")))
	require.Equal(t, []events.EventType{events.EventFaturamentoCreated}, f.dispatcher.types())
}

func TestFaturamentoCriarJaFaturado(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	input := f.validInput()
	input.Faturado = true
	faturamento, err := f.svc.Criar(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, faturamento.DataFaturacao)
	require.Contains(t, f.dispatcher.types(), events.EventFaturamentoBilled)
}

func TestFaturamentoCriarValidacoes(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(*FaturamentoCreateInput)
		wantCode string
	}{
		{
			name:     "valor zero",
			mutate:   func(in *FaturamentoCreateInput) { in.Valor = decimal.Zero },
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "valor negativo",
			mutate:   func(in *FaturamentoCreateInput) { in.Valor = decimal.RequireFromString("-10") },
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "mes malformado",
			mutate:   func(in *FaturamentoCreateInput) { in.MesReferencia = "02/2026" },
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "ticket inexistente",
			mutate:   func(in *FaturamentoCreateInput) { in.TicketID = "nao-existe" },
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "empresa divergente do ticket",
			mutate:   func(in *FaturamentoCreateInput) { in.EmpresaID = "outra-empresa" },
			wantCode: "VALIDATION_FAILED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.validInput()
			tt.mutate(&input)
			_, err := f.svc.Criar(ctx, input)
			require.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestFaturamentoCriarDuplicadoMesmoTicket(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	_, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)

	_, err = f.svc.Criar(ctx, f.validInput())
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestFaturamentoExcluirLiberaTicket(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	faturamento, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.Excluir(ctx, faturamento.ID))

	// The soft-deleted invoice no longer blocks a new one for the ticket.
	novo, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)
	require.NotEqual(t, faturamento.ID, novo.ID)
}

func TestFaturamentoTransicaoFaturado(t *testing.T) {
	f := newFaturamentoFixture(t)
	momento := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return momento }
	ctx := context.Background()

	faturamento, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)

	// false -> true stamps the billing timestamp.
	nota := "NF-123"
	faturamento, err = f.svc.AtualizarStatus(ctx, faturamento.ID, true, &nota)
	require.NoError(t, err)
	require.True(t, faturamento.Faturado)
	require.NotNil(t, faturamento.DataFaturacao)
	require.Equal(t, momento, *faturamento.DataFaturacao)

	// true -> true keeps the original timestamp.
	depois := momento.Add(48 * time.Hour)
	f.svc.now = func() time.Time { return depois }
	faturamento, err = f.svc.AtualizarStatus(ctx, faturamento.ID, true, &nota)
	require.NoError(t, err)
	require.Equal(t, momento, *faturamento.DataFaturacao)

	// true -> false clears the timestamp.
	faturamento, err = f.svc.AtualizarStatus(ctx, faturamento.ID, false, nil)
	require.NoError(t, err)
	require.False(t, faturamento.Faturado)
	require.Nil(t, faturamento.DataFaturacao)
}

func TestFaturamentoBilledEventUmaVez(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	faturamento, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)

	_, err = f.svc.AtualizarStatus(ctx, faturamento.ID, true, nil)
	require.NoError(t, err)
	_, err = f.svc.AtualizarStatus(ctx, faturamento.ID, true, nil)
	require.NoError(t, err)

	billed := 0
	for _, typ := range f.dispatcher.types() {
		if typ == events.EventFaturamentoBilled {
			billed++
		}
	}
	require.Equal(t, 1, billed)
}

func TestFaturamentoAtualizarPatch(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	faturamento, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)

	valor := decimal.RequireFromString("300.00")
	faturado := true
	faturamento, err = f.svc.Atualizar(ctx, faturamento.ID, FaturamentoPatch{
		Valor:    &valor,
		Faturado: &faturado,
	})
	require.NoError(t, err)
	require.True(t, faturamento.Valor.Equal(valor))
	require.True(t, faturamento.Faturado)
	require.NotNil(t, faturamento.DataFaturacao)
	require.Equal(t, "2026-02", faturamento.MesReferencia)
}

func TestFaturamentoResumo(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	primeiro, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)
	_, err = f.svc.AtualizarStatus(ctx, primeiro.ID, true, nil)
	require.NoError(t, err)

	outroTicket := &domain.Ticket{
		EmpresaID: f.empresa.ID,
		Titulo:    "Backup mensal",
		Descricao: "Verificação da rotina de backup.",
		Status:    domain.TicketStatusResolvido,
	}
	require.NoError(t, f.tickets.Create(ctx, outroTicket))
	input := f.validInput()
	input.TicketID = outroTicket.ID
	input.Valor = decimal.RequireFromString("100.25")
	_, err = f.svc.Criar(ctx, input)
	require.NoError(t, err)

	mes := "2026-02"
	resumo, err := f.svc.Resumo(ctx, &mes, nil)
	require.NoError(t, err)
	require.Equal(t, 2, resumo.TotalRegistros)
	require.True(t, resumo.SubtotalFaturado.Equal(decimal.RequireFromString("250.75")))
	require.True(t, resumo.SubtotalPendente.Equal(decimal.RequireFromString("100.25")))
	require.True(t, resumo.TotalGeral.Equal(decimal.RequireFromString("351.00")))
	require.True(t, resumo.SubtotalPendente.Add(resumo.SubtotalFaturado).Equal(resumo.TotalGeral))
}

func TestFaturamentoResumoMesPadrao(t *testing.T) {
	f := newFaturamentoFixture(t)
	f.svc.now = func() time.Time { return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) }

	resumo, err := f.svc.Resumo(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "2026-02", resumo.MesReferencia)
	require.Zero(t, resumo.TotalRegistros)
}

func TestFaturamentoResumoMesInvalido(t *testing.T) {
	f := newFaturamentoFixture(t)

	mes := "2026-2"
	_, err := f.svc.Resumo(context.Background(), &mes, nil)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestFaturamentoLinhasParaExport(t *testing.T) {
	f := newFaturamentoFixture(t)
	ctx := context.Background()

	_, err := f.svc.Criar(ctx, f.validInput())
	require.NoError(t, err)

	mes := "2026-02"
	resolvido, linhas, err := f.svc.LinhasParaExport(ctx, FaturamentoListInput{MesReferencia: &mes})
	require.NoError(t, err)
	require.Equal(t, "2026-02", resolvido)
	require.Len(t, linhas, 1)
}

func TestFaturamentoCriarPerdeCorridaPeloIndice(t *testing.T) {
	f := newFaturamentoFixture(t)
	f.faturamentos.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "ux_faturamento_ticket_ativo"}

	_, err := f.svc.Criar(context.Background(), f.validInput())
	require.True(t, apperrors.IsCode(err, "CONFLICT"), "got %v", err)
	require.Empty(t, f.dispatcher.types())
}
