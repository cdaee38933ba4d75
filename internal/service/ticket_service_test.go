package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/events"
	apperrors "github.com/gestao-tpt/helpdesk/pkg/util"
)

func newTicketFixture(t *testing.T) (*TicketService, *fakeTicketRepo, *captureDispatcher, *domain.Empresa, *domain.Contato, *domain.CategoriaServico) {
	t.Helper()

	tickets := newFakeTicketRepo()
	empresas := newFakeEmpresaRepo()
	contatos := newFakeContatoRepo()
	categorias := newFakeCategoriaRepo()
	dispatcher := &captureDispatcher{}

	empresa := empresas.add("Acme Ltda")
	contato := contatos.add(empresa.ID, "João Silva")
	categoria := categorias.add("Suporte Remoto")

	svc := NewTicketService(TicketDependencies{
		TicketRepo:    tickets,
		EmpresaRepo:   empresas,
		ContatoRepo:   contatos,
		CategoriaRepo: categorias,
		Dispatcher:    dispatcher,
	})
	return svc, tickets, dispatcher, empresa, contato, categoria
}

func validTicketInput(empresa *domain.Empresa, contato *domain.Contato, categoria *domain.CategoriaServico) TicketCreateInput {
	return TicketCreateInput{
		EmpresaID:   empresa.ID,
		ContatoID:   contato.ID,
		CategoriaID: categoria.ID,
		Titulo:      "Impressora sem rede",
		Descricao:   "A impressora do financeiro parou de responder na rede.",
	}
}

func TestTicketCriar(t *testing.T) {
	svc, tickets, dispatcher, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusAberto, ticket.Status)
	require.NotEmpty(t, ticket.Numero)
	require.Nil(t, ticket.DataFechamento)
	require.Len(t, tickets.tickets, 1)
	require.Equal(t, []events.EventType{events.EventTicketCreated}, dispatcher.types())
}

func TestTicketCriarNumeroSequencial(t *testing.T) {
	svc, tickets, _, empresa, contato, categoria := newTicketFixture(t)
	data := time.Date(2026, 2, 22, 10, 0, 0, 0, time.UTC)
	tickets.now = func() time.Time { return data }
	ctx := context.Background()

	primeiro, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)
	segundo, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	require.Equal(t, "TPT-20260222-001", primeiro.Numero)
	require.Equal(t, "TPT-20260222-002", segundo.Numero)
}

func TestTicketCriarReferenciasInvalidas(t *testing.T) {
	svc, _, _, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*TicketCreateInput)
	}{
		{name: "empresa inexistente", mutate: func(in *TicketCreateInput) { in.EmpresaID = "nao-existe" }},
		{name: "contato inexistente", mutate: func(in *TicketCreateInput) { in.ContatoID = "nao-existe" }},
		{name: "categoria inexistente", mutate: func(in *TicketCreateInput) { in.CategoriaID = "nao-existe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTicketInput(empresa, contato, categoria)
			tt.mutate(&input)
			_, err := svc.Criar(ctx, input)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
		})
	}
}

func TestTicketMudarStatus(t *testing.T) {
	svc, _, dispatcher, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	ticket, err = svc.MudarStatus(ctx, ticket.ID, domain.TicketStatusFechado)
	require.NoError(t, err)
	require.NotNil(t, ticket.DataFechamento)

	// Reopening clears the closure timestamp.
	ticket, err = svc.MudarStatus(ctx, ticket.ID, domain.TicketStatusEmAndamento)
	require.NoError(t, err)
	require.Nil(t, ticket.DataFechamento)

	require.Equal(t, []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketStatusChanged,
	}, dispatcher.types())
}

func TestTicketMudarStatusInvalido(t *testing.T) {
	svc, _, _, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	_, err = svc.MudarStatus(ctx, ticket.ID, domain.TicketStatus("cancelado"))
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestTicketFechar(t *testing.T) {
	svc, tickets, dispatcher, empresa, contato, categoria := newTicketFixture(t)
	fechamento := time.Date(2026, 2, 22, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fechamento }
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	horas := 2.5
	ticket, err = svc.Fechar(ctx, ticket.ID, "Driver reinstalado e fila de impressão limpa.", &horas)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusFechado, ticket.Status)
	require.NotNil(t, ticket.SolucaoDescricao)
	require.Equal(t, "Driver reinstalado e fila de impressão limpa.", *ticket.SolucaoDescricao)
	require.NotNil(t, ticket.DataFechamento)
	require.Equal(t, fechamento, *ticket.DataFechamento)

	stored, err := tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusFechado, stored.Status)

	require.Contains(t, dispatcher.types(), events.EventTicketClosed)
}

func TestTicketFecharJaFechado(t *testing.T) {
	svc, _, _, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	_, err = svc.Fechar(ctx, ticket.ID, "Resolvido na primeira visita.", nil)
	require.NoError(t, err)

	_, err = svc.Fechar(ctx, ticket.ID, "Tentativa repetida de fechamento.", nil)
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestTicketFecharSemSolucao(t *testing.T) {
	svc, _, _, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	_, err = svc.Fechar(ctx, ticket.ID, "   ", nil)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestTicketAtualizarPatchParcial(t *testing.T) {
	svc, _, _, empresa, contato, categoria := newTicketFixture(t)
	ctx := context.Background()

	ticket, err := svc.Criar(ctx, validTicketInput(empresa, contato, categoria))
	require.NoError(t, err)

	novoTitulo := "Impressora do financeiro offline"
	ticket, err = svc.Atualizar(ctx, ticket.ID, TicketPatch{Titulo: &novoTitulo})
	require.NoError(t, err)
	require.Equal(t, novoTitulo, ticket.Titulo)
	// Untouched fields keep their values.
	require.Equal(t, "A impressora do financeiro parou de responder na rede.", ticket.Descricao)

	status := domain.TicketStatusFechado
	ticket, err = svc.Atualizar(ctx, ticket.ID, TicketPatch{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, ticket.DataFechamento)
}

func TestTicketObterInexistente(t *testing.T) {
	svc, _, _, _, _, _ := newTicketFixture(t)

	_, err := svc.Obter(context.Background(), "nao-existe")
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestTicketListarStatusInvalido(t *testing.T) {
	svc, _, _, _, _, _ := newTicketFixture(t)

	status := domain.TicketStatus("pendente")
	_, err := svc.Listar(context.Background(), TicketListInput{Status: &status})
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestTicketCriarFalhaDeEscrita(t *testing.T) {
	svc, tickets, dispatcher, empresa, contato, categoria := newTicketFixture(t)
	tickets.createErr = errors.New("connection reset")

	_, err := svc.Criar(context.Background(), validTicketInput(empresa, contato, categoria))
	require.True(t, apperrors.IsCode(err, "INTERNAL_ERROR"), "got %v", err)
	require.Empty(t, dispatcher.types())
}
