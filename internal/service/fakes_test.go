package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/events"
	"github.com/gestao-tpt/helpdesk/internal/repository"
)

// In-memory repositories for service tests. Getters return copies so the
// services must go through Update for changes to stick, mirroring the real
// store.

type fakeTicketRepo struct {
	tickets   map[string]*domain.Ticket
	seq       int
	createErr error
	now       func() time.Time
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}, now: time.Now}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	ticket.Numero = fmt.Sprintf("%s%03d", domain.TicketNumeroPrefixForDate(r.now().UTC()), r.seq)
	ticket.Ativo = true
	ticket.DataCriacao = r.now().UTC()
	ticket.DataAtualizacao = ticket.DataCriacao
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.tickets[ticket.ID]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	ticket.DataAtualizacao = r.now().UTC()
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	stored, ok := r.tickets[id]
	if !ok || !stored.Ativo {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, t := range r.tickets {
		if !t.Ativo {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.EmpresaID != nil && t.EmpresaID != *filter.EmpresaID {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context, statuses ...domain.TicketStatus) (int, error) {
	count := 0
	for _, t := range r.tickets {
		if !t.Ativo {
			continue
		}
		for _, s := range statuses {
			if t.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	count := 0
	for _, t := range r.tickets {
		if t.Ativo && !t.DataCriacao.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeFaturamentoRepo struct {
	faturamentos map[string]*domain.Faturamento
	seq          int
	createErr    error
	now          func() time.Time
}

func newFakeFaturamentoRepo() *fakeFaturamentoRepo {
	return &fakeFaturamentoRepo{faturamentos: map[string]*domain.Faturamento{}, now: time.Now}
}

func (r *fakeFaturamentoRepo) Create(_ context.Context, f *domain.Faturamento) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	f.ID = fmt.Sprintf("fat-%d", r.seq)
	f.Ativo = true
	f.DataCriacao = r.now().UTC()
	f.DataAtualizacao = f.DataCriacao
	clone := *f
	r.faturamentos[f.ID] = &clone
	return nil
}

func (r *fakeFaturamentoRepo) Update(_ context.Context, f *domain.Faturamento) error {
	stored, ok := r.faturamentos[f.ID]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	f.DataAtualizacao = r.now().UTC()
	clone := *f
	r.faturamentos[f.ID] = &clone
	return nil
}

func (r *fakeFaturamentoRepo) GetByID(_ context.Context, id string) (*domain.Faturamento, error) {
	stored, ok := r.faturamentos[id]
	if !ok || !stored.Ativo {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeFaturamentoRepo) GetActiveByTicket(_ context.Context, ticketID string) (*domain.Faturamento, error) {
	for _, f := range r.faturamentos {
		if f.Ativo && f.TicketID == ticketID {
			clone := *f
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeFaturamentoRepo) SoftDelete(_ context.Context, id string) error {
	stored, ok := r.faturamentos[id]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	stored.Ativo = false
	return nil
}

func (r *fakeFaturamentoRepo) Resumo(_ context.Context, mesReferencia string, empresaID *string) (*domain.FaturamentoResumo, error) {
	resumo := &domain.FaturamentoResumo{
		MesReferencia:    mesReferencia,
		SubtotalPendente: decimal.Zero,
		SubtotalFaturado: decimal.Zero,
		TotalGeral:       decimal.Zero,
	}
	for _, f := range r.faturamentos {
		if !f.Ativo || f.MesReferencia != mesReferencia {
			continue
		}
		if empresaID != nil && f.EmpresaID != *empresaID {
			continue
		}
		resumo.TotalRegistros++
		resumo.TotalGeral = resumo.TotalGeral.Add(f.Valor)
		if f.Faturado {
			resumo.SubtotalFaturado = resumo.SubtotalFaturado.Add(f.Valor)
		} else {
			resumo.SubtotalPendente = resumo.SubtotalPendente.Add(f.Valor)
		}
	}
	return resumo, nil
}

func (r *fakeFaturamentoRepo) List(_ context.Context, filter repository.FaturamentoFilter) ([]domain.FaturamentoLinha, error) {
	var result []domain.FaturamentoLinha
	for _, f := range r.faturamentos {
		if !f.Ativo || f.MesReferencia != filter.MesReferencia {
			continue
		}
		if filter.EmpresaID != nil && f.EmpresaID != *filter.EmpresaID {
			continue
		}
		if filter.Faturado != nil && f.Faturado != *filter.Faturado {
			continue
		}
		result = append(result, domain.FaturamentoLinha{
			ID:            f.ID,
			TicketID:      f.TicketID,
			EmpresaID:     f.EmpresaID,
			Valor:         f.Valor,
			MesReferencia: f.MesReferencia,
			Faturado:      f.Faturado,
			DataFaturacao: f.DataFaturacao,
		})
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeFaturamentoRepo) SumFaturadoMes(_ context.Context, mesReferencia string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, f := range r.faturamentos {
		if f.Ativo && f.Faturado && f.MesReferencia == mesReferencia {
			total = total.Add(f.Valor)
		}
	}
	return total, nil
}

func (r *fakeFaturamentoRepo) SumFaturadoAno(_ context.Context, ano string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, f := range r.faturamentos {
		if f.Ativo && f.Faturado && strings.HasPrefix(f.MesReferencia, ano+"-") {
			total = total.Add(f.Valor)
		}
	}
	return total, nil
}

type fakeEmpresaRepo struct {
	empresas map[string]*domain.Empresa
	seq      int
}

func newFakeEmpresaRepo() *fakeEmpresaRepo {
	return &fakeEmpresaRepo{empresas: map[string]*domain.Empresa{}}
}

func (r *fakeEmpresaRepo) add(nome string) *domain.Empresa {
	r.seq++
	empresa := &domain.Empresa{ID: fmt.Sprintf("empresa-%d", r.seq), Nome: nome, Ativo: true}
	r.empresas[empresa.ID] = empresa
	return empresa
}

func (r *fakeEmpresaRepo) Create(_ context.Context, empresa *domain.Empresa) error {
	r.seq++
	empresa.ID = fmt.Sprintf("empresa-%d", r.seq)
	empresa.Ativo = true
	clone := *empresa
	r.empresas[empresa.ID] = &clone
	return nil
}

func (r *fakeEmpresaRepo) Update(_ context.Context, empresa *domain.Empresa) error {
	stored, ok := r.empresas[empresa.ID]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	clone := *empresa
	r.empresas[empresa.ID] = &clone
	return nil
}

func (r *fakeEmpresaRepo) GetByID(_ context.Context, id string) (*domain.Empresa, error) {
	stored, ok := r.empresas[id]
	if !ok || !stored.Ativo {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeEmpresaRepo) GetByCNPJ(_ context.Context, cnpj string) (*domain.Empresa, error) {
	for _, e := range r.empresas {
		if e.Ativo && e.CNPJ != nil && *e.CNPJ == cnpj {
			clone := *e
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmpresaRepo) List(_ context.Context, _, _ int) ([]domain.Empresa, error) {
	var result []domain.Empresa
	for _, e := range r.empresas {
		if e.Ativo {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *fakeEmpresaRepo) SoftDelete(_ context.Context, id string) error {
	stored, ok := r.empresas[id]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	stored.Ativo = false
	return nil
}

type fakeContatoRepo struct {
	contatos map[string]*domain.Contato
	seq      int
}

func newFakeContatoRepo() *fakeContatoRepo {
	return &fakeContatoRepo{contatos: map[string]*domain.Contato{}}
}

func (r *fakeContatoRepo) add(empresaID, nome string) *domain.Contato {
	r.seq++
	contato := &domain.Contato{ID: fmt.Sprintf("contato-%d", r.seq), EmpresaID: empresaID, Nome: nome, Ativo: true}
	r.contatos[contato.ID] = contato
	return contato
}

func (r *fakeContatoRepo) Create(_ context.Context, contato *domain.Contato) error {
	r.seq++
	contato.ID = fmt.Sprintf("contato-%d", r.seq)
	contato.Ativo = true
	clone := *contato
	r.contatos[contato.ID] = &clone
	return nil
}

func (r *fakeContatoRepo) Update(_ context.Context, contato *domain.Contato) error {
	stored, ok := r.contatos[contato.ID]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	clone := *contato
	r.contatos[contato.ID] = &clone
	return nil
}

func (r *fakeContatoRepo) GetByID(_ context.Context, id string) (*domain.Contato, error) {
	stored, ok := r.contatos[id]
	if !ok || !stored.Ativo {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeContatoRepo) List(_ context.Context, empresaID *string, _, _ int) ([]domain.Contato, error) {
	var result []domain.Contato
	for _, c := range r.contatos {
		if !c.Ativo {
			continue
		}
		if empresaID != nil && c.EmpresaID != *empresaID {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeContatoRepo) SoftDelete(_ context.Context, id string) error {
	stored, ok := r.contatos[id]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	stored.Ativo = false
	return nil
}

type fakeCategoriaRepo struct {
	categorias map[string]*domain.CategoriaServico
	seq        int
}

func newFakeCategoriaRepo() *fakeCategoriaRepo {
	return &fakeCategoriaRepo{categorias: map[string]*domain.CategoriaServico{}}
}

func (r *fakeCategoriaRepo) add(nome string) *domain.CategoriaServico {
	r.seq++
	categoria := &domain.CategoriaServico{ID: fmt.Sprintf("categoria-%d", r.seq), Nome: nome, Ativo: true}
	r.categorias[categoria.ID] = categoria
	return categoria
}

func (r *fakeCategoriaRepo) Create(_ context.Context, categoria *domain.CategoriaServico) error {
	r.seq++
	categoria.ID = fmt.Sprintf("categoria-%d", r.seq)
	categoria.Ativo = true
	clone := *categoria
	r.categorias[categoria.ID] = &clone
	return nil
}

func (r *fakeCategoriaRepo) Update(_ context.Context, categoria *domain.CategoriaServico) error {
	stored, ok := r.categorias[categoria.ID]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	clone := *categoria
	r.categorias[categoria.ID] = &clone
	return nil
}

func (r *fakeCategoriaRepo) GetByID(_ context.Context, id string) (*domain.CategoriaServico, error) {
	stored, ok := r.categorias[id]
	if !ok || !stored.Ativo {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeCategoriaRepo) GetByNome(_ context.Context, nome string) (*domain.CategoriaServico, error) {
	// Name matches ignore ativo, mirroring the hard unique constraint.
	for _, c := range r.categorias {
		if c.Nome == nome {
			clone := *c
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoriaRepo) ListActive(_ context.Context) ([]domain.CategoriaServico, error) {
	var result []domain.CategoriaServico
	for _, c := range r.categorias {
		if c.Ativo {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeCategoriaRepo) SoftDelete(_ context.Context, id string) error {
	stored, ok := r.categorias[id]
	if !ok || !stored.Ativo {
		return pgx.ErrNoRows
	}
	stored.Ativo = false
	return nil
}

type fakeUsuarioRepo struct {
	usuarios map[string]*domain.Usuario
	seq      int
	touched  []string
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: map[string]*domain.Usuario{}}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, usuario *domain.Usuario) error {
	r.seq++
	usuario.ID = fmt.Sprintf("usuario-%d", r.seq)
	usuario.Ativo = true
	clone := *usuario
	r.usuarios[usuario.ID] = &clone
	return nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*domain.Usuario, error) {
	stored, ok := r.usuarios[id]
	if !ok || !stored.Ativo {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*domain.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Ativo && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUsuarioRepo) TouchUltimoAcesso(_ context.Context, id string, at time.Time) error {
	if stored, ok := r.usuarios[id]; ok {
		stored.UltimoAcesso = &at
	}
	r.touched = append(r.touched, id)
	return nil
}

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) types() []events.EventType {
	result := make([]events.EventType, len(d.published))
	for i, e := range d.published {
		result[i] = e.Type
	}
	return result
}
