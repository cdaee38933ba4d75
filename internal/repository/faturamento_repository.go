package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// FaturamentoFilter captures listing/export parameters. MesReferencia is
// always set by the service (defaulting to the current month).
type FaturamentoFilter struct {
	MesReferencia string
	EmpresaID     *string
	Faturado      *bool
	Limit         int
	Offset        int
}

// FaturamentoRepository encapsulates invoice persistence.
type FaturamentoRepository interface {
	Create(ctx context.Context, faturamento *domain.Faturamento) error
	Update(ctx context.Context, faturamento *domain.Faturamento) error
	GetByID(ctx context.Context, id string) (*domain.Faturamento, error)
	GetActiveByTicket(ctx context.Context, ticketID string) (*domain.Faturamento, error)
	SoftDelete(ctx context.Context, id string) error
	Resumo(ctx context.Context, mesReferencia string, empresaID *string) (*domain.FaturamentoResumo, error)
	List(ctx context.Context, filter FaturamentoFilter) ([]domain.FaturamentoLinha, error)
	SumFaturadoMes(ctx context.Context, mesReferencia string) (decimal.Decimal, error)
	SumFaturadoAno(ctx context.Context, ano string) (decimal.Decimal, error)
}

type faturamentoRepository struct {
	pool *pgxpool.Pool
}

// NewFaturamentoRepository instantiates repository.
func NewFaturamentoRepository(pool *pgxpool.Pool) FaturamentoRepository {
	return &faturamentoRepository{pool: pool}
}

const faturamentoColumns = `id, ticket_id, empresa_id, valor::text, descricao, mes_referencia,
               data_faturamento, faturado, data_faturacao, numero_nota_fiscal, ativo,
               data_criacao, data_atualizacao`

func (r *faturamentoRepository) Create(ctx context.Context, f *domain.Faturamento) error {
	const query = `
        INSERT INTO faturamento (ticket_id, empresa_id, valor, descricao, mes_referencia,
            data_faturamento, faturado, data_faturacao, numero_nota_fiscal)
        VALUES ($1,$2,$3::numeric,$4,$5,$6,$7,$8,$9)
        RETURNING id, ativo, data_criacao, data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		f.TicketID,
		f.EmpresaID,
		f.Valor.StringFixed(2),
		f.Descricao,
		f.MesReferencia,
		f.DataFaturamento,
		f.Faturado,
		f.DataFaturacao,
		f.NumeroNotaFiscal,
	).Scan(&f.ID, &f.Ativo, &f.DataCriacao, &f.DataAtualizacao)
}

func (r *faturamentoRepository) Update(ctx context.Context, f *domain.Faturamento) error {
	const query = `
        UPDATE faturamento SET valor=$1::numeric, descricao=$2, mes_referencia=$3, faturado=$4,
            data_faturacao=$5, numero_nota_fiscal=$6, data_atualizacao=NOW()
        WHERE id=$7 AND ativo = TRUE
        RETURNING data_atualizacao`
	return r.pool.QueryRow(ctx, query,
		f.Valor.StringFixed(2),
		f.Descricao,
		f.MesReferencia,
		f.Faturado,
		f.DataFaturacao,
		f.NumeroNotaFiscal,
		f.ID,
	).Scan(&f.DataAtualizacao)
}

func (r *faturamentoRepository) GetByID(ctx context.Context, id string) (*domain.Faturamento, error) {
	query := fmt.Sprintf(`SELECT %s FROM faturamento WHERE id=$1 AND ativo = TRUE`, faturamentoColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *faturamentoRepository) GetActiveByTicket(ctx context.Context, ticketID string) (*domain.Faturamento, error) {
	query := fmt.Sprintf(`SELECT %s FROM faturamento WHERE ticket_id=$1 AND ativo = TRUE`, faturamentoColumns)
	return r.fetchSingle(ctx, query, ticketID)
}

func (r *faturamentoRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Faturamento, error) {
	var f domain.Faturamento
	var valor string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&f.ID,
		&f.TicketID,
		&f.EmpresaID,
		&valor,
		&f.Descricao,
		&f.MesReferencia,
		&f.DataFaturamento,
		&f.Faturado,
		&f.DataFaturacao,
		&f.NumeroNotaFiscal,
		&f.Ativo,
		&f.DataCriacao,
		&f.DataAtualizacao,
	); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(valor)
	if err != nil {
		return nil, fmt.Errorf("parse valor: %w", err)
	}
	f.Valor = parsed
	return &f, nil
}

func (r *faturamentoRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE faturamento SET ativo = FALSE, data_atualizacao=NOW()
        WHERE id=$1 AND ativo = TRUE
        RETURNING id`
	var deleted string
	return r.pool.QueryRow(ctx, query, id).Scan(&deleted)
}

// Resumo aggregates active invoices of one period in SQL; sums are moved as
// text so decimal precision survives the driver round trip.
func (r *faturamentoRepository) Resumo(ctx context.Context, mesReferencia string, empresaID *string) (*domain.FaturamentoResumo, error) {
	query := `
        SELECT COUNT(id),
               COALESCE(SUM(CASE WHEN NOT faturado THEN valor ELSE 0 END), 0)::text,
               COALESCE(SUM(CASE WHEN faturado THEN valor ELSE 0 END), 0)::text,
               COALESCE(SUM(valor), 0)::text
        FROM faturamento
        WHERE ativo = TRUE AND mes_referencia = $1`
	args := []any{mesReferencia}
	if empresaID != nil {
		args = append(args, *empresaID)
		query += " AND empresa_id = $2"
	}

	var (
		count                     int
		pendente, faturado, total string
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count, &pendente, &faturado, &total); err != nil {
		return nil, err
	}

	resumo := &domain.FaturamentoResumo{
		MesReferencia:  mesReferencia,
		TotalRegistros: count,
	}
	var err error
	if resumo.SubtotalPendente, err = decimal.NewFromString(pendente); err != nil {
		return nil, fmt.Errorf("parse subtotal_pendente: %w", err)
	}
	if resumo.SubtotalFaturado, err = decimal.NewFromString(faturado); err != nil {
		return nil, fmt.Errorf("parse subtotal_faturado: %w", err)
	}
	if resumo.TotalGeral, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total_geral: %w", err)
	}
	return resumo, nil
}

// List joins invoices with ticket, company and category. The category join is
// a left join so a soft-deleted category shows as null instead of dropping the
// row.
func (r *faturamentoRepository) List(ctx context.Context, filter FaturamentoFilter) ([]domain.FaturamentoLinha, error) {
	clauses := []string{"f.ativo = TRUE"}
	args := []any{filter.MesReferencia}
	clauses = append(clauses, "f.mes_referencia=$1")

	if filter.EmpresaID != nil {
		args = append(args, *filter.EmpresaID)
		clauses = append(clauses, fmt.Sprintf("f.empresa_id=$%d", len(args)))
	}
	if filter.Faturado != nil {
		args = append(args, *filter.Faturado)
		clauses = append(clauses, fmt.Sprintf("f.faturado=$%d", len(args)))
	}

	// Limit < 0 means unbounded (exports); 0 falls back to the default page.
	paging := ""
	if filter.Limit >= 0 {
		limit := filter.Limit
		if limit == 0 {
			limit = 100
		}
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		paging = fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	query := fmt.Sprintf(`
        SELECT f.id, f.ticket_id, f.empresa_id, t.numero, t.titulo, t.descricao,
               c.nome, e.nome, t.data_criacao, f.valor::text, f.descricao,
               f.mes_referencia, f.faturado, f.data_faturacao, f.numero_nota_fiscal
        FROM faturamento f
        JOIN tickets t ON t.id = f.ticket_id
        JOIN empresas e ON e.id = f.empresa_id
        LEFT JOIN categorias_servico c ON c.id = t.categoria_id
        WHERE %s
        ORDER BY t.data_criacao DESC%s`, strings.Join(clauses, " AND "), paging)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FaturamentoLinha
	for rows.Next() {
		var linha domain.FaturamentoLinha
		var valor string
		if err := rows.Scan(
			&linha.ID,
			&linha.TicketID,
			&linha.EmpresaID,
			&linha.TicketNumero,
			&linha.TicketTitulo,
			&linha.TicketDescricao,
			&linha.CategoriaNome,
			&linha.EmpresaNome,
			&linha.DataTicket,
			&valor,
			&linha.Descricao,
			&linha.MesReferencia,
			&linha.Faturado,
			&linha.DataFaturacao,
			&linha.NumeroNotaFiscal,
		); err != nil {
			return nil, err
		}
		if linha.Valor, err = decimal.NewFromString(valor); err != nil {
			return nil, fmt.Errorf("parse valor: %w", err)
		}
		result = append(result, linha)
	}
	return result, rows.Err()
}

func (r *faturamentoRepository) SumFaturadoMes(ctx context.Context, mesReferencia string) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(valor), 0)::text FROM faturamento
        WHERE ativo = TRUE AND faturado = TRUE AND mes_referencia = $1`
	return r.scanSum(ctx, query, mesReferencia)
}

func (r *faturamentoRepository) SumFaturadoAno(ctx context.Context, ano string) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(valor), 0)::text FROM faturamento
        WHERE ativo = TRUE AND faturado = TRUE AND mes_referencia LIKE $1 || '-%'`
	return r.scanSum(ctx, query, ano)
}

func (r *faturamentoRepository) scanSum(ctx context.Context, query string, arg any) (decimal.Decimal, error) {
	var sum string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(sum)
}
