package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// numeroRetries bounds the recompute loop when two concurrent creations race
// for the same sequence and one loses on ux_tickets_numero.
const numeroRetries = 3

// TicketFilter captures listing parameters.
type TicketFilter struct {
	Status    *domain.TicketStatus
	EmpresaID *string
	Limit     int
	Offset    int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, statuses ...domain.TicketStatus) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time

	// attempt performs one numero computation plus insert; tests swap it to
	// simulate a rival writer taking the numero between lookup and insert.
	attempt func(ctx context.Context, ticket *domain.Ticket) error
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	r := &ticketRepository{pool: pool, now: time.Now}
	r.attempt = r.createOnce
	return r
}

const ticketColumns = `id, numero, empresa_id, contato_id, categoria_id, titulo, descricao,
               status, solucao_descricao, tempo_gasto_horas, data_fechamento, ativo,
               data_criacao, data_atualizacao`

// Create assigns the next date-scoped numero and inserts the ticket in one
// transaction. The read of the greatest existing numero is serialized with a
// row lock; the first ticket of a day has no row to lock, so the unique index
// on numero closes that window and the whole computation retries.
func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	var lastErr error
	for attempt := 0; attempt < numeroRetries; attempt++ {
		err := r.attempt(ctx, ticket)
		if err == nil {
			return nil
		}
		if !IsUniqueViolation(err, "ux_tickets_numero") {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("numero generation exhausted retries: %w", lastErr)
}

func (r *ticketRepository) createOnce(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	date := r.now()
	prefix := domain.TicketNumeroPrefixForDate(date)

	// length before value: a widened suffix (1000) must sort above 999.
	const lastQuery = `
        SELECT numero FROM tickets WHERE numero LIKE $1 || '%'
        ORDER BY length(numero) DESC, numero DESC
        LIMIT 1
        FOR UPDATE`
	var last string
	if err := tx.QueryRow(ctx, lastQuery, prefix).Scan(&last); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		last = ""
	}

	numero, err := domain.NextTicketNumero(last, date)
	if err != nil {
		return err
	}

	const insertQuery = `
        INSERT INTO tickets (numero, empresa_id, contato_id, categoria_id, titulo, descricao, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, ativo, data_criacao, data_atualizacao`
	if err := tx.QueryRow(ctx, insertQuery,
		numero,
		ticket.EmpresaID,
		ticket.ContatoID,
		ticket.CategoriaID,
		ticket.Titulo,
		ticket.Descricao,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.Ativo, &ticket.DataCriacao, &ticket.DataAtualizacao); err != nil {
		return err
	}
	ticket.Numero = numero

	return tx.Commit(ctx)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET empresa_id=$1, contato_id=$2, categoria_id=$3, titulo=$4, descricao=$5,
            status=$6, solucao_descricao=$7, tempo_gasto_horas=$8, data_fechamento=$9,
            data_atualizacao=NOW()
        WHERE id=$10 AND ativo = TRUE
        RETURNING data_atualizacao`
	if err := r.pool.QueryRow(ctx, query,
		ticket.EmpresaID,
		ticket.ContatoID,
		ticket.CategoriaID,
		ticket.Titulo,
		ticket.Descricao,
		ticket.Status,
		ticket.SolucaoDescricao,
		ticket.TempoGastoHoras,
		ticket.DataFechamento,
		ticket.ID,
	).Scan(&ticket.DataAtualizacao); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1 AND ativo = TRUE`, ticketColumns)
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"ativo = TRUE"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.EmpresaID != nil {
		args = append(args, *filter.EmpresaID)
		clauses = append(clauses, fmt.Sprintf("empresa_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY data_criacao DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketFields(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) CountByStatus(ctx context.Context, statuses ...domain.TicketStatus) (int, error) {
	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, status := range statuses {
		args[i] = status
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`SELECT COUNT(id) FROM tickets WHERE ativo = TRUE AND status IN (%s)`,
		strings.Join(placeholders, ","))
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	const query = `SELECT COUNT(id) FROM tickets WHERE ativo = TRUE AND data_criacao >= $1`
	var count int
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func ticketFields(t *domain.Ticket) []any {
	return []any{
		&t.ID,
		&t.Numero,
		&t.EmpresaID,
		&t.ContatoID,
		&t.CategoriaID,
		&t.Titulo,
		&t.Descricao,
		&t.Status,
		&t.SolucaoDescricao,
		&t.TempoGastoHoras,
		&t.DataFechamento,
		&t.Ativo,
		&t.DataCriacao,
		&t.DataAtualizacao,
	}
}
