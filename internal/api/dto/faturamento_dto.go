package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-tpt/helpdesk/internal/domain"
	"github.com/gestao-tpt/helpdesk/internal/service"
)

// CreateFaturamentoRequest payload. Valor accepts JSON numbers or numeric
// strings and is kept as a decimal end to end.
type CreateFaturamentoRequest struct {
	TicketID         string          `json:"ticket_id" validate:"required,uuid"`
	EmpresaID        string          `json:"empresa_id" validate:"required,uuid"`
	Valor            decimal.Decimal `json:"valor" validate:"required"`
	Descricao        *string         `json:"descricao"`
	MesReferencia    string          `json:"mes_referencia" validate:"required,mes_ref"`
	Faturado         bool            `json:"faturado"`
	NumeroNotaFiscal *string         `json:"numero_nota_fiscal" validate:"omitempty,max=50"`
}

// UpdateFaturamentoRequest carries optional fields; absent keys are not
// touched.
type UpdateFaturamentoRequest struct {
	Valor            *decimal.Decimal `json:"valor"`
	Descricao        *string          `json:"descricao"`
	MesReferencia    *string          `json:"mes_referencia" validate:"omitempty,mes_ref"`
	Faturado         *bool            `json:"faturado"`
	NumeroNotaFiscal *string          `json:"numero_nota_fiscal" validate:"omitempty,max=50"`
}

// UpdateFaturamentoStatusRequest payload for the billing status endpoint.
type UpdateFaturamentoStatusRequest struct {
	Faturado         *bool   `json:"faturado" validate:"required"`
	NumeroNotaFiscal *string `json:"numero_nota_fiscal" validate:"omitempty,max=50"`
}

// FaturamentoResponse payload.
type FaturamentoResponse struct {
	ID               string          `json:"id"`
	TicketID         string          `json:"ticket_id"`
	EmpresaID        string          `json:"empresa_id"`
	Valor            decimal.Decimal `json:"valor"`
	Descricao        *string         `json:"descricao"`
	MesReferencia    string          `json:"mes_referencia"`
	DataFaturamento  *time.Time      `json:"data_faturamento"`
	Faturado         bool            `json:"faturado"`
	DataFaturacao    *time.Time      `json:"data_faturacao"`
	NumeroNotaFiscal *string         `json:"numero_nota_fiscal"`
	DataCriacao      time.Time       `json:"data_criacao"`
	DataAtualizacao  time.Time       `json:"data_atualizacao"`
}

// FaturamentoLinhaResponse is a listing/export row joined with ticket and
// company data.
type FaturamentoLinhaResponse struct {
	ID               string          `json:"id"`
	TicketID         string          `json:"ticket_id"`
	TicketNumero     string          `json:"ticket_numero"`
	TicketTitulo     string          `json:"ticket_titulo"`
	CategoriaNome    *string         `json:"categoria_nome"`
	EmpresaID        string          `json:"empresa_id"`
	EmpresaNome      string          `json:"empresa_nome"`
	DataTicket       time.Time       `json:"data_ticket"`
	Valor            decimal.Decimal `json:"valor"`
	MesReferencia    string          `json:"mes_referencia"`
	Faturado         bool            `json:"faturado"`
	DataFaturacao    *time.Time      `json:"data_faturacao"`
	NumeroNotaFiscal *string         `json:"numero_nota_fiscal"`
}

// FaturamentoResumoResponse aggregates one billing period.
type FaturamentoResumoResponse struct {
	MesReferencia    string          `json:"mes_referencia"`
	TotalRegistros   int             `json:"total_registros"`
	SubtotalPendente decimal.Decimal `json:"subtotal_pendente"`
	SubtotalFaturado decimal.Decimal `json:"subtotal_faturado"`
	TotalGeral       decimal.Decimal `json:"total_geral"`
}

// ToCreateInput maps the request to the service input.
func (r CreateFaturamentoRequest) ToCreateInput() service.FaturamentoCreateInput {
	return service.FaturamentoCreateInput{
		TicketID:         r.TicketID,
		EmpresaID:        r.EmpresaID,
		Valor:            r.Valor,
		Descricao:        r.Descricao,
		MesReferencia:    r.MesReferencia,
		Faturado:         r.Faturado,
		NumeroNotaFiscal: r.NumeroNotaFiscal,
	}
}

// ToPatch maps the request to the service patch.
func (r UpdateFaturamentoRequest) ToPatch() service.FaturamentoPatch {
	return service.FaturamentoPatch{
		Valor:            r.Valor,
		Descricao:        r.Descricao,
		MesReferencia:    r.MesReferencia,
		Faturado:         r.Faturado,
		NumeroNotaFiscal: r.NumeroNotaFiscal,
	}
}

// FromFaturamento maps the domain invoice.
func FromFaturamento(f *domain.Faturamento) FaturamentoResponse {
	return FaturamentoResponse{
		ID:               f.ID,
		TicketID:         f.TicketID,
		EmpresaID:        f.EmpresaID,
		Valor:            f.Valor,
		Descricao:        f.Descricao,
		MesReferencia:    f.MesReferencia,
		DataFaturamento:  f.DataFaturamento,
		Faturado:         f.Faturado,
		DataFaturacao:    f.DataFaturacao,
		NumeroNotaFiscal: f.NumeroNotaFiscal,
		DataCriacao:      f.DataCriacao,
		DataAtualizacao:  f.DataAtualizacao,
	}
}

// FromFaturamentoLinha maps a joined row.
func FromFaturamentoLinha(l *domain.FaturamentoLinha) FaturamentoLinhaResponse {
	return FaturamentoLinhaResponse{
		ID:               l.ID,
		TicketID:         l.TicketID,
		TicketNumero:     l.TicketNumero,
		TicketTitulo:     l.TicketTitulo,
		CategoriaNome:    l.CategoriaNome,
		EmpresaID:        l.EmpresaID,
		EmpresaNome:      l.EmpresaNome,
		DataTicket:       l.DataTicket,
		Valor:            l.Valor,
		MesReferencia:    l.MesReferencia,
		Faturado:         l.Faturado,
		DataFaturacao:    l.DataFaturacao,
		NumeroNotaFiscal: l.NumeroNotaFiscal,
	}
}

// FromFaturamentoLinhas maps a listing.
func FromFaturamentoLinhas(items []domain.FaturamentoLinha) []FaturamentoLinhaResponse {
	result := make([]FaturamentoLinhaResponse, len(items))
	for i := range items {
		result[i] = FromFaturamentoLinha(&items[i])
	}
	return result
}

// FromFaturamentoResumo maps the period rollup.
func FromFaturamentoResumo(r *domain.FaturamentoResumo) FaturamentoResumoResponse {
	return FaturamentoResumoResponse{
		MesReferencia:    r.MesReferencia,
		TotalRegistros:   r.TotalRegistros,
		SubtotalPendente: r.SubtotalPendente,
		SubtotalFaturado: r.SubtotalFaturado,
		TotalGeral:       r.TotalGeral,
	}
}
