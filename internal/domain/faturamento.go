package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var mesReferenciaPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidMesReferencia reports whether the billing period matches YYYY-MM.
func ValidMesReferencia(mes string) bool {
	return mesReferenciaPattern.MatchString(mes)
}

// MesReferenciaAtual returns the current calendar month as YYYY-MM (UTC).
func MesReferenciaAtual(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// Faturamento is a billing record tied 1:1 to a ticket. At most one active
// record may exist per ticket; EmpresaID must equal the ticket's owning
// company at creation time. DataFaturacao is set exactly while Faturado is
// true.
type Faturamento struct {
	ID               string
	TicketID         string
	EmpresaID        string
	Valor            decimal.Decimal
	Descricao        *string
	MesReferencia    string
	DataFaturamento  *time.Time
	Faturado         bool
	DataFaturacao    *time.Time
	NumeroNotaFiscal *string
	Ativo            bool
	DataCriacao      time.Time
	DataAtualizacao  time.Time
}

// FaturamentoResumo aggregates active invoices of one billing period.
// SubtotalPendente + SubtotalFaturado always equals TotalGeral.
type FaturamentoResumo struct {
	MesReferencia    string
	TotalRegistros   int
	SubtotalPendente decimal.Decimal
	SubtotalFaturado decimal.Decimal
	TotalGeral       decimal.Decimal
}

// FaturamentoLinha is an invoice row joined with its ticket, company and
// (possibly soft-deleted) category, used by listings and exports.
type FaturamentoLinha struct {
	ID               string
	TicketID         string
	EmpresaID        string
	TicketNumero     string
	TicketTitulo     string
	TicketDescricao  string
	CategoriaNome    *string
	EmpresaNome      string
	DataTicket       time.Time
	Valor            decimal.Decimal
	Descricao        *string
	MesReferencia    string
	Faturado         bool
	DataFaturacao    *time.Time
	NumeroNotaFiscal *string
}
