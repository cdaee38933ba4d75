package export

import (
	"bytes"
	"encoding/csv"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

const dataTicketLayout = "2006-01-02 15:04"

var exportHeaders = []string{"Data", "Solicitação", "Serviço", "Nº Chamado", "Valor", "Faturado", "Empresa", "NF"}

// FaturamentoCSV renders invoice rows as a CSV document with a header line.
func FaturamentoCSV(linhas []domain.FaturamentoLinha) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for i := range linhas {
		if err := w.Write(linhaRecord(&linhas[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func linhaRecord(l *domain.FaturamentoLinha) []string {
	return []string{
		l.DataTicket.Format(dataTicketLayout),
		l.TicketTitulo,
		optional(l.CategoriaNome),
		l.TicketNumero,
		l.Valor.StringFixed(2),
		simNao(l.Faturado),
		l.EmpresaNome,
		optional(l.NumeroNotaFiscal),
	}
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func simNao(value bool) string {
	if value {
		return "Sim"
	}
	return "Não"
}
