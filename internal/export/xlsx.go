package export

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/gestao-tpt/helpdesk/internal/domain"
)

// FaturamentoXLSX renders invoice rows as a spreadsheet, one sheet named
// after the billing period.
func FaturamentoXLSX(mesReferencia string, linhas []domain.FaturamentoLinha) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Faturamento " + mesReferencia
	f.SetSheetName("Sheet1", sheet)

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", lastCol, style)
	}

	for i := range linhas {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		record := linhaRecord(&linhas[i])
		row := make([]interface{}, len(record))
		for j, value := range record {
			row[j] = value
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "D", 18)
	_ = f.SetColWidth(sheet, "E", "F", 12)
	_ = f.SetColWidth(sheet, "G", "G", 30)
	_ = f.SetColWidth(sheet, "H", "H", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
