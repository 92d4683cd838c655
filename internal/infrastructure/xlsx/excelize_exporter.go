// Package xlsx exporta los ítems y totales de la factura a una hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "Invoice"

// Fila donde empieza la tabla de ítems (1-based).
const tableRow = 5

var headers = []string{
	"Description", "Unit Price", "Quantity", "Discount",
	"Net Amount", "Tax Rate", "Tax Amount", "Total Amount",
}

// ExcelizeExporter implementa invoicing.SpreadsheetExporter.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// ExportSpreadsheet genera el libro XLSX y devuelve sus bytes.
func (e *ExcelizeExporter) ExportSpreadsheet(ctx context.Context, view *invoicing.InvoiceView) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("xlsx: vista nula")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	d := view.Draft
	w := &sheetWriter{f: f, sheet: SheetName}
	boldStyle := w.style(&excelize.Style{Font: &excelize.Font{Bold: true}})
	titleStyle := w.style(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle := w.style(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F3F4F6"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "D1D5DB", Style: 1},
			{Type: "right", Color: "D1D5DB", Style: 1},
			{Type: "top", Color: "D1D5DB", Style: 1},
			{Type: "bottom", Color: "D1D5DB", Style: 1},
		},
	})
	if w.err != nil {
		return nil, w.err
	}

	// Encabezado
	w.set(1, 1, d.Seller.Name, titleStyle)
	w.set(1, 2, "Invoice No.:", boldStyle)
	w.set(2, 2, d.Invoice.InvoiceNo, 0)
	w.set(3, 2, "Invoice Date:", boldStyle)
	w.set(4, 2, d.Invoice.InvoiceDate, 0)
	w.set(1, 3, "Billing Details:", boldStyle)
	w.set(2, 3, d.Billing.Name, 0)
	w.set(3, 3, "Shipping Details:", boldStyle)
	w.set(4, 3, d.Shipping.Name, 0)

	// Tabla
	for i, h := range headers {
		w.set(i+1, tableRow, h, headerStyle)
	}
	w.colWidth("A", "A", 36)
	w.colWidth("B", "H", 14)

	for i, l := range view.Totals.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := []any{
			l.Item.Description,
			l.Item.UnitPrice,
			l.Item.Quantity,
			l.Item.Discount,
			amountCell(l.NetAmount),
			invoice.FormatRate(l.Item.TaxRate),
			amountCell(l.TaxAmount),
			amountCell(l.TotalAmount),
		}
		for j, v := range values {
			w.set(j+1, tableRow+1+i, v, 0)
		}
	}

	// Totales
	r := tableRow + len(view.Totals.Items) + 2
	totals := []struct {
		label string
		value float64
	}{
		{"Total Net Amount:", view.Totals.TotalNet},
		{"Total Tax Amount:", view.Totals.TotalTax},
		{"Grand Total:", view.Totals.GrandTotal},
	}
	for i, t := range totals {
		w.set(7, r+i, t.label, boldStyle)
		w.set(8, r+i, amountCell(t.value), 0)
	}
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// amountCell los importes no finitos se escriben como texto ("NaN", "Infinity").
func amountCell(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invoice.FormatAmount(v)
	}
	return v
}

// sheetWriter escribe celdas en una hoja y conserva el primer error;
// tras un error las demás operaciones no hacen nada.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) style(st *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(st)
	if err != nil {
		w.err = fmt.Errorf("xlsx: crear estilo: %w", err)
	}
	return id
}

// set escribe v en (col, row), 1-based; style 0 deja el estilo por defecto.
func (w *sheetWriter) set(col, row int, v any, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err == nil {
		err = w.f.SetCellValue(w.sheet, cell, v)
	}
	if err == nil && style != 0 {
		err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
	if err != nil {
		w.err = fmt.Errorf("xlsx: celda (%d,%d): %w", col, row, err)
	}
}

func (w *sheetWriter) colWidth(from, to string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(w.sheet, from, to, width); err != nil {
		w.err = fmt.Errorf("xlsx: ancho de columnas %s:%s: %w", from, to, err)
	}
}
