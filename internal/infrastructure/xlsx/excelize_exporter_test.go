package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

func view() *invoicing.InvoiceView {
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)
	d.Seller.Name = "Acme"
	d.Invoice = entity.InvoiceInfo{InvoiceNo: "INV-7", InvoiceDate: "2024-02-01"}
	d.Items = []entity.LineItem{
		{Description: "A", UnitPrice: "100", Quantity: "2", Discount: "20", TaxRate: 18},
		{Description: "B", UnitPrice: "abc", Quantity: "1", Discount: "0", TaxRate: 18},
	}
	return &invoicing.InvoiceView{SessionID: "s1", Draft: d, Totals: invoice.ComputeTotals(d.Items)}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExcelizeExporter_ExportSpreadsheet(t *testing.T) {
	out, err := NewExcelizeExporter().ExportSpreadsheet(context.Background(), view())
	require.NoError(t, err)

	f := open(t, out)
	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	v, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "INV-7", v)

	header, err := f.GetCellValue(SheetName, "H5")
	require.NoError(t, err)
	assert.Equal(t, "Total Amount", header)

	net, err := f.GetCellValue(SheetName, "E6")
	require.NoError(t, err)
	assert.Equal(t, "180", net)

	rate, err := f.GetCellValue(SheetName, "F6")
	require.NoError(t, err)
	assert.Equal(t, "18%", rate)
}

func TestExcelizeExporter_NaNWrittenAsText(t *testing.T) {
	out, err := NewExcelizeExporter().ExportSpreadsheet(context.Background(), view())
	require.NoError(t, err)

	f := open(t, out)
	v, err := f.GetCellValue(SheetName, "E7")
	require.NoError(t, err)
	assert.Equal(t, "NaN", v)

	// la fila de Grand Total arrastra el NaN
	grand, err := f.GetCellValue(SheetName, "H11")
	require.NoError(t, err)
	assert.Equal(t, "NaN", grand)
}

func TestExcelizeExporter_NilView(t *testing.T) {
	_, err := NewExcelizeExporter().ExportSpreadsheet(context.Background(), nil)
	assert.Error(t, err)
}

func TestSheetWriter_ErrorDeEstiloSeDevuelve(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	w := &sheetWriter{f: f, sheet: "Sheet1"}

	w.style(&excelize.Style{Font: &excelize.Font{Size: excelize.MaxFontSize + 1}})
	require.Error(t, w.err)
	assert.ErrorIs(t, w.err, excelize.ErrFontSize)

	w.set(1, 1, "ignorado", 0)
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSheetWriter_CeldaInvalida(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	w := &sheetWriter{f: f, sheet: "Sheet1"}

	w.set(1, 0, "x", 0)
	assert.Error(t, w.err)
}

func TestSheetWriter_HojaInexistente(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	w := &sheetWriter{f: f, sheet: "NoExiste"}

	w.set(1, 1, "x", 0)
	assert.Error(t, w.err)
}
