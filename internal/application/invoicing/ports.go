package invoicing

import (
	"context"
	"time"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

// InvoiceView factura generada: borrador congelado más sus totales.
// Es la entrada común de todos los renderizadores.
type InvoiceView struct {
	SessionID   string
	Draft       entity.InvoiceDraft
	Totals      invoice.Totals
	FinalizedAt *time.Time
}

// NewInvoiceView calcula los totales del borrador de la sesión.
func NewInvoiceView(s *entity.Session) *InvoiceView {
	return &InvoiceView{
		SessionID:   s.ID,
		Draft:       s.Draft,
		Totals:      invoice.ComputeTotals(s.Draft.Items),
		FinalizedAt: s.FinalizedAt,
	}
}

// Raster imagen PNG de la factura renderizada.
type Raster struct {
	PNG    []byte
	Width  int // px
	Height int // px
}

// InvoiceRasterizer dibuja la factura como imagen (equivalente a capturar la vista en pantalla).
type InvoiceRasterizer interface {
	Rasterize(ctx context.Context, view *InvoiceView) (*Raster, error)
}

// RasterPDFExporter incrusta el raster en un PDF de ancho fijo y alto proporcional.
type RasterPDFExporter interface {
	ExportRaster(ctx context.Context, raster *Raster) ([]byte, error)
}

// InvoicePDFGenerator genera directamente un PDF vectorial de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, view *InvoiceView) ([]byte, error)
}

// SpreadsheetExporter exporta los ítems y totales a una hoja de cálculo.
type SpreadsheetExporter interface {
	ExportSpreadsheet(ctx context.Context, view *InvoiceView) ([]byte, error)
}
