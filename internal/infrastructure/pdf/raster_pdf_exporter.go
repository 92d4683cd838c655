package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
)

// DefaultPageWidthMM ancho de página A4.
const DefaultPageWidthMM = 210.0

// RasterPDFExporter implementa invoicing.RasterPDFExporter con gofpdf: una sola
// página de ancho fijo cuyo alto conserva la proporción de la imagen.
type RasterPDFExporter struct {
	pageWidth float64 // mm
}

// NewRasterPDFExporter construye el exportador; pageWidthMM <= 0 usa 210.
func NewRasterPDFExporter(pageWidthMM float64) *RasterPDFExporter {
	if pageWidthMM <= 0 {
		pageWidthMM = DefaultPageWidthMM
	}
	return &RasterPDFExporter{pageWidth: pageWidthMM}
}

// PageHeight alto de página (mm) para un raster de w x h píxeles.
func (e *RasterPDFExporter) PageHeight(w, h int) float64 {
	return float64(h) * e.pageWidth / float64(w)
}

// ExportRaster incrusta el PNG en (0,0) ocupando toda la página.
func (e *RasterPDFExporter) ExportRaster(ctx context.Context, r *invoicing.Raster) ([]byte, error) {
	if r == nil || len(r.PNG) == 0 || r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("pdf: raster vacío")
	}
	height := e.PageHeight(r.Width, r.Height)

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: e.pageWidth, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("invoice", opt, bytes.NewReader(r.PNG))
	doc.ImageOptions("invoice", 0, 0, e.pageWidth, height, false, opt, 0, "")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return buf.Bytes(), nil
}
