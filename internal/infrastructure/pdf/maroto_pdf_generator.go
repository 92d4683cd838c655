// Package pdf implementa la exportación de la factura generada a PDF.
//
// Hay dos caminos:
//   - RasterPDFExporter incrusta la imagen de la factura (ver paquete raster) en una
//     página de 210 de ancho y alto proporcional.
//   - MarotoPDFGenerator arma un PDF vectorial A4 con el mismo contenido.
//
// Layout del PDF vectorial:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         [logo]                              │
//	│  VENDEDOR: Nombre / Dirección / PAN / GST                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Place of Supply + Billing   │  Shipping                    │
//	│  Place of Delivery           │  Order No. + Date            │
//	│  Invoice No. + Date          │  Reverse Charge              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: 8 columnas                                          │
//	│  TOTALES: Net / Tax / Grand Total                           │
//	│  FIRMA: imagen + "For <vendedor>" + Authorised Signatory    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/signature"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBorder  = &props.Color{Red: 209, Green: 213, Blue: 219}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa invoicing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	logo    []byte
	logoExt extension.Type
}

// NewMarotoPDFGenerator construye el generador. logo es opcional (PNG o JPEG).
func NewMarotoPDFGenerator(logo []byte) (*MarotoPDFGenerator, error) {
	g := &MarotoPDFGenerator{}
	if len(logo) == 0 {
		return g, nil
	}
	switch mt := mimetype.Detect(logo); {
	case mt.Is("image/png"):
		g.logoExt = extension.Png
	case mt.Is("image/jpeg"):
		g.logoExt = extension.Jpg
	default:
		return nil, fmt.Errorf("pdf: formato de logo no soportado: %s", mt.String())
	}
	g.logo = logo
	return g, nil
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, view *invoicing.InvoiceView) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("pdf: vista nula")
	}
	d := view.Draft

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+d.Invoice.InvoiceNo, true).
		WithAuthor(d.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	if g.logo != nil {
		m.AddRows(row.New(22).Add(col.New(12).Add(
			image.NewFromBytes(g.logo, g.logoExt, props.Rect{Center: true, Percent: 90}),
		)))
	}
	m.AddRows(sellerRow(d.Seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailsRows(d)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de ítems
	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(view.Totals.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(view.Totals))

	sig, err := signatureRows(d)
	if err != nil {
		return nil, err
	}
	m.AddRows(sig...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func sellerRow(p entity.Party) core.Row {
	return row.New(26).Add(
		col.New(12).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Address, props.Text{Size: 9, Top: 8}),
			text.New(fmt.Sprintf("%s, %s, %s", p.City, p.State, p.Pincode), props.Text{Size: 9, Top: 12}),
			text.New("PAN No.: "+p.PAN, props.Text{Size: 8, Top: 16, Color: colorGray}),
			text.New("GST Registration No.: "+p.GST, props.Text{Size: 8, Top: 20, Color: colorGray}),
		),
	)
}

// detailsRows: rejilla de dos columnas con lugar de suministro, contrapartes,
// orden, factura y reverse charge.
func detailsRows(d entity.InvoiceDraft) []core.Row {
	return []core.Row{
		row.New(20).Add(
			col.New(6).Add(
				labelled("Place of Supply:", d.PlaceOfSupply, 1),
				labelled("Billing Details:", d.Billing.Name, 6),
				text.New(partyLine(d.Billing), props.Text{Size: 8, Top: 11, Color: colorGray}),
			),
			col.New(6).Add(
				labelled("Shipping Details:", d.Shipping.Name, 1),
				text.New(partyLine(d.Shipping), props.Text{Size: 8, Top: 6, Color: colorGray}),
			),
		),
		row.New(11).Add(
			col.New(6).Add(labelled("Place of Delivery:", d.PlaceOfDelivery, 1)),
			col.New(6).Add(
				labelled("Order No.:", d.Order.OrderNo, 1),
				labelled("Order Date:", d.Order.OrderDate, 6),
			),
		),
		row.New(11).Add(
			col.New(6).Add(
				labelled("Invoice No.:", d.Invoice.InvoiceNo, 1),
				labelled("Invoice Date:", d.Invoice.InvoiceDate, 6),
			),
			col.New(6).Add(labelled("Reverse Charge:", yesNo(d.ReverseCharge), 1)),
		),
	}
}

var tableColumns = []struct {
	label string
	size  int
	align align.Type
}{
	{"Description", 3, align.Left},
	{"Unit Price", 1, align.Right},
	{"Quantity", 1, align.Right},
	{"Discount", 1, align.Right},
	{"Net Amount", 2, align.Right},
	{"Tax Rate", 1, align.Center},
	{"Tax Amount", 1, align.Right},
	{"Total Amount", 2, align.Right},
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableColumns))
	for _, c := range tableColumns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: c.align, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// tableItemRows: una fila por ítem; los importes no numéricos se muestran como "NaN".
func tableItemRows(lines []invoice.LineTotals) []core.Row {
	result := make([]core.Row, 0, len(lines)+1)
	for _, l := range lines {
		values := []string{
			l.Item.Description,
			l.Item.UnitPrice,
			l.Item.Quantity,
			l.Item.Discount,
			invoice.FormatAmount(l.NetAmount),
			invoice.FormatRate(l.Item.TaxRate),
			invoice.FormatAmount(l.TaxAmount),
			invoice.FormatAmount(l.TotalAmount),
		}
		cols := make([]core.Col, 0, len(values))
		for i, v := range values {
			c := tableColumns[i]
			cols = append(cols, col.New(c.size).Add(text.New(v, props.Text{
				Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(7).Add(cols...))
		result = append(result, line.NewRow(0.5, props.Line{Color: colorBorder, Thickness: 0.2}))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t invoice.Totals) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(20).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(
			label("Total Net Amount:", 2),
			label("Total Tax Amount:", 8),
			label("Grand Total:", 14),
		),
		col.New(3).Add(
			value(invoice.FormatAmount(t.TotalNet), 2),
			value(invoice.FormatAmount(t.TotalTax), 8),
			value(invoice.FormatAmount(t.GrandTotal), 14),
		),
	)
}

// signatureRows: imagen de la firma (si hay) y leyenda del firmante.
func signatureRows(d entity.InvoiceDraft) ([]core.Row, error) {
	var rows []core.Row
	if d.HasSignature() {
		data, err := signature.AsPNG(d.Signature)
		if err != nil {
			return nil, fmt.Errorf("pdf: %w", err)
		}
		rows = append(rows, row.New(25).Add(
			col.New(8),
			col.New(4).Add(image.NewFromBytes(data, extension.Png, props.Rect{Center: true, Percent: 90})),
		))
	}
	rows = append(rows, row.New(12).Add(
		col.New(8),
		col.New(4).Add(
			text.New("For "+nonEmpty(d.Seller.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1,
			}),
			text.New("Authorised Signatory", props.Text{
				Size: 8, Align: align.Center, Top: 6, Color: colorGray,
			}),
		),
	))
	return rows, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func labelled(label, value string, top float64) core.Component {
	return text.New(label+" "+value, props.Text{Size: 9, Top: top})
}

func partyLine(p entity.Party) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{p.Address, p.City, p.State, p.Pincode, p.Code} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
