// Package raster dibuja la factura generada como imagen PNG, equivalente a capturar
// la vista de la factura en pantalla antes de convertirla a PDF.
//
// Layout (de arriba hacia abajo):
//
//	┌──────────────────────────────────────────────┐
//	│                  [logo]                      │
//	│  VENDEDOR: nombre / dirección / PAN / GST     │
//	│  ──────────────────────────────────────────  │
//	│  Place of Supply + Billing │ Shipping         │
//	│  Place of Delivery         │ Order No./Date   │
//	│  Invoice No./Date          │ Reverse Charge   │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: 8 columnas                           │
//	│  TOTALES                                     │
//	│  FIRMA + "Authorised Signatory"              │
//	└──────────────────────────────────────────────┘
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/signature"
)

// ── Paleta y métricas ─────────────────────────────────────────────────────────

var (
	colorText   = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	colorBorder = color.RGBA{R: 209, G: 213, B: 219, A: 255}
	colorHeadBg = color.RGBA{R: 243, G: 244, B: 246, A: 255}
)

const (
	margin       = 24
	linePadding  = 3
	sectionGap   = 12
	cellPadding  = 4
	logoMaxWidth = 144
	sigMaxHeight = 120
)

// Fuente TTF opcional: 10 pt a 96 DPI, alto de línea cercano al de basicfont.
const (
	fontSizePt = 10
	fontDPI    = 96
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// Renderer implementa invoicing.InvoiceRasterizer.
type Renderer struct {
	width int
	logo  image.Image     // opcional
	font  *opentype.Font // opcional; sin ella se usa basicfont (solo ASCII)
}

// NewRenderer construye el rasterizador con el ancho de lienzo en píxeles.
// logo y fontData pueden ser nil; si no, deben ser una imagen decodificable y
// una fuente TTF/OTF respectivamente.
func NewRenderer(widthPx int, logo, fontData []byte) (*Renderer, error) {
	r := &Renderer{width: widthPx}
	if len(logo) > 0 {
		img, _, err := image.Decode(bytes.NewReader(logo))
		if err != nil {
			return nil, fmt.Errorf("raster: decodificar logo: %w", err)
		}
		r.logo = img
	}
	if len(fontData) > 0 {
		f, err := opentype.Parse(fontData)
		if err != nil {
			return nil, fmt.Errorf("raster: leer fuente: %w", err)
		}
		r.font = f
	}
	return r, nil
}

// newCanvas lienzo con su propia cara de fuente; las caras TTF no admiten uso concurrente.
func (r *Renderer) newCanvas() (*canvas, error) {
	if r.font == nil {
		return newCanvas(r.width, basicfont.Face7x13, nil), nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size: fontSizePt, DPI: fontDPI, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: crear cara de fuente: %w", err)
	}
	return newCanvas(r.width, face, r.font), nil
}

// Rasterize dibuja la factura y devuelve el PNG con sus dimensiones.
func (r *Renderer) Rasterize(ctx context.Context, view *invoicing.InvoiceView) (*invoicing.Raster, error) {
	if view == nil {
		return nil, fmt.Errorf("raster: vista nula")
	}

	c, err := r.newCanvas()
	if err != nil {
		return nil, err
	}
	defer c.face.Close()
	if r.logo != nil {
		c.image(r.logo, logoMaxWidth, 0, true)
		c.gap(sectionGap)
	}
	sellerSection(c, view.Draft)
	detailsSection(c, view.Draft)
	itemsTable(c, view.Totals)
	totalsSection(c, view.Totals)
	if err := signatureSection(c, view.Draft); err != nil {
		return nil, err
	}
	c.gap(margin)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, c.width, c.y))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for _, op := range c.ops {
		op(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: codificar PNG: %w", err)
	}
	return &invoicing.Raster{PNG: buf.Bytes(), Width: c.width, Height: c.y}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func sellerSection(c *canvas, d entity.InvoiceDraft) {
	c.line(d.Seller.Name, true)
	c.line(d.Seller.Address, false)
	c.line(fmt.Sprintf("%s, %s, %s", d.Seller.City, d.Seller.State, d.Seller.Pincode), false)
	c.line("PAN No.: "+d.Seller.PAN, false)
	c.line("GST Registration No.: "+d.Seller.GST, false)
	c.gap(cellPadding)
	c.rule()
	c.gap(sectionGap)
}

func detailsSection(c *canvas, d entity.InvoiceDraft) {
	c.columns(
		[]string{
			"Place of Supply: " + d.PlaceOfSupply,
			"Billing Details: " + d.Billing.Name,
			partyLine(d.Billing),
		},
		[]string{
			"Shipping Details: " + d.Shipping.Name,
			partyLine(d.Shipping),
		},
	)
	c.gap(cellPadding)
	c.columns(
		[]string{"Place of Delivery: " + d.PlaceOfDelivery},
		[]string{"Order No.: " + d.Order.OrderNo, "Order Date: " + d.Order.OrderDate},
	)
	c.gap(cellPadding)
	c.columns(
		[]string{"Invoice No.: " + d.Invoice.InvoiceNo, "Invoice Date: " + d.Invoice.InvoiceDate},
		[]string{"Reverse Charge: " + yesNo(d.ReverseCharge)},
	)
	c.gap(cellPadding)
	c.rule()
	c.gap(sectionGap)
}

var tableHeaders = []string{
	"Description", "Unit Price", "Quantity", "Discount",
	"Net Amount", "Tax Rate", "Tax Amount", "Total Amount",
}

// pesos relativos del ancho de cada columna
var tableWeights = []float64{2.6, 1, 1, 1, 1.1, 0.9, 1.1, 1.2}

func itemsTable(c *canvas, t invoice.Totals) {
	c.tableRow(tableHeaders, true)
	for _, l := range t.Items {
		c.tableRow([]string{
			l.Item.Description,
			l.Item.UnitPrice,
			l.Item.Quantity,
			l.Item.Discount,
			invoice.FormatAmount(l.NetAmount),
			invoice.FormatRate(l.Item.TaxRate),
			invoice.FormatAmount(l.TaxAmount),
			invoice.FormatAmount(l.TotalAmount),
		}, false)
	}
	c.gap(sectionGap)
}

func totalsSection(c *canvas, t invoice.Totals) {
	c.line("Total Net Amount: "+invoice.FormatAmount(t.TotalNet), true)
	c.line("Total Tax Amount: "+invoice.FormatAmount(t.TotalTax), true)
	c.line("Grand Total: "+invoice.FormatAmount(t.GrandTotal), true)
	c.gap(sectionGap)
}

func signatureSection(c *canvas, d entity.InvoiceDraft) error {
	if d.HasSignature() {
		img, err := signature.Decode(d.Signature)
		if err != nil {
			return fmt.Errorf("raster: %w", err)
		}
		c.image(img, c.contentWidth(), sigMaxHeight, false)
		c.gap(cellPadding)
	}
	c.line("For "+d.Seller.Name, false)
	c.line("Authorised Signatory", false)
	return nil
}

func partyLine(p entity.Party) string {
	return strings.Join([]string{p.Address, p.City, p.State, p.Pincode, p.Code}, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
