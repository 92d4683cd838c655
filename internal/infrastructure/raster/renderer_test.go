package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleView(t *testing.T, items int) *invoicing.InvoiceView {
	t.Helper()
	d := entity.NewInvoiceDraft(entity.DefaultTaxRate)
	d.Seller = entity.Party{Name: "Acme Ltda", Address: "Calle 1", City: "Bogotá", State: "Cundinamarca", Pincode: "110111", PAN: "ABCDE1234F", GST: "29ABCDE1234F1Z5"}
	d.Billing = entity.Party{Name: "Cliente", Address: "Av 2", City: "Cali", State: "Valle", Pincode: "760001", Code: "VC"}
	d.Shipping = d.Billing
	d.PlaceOfSupply, d.PlaceOfDelivery = "Cali", "Cali"
	d.Order = entity.OrderInfo{OrderNo: "PO-1", OrderDate: "2024-01-10"}
	d.Invoice = entity.InvoiceInfo{InvoiceNo: "INV-1", InvoiceDate: "2024-01-11"}
	d.Items = nil
	for i := 0; i < items; i++ {
		d.Items = append(d.Items, entity.LineItem{Description: "Servicio de consultoría con descripción larga para forzar recorte", UnitPrice: "100", Quantity: "2", Discount: "20", TaxRate: entity.DefaultTaxRate})
	}
	d.Signature = &entity.SignatureImage{Data: pngOf(t, 300, 80), MIMEType: "image/png", FileName: "firma.png"}
	return &invoicing.InvoiceView{SessionID: "s1", Draft: d, Totals: invoice.ComputeTotals(d.Items)}
}

func TestRenderer_Rasterize_ProducesPNGAtConfiguredWidth(t *testing.T) {
	r, err := NewRenderer(794, nil, nil)
	require.NoError(t, err)

	out, err := r.Rasterize(context.Background(), sampleView(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 794, out.Width)
	assert.Greater(t, out.Height, 0)

	cfg, err := png.DecodeConfig(bytes.NewReader(out.PNG))
	require.NoError(t, err)
	assert.Equal(t, out.Width, cfg.Width)
	assert.Equal(t, out.Height, cfg.Height)
}

func TestRenderer_Rasterize_HeightGrowsWithItems(t *testing.T) {
	r, err := NewRenderer(794, nil, nil)
	require.NoError(t, err)

	one, err := r.Rasterize(context.Background(), sampleView(t, 1))
	require.NoError(t, err)
	ten, err := r.Rasterize(context.Background(), sampleView(t, 10))
	require.NoError(t, err)

	assert.Greater(t, ten.Height, one.Height)
}

func TestRenderer_Rasterize_WithLogo(t *testing.T) {
	plain, err := NewRenderer(600, nil, nil)
	require.NoError(t, err)
	withLogo, err := NewRenderer(600, pngOf(t, 400, 100), nil)
	require.NoError(t, err)

	a, err := plain.Rasterize(context.Background(), sampleView(t, 1))
	require.NoError(t, err)
	b, err := withLogo.Rasterize(context.Background(), sampleView(t, 1))
	require.NoError(t, err)

	assert.Greater(t, b.Height, a.Height)
}

func TestRenderer_Rasterize_NaNAmounts(t *testing.T) {
	r, err := NewRenderer(794, nil, nil)
	require.NoError(t, err)
	v := sampleView(t, 1)
	v.Draft.Items[0].UnitPrice = "abc"
	v.Totals = invoice.ComputeTotals(v.Draft.Items)

	_, err = r.Rasterize(context.Background(), v)
	assert.NoError(t, err)
}

func TestRenderer_Rasterize_CorruptSignature(t *testing.T) {
	r, err := NewRenderer(794, nil, nil)
	require.NoError(t, err)
	v := sampleView(t, 1)
	v.Draft.Signature.Data = []byte("no es imagen")

	_, err = r.Rasterize(context.Background(), v)
	assert.Error(t, err)
}

func TestRenderer_Rasterize_CanceledContext(t *testing.T) {
	r, err := NewRenderer(794, nil, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Rasterize(ctx, sampleView(t, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRenderer_InvalidLogo(t *testing.T) {
	_, err := NewRenderer(794, []byte("xx"), nil)
	assert.Error(t, err)
}

func TestNewRenderer_InvalidFont(t *testing.T) {
	_, err := NewRenderer(794, nil, []byte("no es una fuente"))
	assert.Error(t, err)
}

func TestRenderer_Rasterize_ConFuenteTTF(t *testing.T) {
	r, err := NewRenderer(794, nil, goregular.TTF)
	require.NoError(t, err)
	v := sampleView(t, 2)
	v.Draft.Billing.Name = "José Müller €"

	out, err := r.Rasterize(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 794, out.Width)
	assert.Greater(t, out.Height, 0)
}

func TestPrintable_FuenteDeMapaDeBits(t *testing.T) {
	c := newCanvas(400, basicfont.Face7x13, nil)
	assert.Equal(t, "Bogota Sao Paulo", c.printable("Bogotá São Paulo"))
	assert.Equal(t, "a b", c.printable("a\tb"))
	assert.Equal(t, "?", c.printable("€"))
}

func TestPrintable_FuenteTTFConservaUnicode(t *testing.T) {
	r, err := NewRenderer(400, nil, goregular.TTF)
	require.NoError(t, err)
	c, err := r.newCanvas()
	require.NoError(t, err)

	assert.Equal(t, "Bogotá São Paulo €", c.printable("Bogotá São Paulo €"))
	assert.Equal(t, "a b", c.printable("a\tb"))
	assert.Equal(t, "?", c.printable("日"))
}

func TestWrapAndFit(t *testing.T) {
	c := newCanvas(400, basicfont.Face7x13, nil)
	assert.Equal(t, 16, c.lineH)

	lines := c.wrap("uno dos tres cuatro cinco seis", c.measure("uno dos tres"))
	assert.Equal(t, []string{"uno dos tres", "cuatro cinco", "seis"}, lines)

	s := c.fit("descripción muy larga", c.measure("abcdefgh"))
	assert.LessOrEqual(t, c.measure(s), c.measure("abcdefgh"))
	assert.Contains(t, s, "...")
}
