package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
)

func rasterOf(t *testing.T, w, h int) *invoicing.Raster {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &invoicing.Raster{PNG: buf.Bytes(), Width: w, Height: h}
}

func mediaBox(widthMM, heightMM float64) string {
	k := 72.0 / 25.4
	return fmt.Sprintf("/MediaBox [0 0 %.2f %.2f]", widthMM*k, heightMM*k)
}

func TestRasterPDFExporter_PageHeightIsProportional(t *testing.T) {
	e := NewRasterPDFExporter(0)
	assert.InDelta(t, 420.0, e.PageHeight(100, 200), 1e-9)
	assert.InDelta(t, 105.0, e.PageHeight(200, 100), 1e-9)
}

func TestRasterPDFExporter_ExportRaster(t *testing.T) {
	e := NewRasterPDFExporter(DefaultPageWidthMM)

	out, err := e.ExportRaster(context.Background(), rasterOf(t, 100, 200))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Contains(t, string(out), mediaBox(210, 420))
}

func TestRasterPDFExporter_CustomWidth(t *testing.T) {
	e := NewRasterPDFExporter(100)

	out, err := e.ExportRaster(context.Background(), rasterOf(t, 50, 50))
	require.NoError(t, err)
	assert.Contains(t, string(out), mediaBox(100, 100))
}

func TestRasterPDFExporter_EmptyRaster(t *testing.T) {
	e := NewRasterPDFExporter(0)

	_, err := e.ExportRaster(context.Background(), nil)
	assert.Error(t, err)
	_, err = e.ExportRaster(context.Background(), &invoicing.Raster{})
	assert.Error(t, err)
}

func TestRasterPDFExporter_InvalidPNG(t *testing.T) {
	e := NewRasterPDFExporter(0)

	_, err := e.ExportRaster(context.Background(), &invoicing.Raster{PNG: []byte("xx"), Width: 10, Height: 10})
	assert.Error(t, err)
}
