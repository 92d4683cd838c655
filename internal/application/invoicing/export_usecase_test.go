package invoicing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-generator/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeRasterizer struct {
	err     error
	block   chan struct{} // si no es nil, Rasterize espera hasta que se cierre
	entered chan struct{}
	views   []*invoicing.InvoiceView
	mu      sync.Mutex
}

func (f *fakeRasterizer) Rasterize(_ context.Context, view *invoicing.InvoiceView) (*invoicing.Raster, error) {
	f.mu.Lock()
	f.views = append(f.views, view)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &invoicing.Raster{PNG: []byte("png"), Width: 100, Height: 200}, nil
}

type fakeExporter struct{ rasters []*invoicing.Raster }

func (f *fakeExporter) ExportRaster(_ context.Context, r *invoicing.Raster) ([]byte, error) {
	f.rasters = append(f.rasters, r)
	return []byte("%PDF-raster"), nil
}

type fakeGenerator struct{}

func (fakeGenerator) GenerateInvoicePDF(context.Context, *invoicing.InvoiceView) ([]byte, error) {
	return []byte("%PDF-vector"), nil
}

type fakeSheets struct{}

func (fakeSheets) ExportSpreadsheet(context.Context, *invoicing.InvoiceView) ([]byte, error) {
	return []byte("PK"), nil
}

// finalizedSession crea una sesión finalizada en repo.
func finalizedSession(t *testing.T, repo repository.SessionRepository) string {
	t.Helper()
	uc := invoicing.NewSessionUseCase(repo, invoicing.FormConfig{DefaultTaxRate: 18}, logger.Nop())
	s, err := uc.Create(context.Background())
	require.NoError(t, err)
	fillSession(t, uc, s.ID)
	_, errs, err := uc.Submit(context.Background(), s.ID)
	require.NoError(t, err)
	require.True(t, errs.Valid())
	return s.ID
}

func newExportUC(repo repository.SessionRepository, r *fakeRasterizer, e *fakeExporter, mode string) *invoicing.ExportUseCase {
	return invoicing.NewExportUseCase(repo, r, e, fakeGenerator{}, fakeSheets{},
		invoicing.ExportConfig{Mode: mode, FileName: "invoice.pdf", MaxConcurrent: 2},
		logger.Nop())
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestExportPDF_Raster(t *testing.T) {
	repo := memory.NewSessionRepository()
	id := finalizedSession(t, repo)
	r, e := &fakeRasterizer{}, &fakeExporter{}

	pdf, name, err := newExportUC(repo, r, e, invoicing.ModeRaster).ExportPDF(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "invoice.pdf", name)
	assert.Equal(t, []byte("%PDF-raster"), pdf)

	require.Len(t, r.views, 1)
	assert.InDelta(t, 212.4, r.views[0].Totals.GrandTotal, 1e-9)
	require.Len(t, e.rasters, 1)

	s, _ := repo.GetByID(context.Background(), id)
	assert.Empty(t, s.ExportToken, "la marca debe liberarse al terminar")
}

func TestExportPDF_Vector(t *testing.T) {
	repo := memory.NewSessionRepository()
	id := finalizedSession(t, repo)

	pdf, _, err := newExportUC(repo, &fakeRasterizer{}, &fakeExporter{}, invoicing.ModeVector).
		ExportPDF(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-vector"), pdf)
}

func TestExportPDF_SesionNoFinalizada(t *testing.T) {
	repo := memory.NewSessionRepository()
	uc := invoicing.NewSessionUseCase(repo, invoicing.FormConfig{DefaultTaxRate: 18}, logger.Nop())
	s, _ := uc.Create(context.Background())

	_, _, err := newExportUC(repo, &fakeRasterizer{}, &fakeExporter{}, invoicing.ModeRaster).
		ExportPDF(context.Background(), s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFinalized)

	_, _, err = newExportUC(repo, &fakeRasterizer{}, &fakeExporter{}, invoicing.ModeRaster).
		ExportPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportPDF_FallaSeReportaYLibera(t *testing.T) {
	repo := memory.NewSessionRepository()
	id := finalizedSession(t, repo)
	uc := newExportUC(repo, &fakeRasterizer{err: errors.New("lienzo vacío")}, &fakeExporter{}, invoicing.ModeRaster)

	_, _, err := uc.ExportPDF(context.Background(), id)
	assert.ErrorIs(t, err, invoicing.ErrExportFailed)

	s, _ := repo.GetByID(context.Background(), id)
	assert.Empty(t, s.ExportToken)
}

// Un doble clic mientras la primera exportación sigue en curso se rechaza.
func TestExportPDF_ExportacionConcurrenteRechazada(t *testing.T) {
	repo := memory.NewSessionRepository()
	id := finalizedSession(t, repo)
	r := &fakeRasterizer{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	uc := newExportUC(repo, r, &fakeExporter{}, invoicing.ModeRaster)

	done := make(chan error, 1)
	go func() {
		_, _, err := uc.ExportPDF(context.Background(), id)
		done <- err
	}()
	<-r.entered

	_, _, err := uc.ExportPDF(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrExportInProgress)

	close(r.block)
	require.NoError(t, <-done)

	// Terminada la primera, una nueva exportación vuelve a ser posible.
	r.block = nil
	r.entered = nil
	_, _, err = uc.ExportPDF(context.Background(), id)
	assert.NoError(t, err)
}

func TestExportSpreadsheet(t *testing.T) {
	repo := memory.NewSessionRepository()
	id := finalizedSession(t, repo)
	uc := newExportUC(repo, &fakeRasterizer{}, &fakeExporter{}, invoicing.ModeRaster)

	data, name, err := uc.ExportSpreadsheet(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "invoice.xlsx", name)
	assert.Equal(t, []byte("PK"), data)
}
