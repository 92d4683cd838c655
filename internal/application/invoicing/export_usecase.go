package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
	"github.com/jhoicas/invoice-generator/internal/domain/repository"
	"github.com/jhoicas/invoice-generator/pkg/logger"
)

// Modos de exportación soportados.
const (
	ModeRaster = "raster"
	ModeVector = "vector"
)

// ErrExportFailed envuelve cualquier falla de renderizado o guardado del documento.
var ErrExportFailed = errors.New("exportación del documento fallida")

// ExportConfig parámetros de la exportación.
type ExportConfig struct {
	Mode          string
	FileName      string
	MaxConcurrent int
	Timeout       time.Duration // 0 = sin límite
}

// ExportUseCase genera los documentos descargables de una factura finalizada.
//
// Cada sesión admite una sola exportación a la vez (token en la sesión); un semáforo
// global limita cuántos renderizados corren en paralelo en el proceso.
type ExportUseCase struct {
	repo       repository.SessionRepository
	rasterizer InvoiceRasterizer
	exporter   RasterPDFExporter
	generator  InvoicePDFGenerator
	sheets     SpreadsheetExporter
	cfg        ExportConfig
	slots      *semaphore.Weighted
	log        *logger.Logger
}

// NewExportUseCase construye el caso de uso. En modo raster se usan rasterizer y exporter;
// en modo vector, generator.
func NewExportUseCase(
	repo repository.SessionRepository,
	rasterizer InvoiceRasterizer,
	exporter RasterPDFExporter,
	generator InvoicePDFGenerator,
	sheets SpreadsheetExporter,
	cfg ExportConfig,
	log *logger.Logger,
) *ExportUseCase {
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.FileName == "" {
		cfg.FileName = "invoice.pdf"
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeRaster
	}
	return &ExportUseCase{
		repo:       repo,
		rasterizer: rasterizer,
		exporter:   exporter,
		generator:  generator,
		sheets:     sheets,
		cfg:        cfg,
		slots:      semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		log:        log,
	}
}

// ExportPDF genera el PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)        si todo sale bien.
//   - domain.ErrNotFound               si la sesión no existe.
//   - domain.ErrSessionNotFinalized    si el borrador no fue enviado.
//   - domain.ErrExportInProgress       si ya hay una exportación en curso para la sesión.
//   - ErrExportFailed                  si falla el renderizado (queda registrado en el log).
func (uc *ExportUseCase) ExportPDF(ctx context.Context, sessionID string) (pdfBytes []byte, filename string, err error) {
	token := uuid.New().String()
	s, err := uc.repo.Update(ctx, sessionID, func(s *entity.Session) error {
		return invoice.BeginExport(s, token)
	})
	if err != nil {
		return nil, "", err
	}
	// La marca se libera siempre, también ante fallas o cancelación del cliente.
	defer uc.release(sessionID, token)

	log := uc.log.ForSession(sessionID)
	start := time.Now()

	pdfBytes, err = uc.render(ctx, NewInvoiceView(s))
	if err != nil {
		log.Error().Err(err).Str("modo", uc.cfg.Mode).Msg("exportación fallida")
		return nil, "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	log.Info().
		Str("modo", uc.cfg.Mode).
		Int("bytes", len(pdfBytes)).
		Dur("duracion", time.Since(start)).
		Msg("PDF generado")
	return pdfBytes, uc.cfg.FileName, nil
}

func (uc *ExportUseCase) render(ctx context.Context, view *InvoiceView) ([]byte, error) {
	if uc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
		defer cancel()
	}
	if err := uc.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("esperando turno de renderizado: %w", err)
	}
	defer uc.slots.Release(1)

	switch uc.cfg.Mode {
	case ModeVector:
		return uc.generator.GenerateInvoicePDF(ctx, view)
	case ModeRaster:
		raster, err := uc.rasterizer.Rasterize(ctx, view)
		if err != nil {
			return nil, fmt.Errorf("rasterizar: %w", err)
		}
		return uc.exporter.ExportRaster(ctx, raster)
	default:
		return nil, fmt.Errorf("modo de exportación desconocido %q", uc.cfg.Mode)
	}
}

func (uc *ExportUseCase) release(sessionID, token string) {
	// contexto propio: el de la petición puede estar cancelado
	_, err := uc.repo.Update(context.Background(), sessionID, func(s *entity.Session) error {
		invoice.EndExport(s, token)
		return nil
	})
	if err != nil {
		uc.log.ForSession(sessionID).Warn().Err(err).Msg("no se pudo liberar la marca de exportación")
	}
}

// ExportSpreadsheet genera la hoja de cálculo con los ítems y totales.
func (uc *ExportUseCase) ExportSpreadsheet(ctx context.Context, sessionID string) ([]byte, string, error) {
	s, err := uc.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if !s.IsFinalized() {
		return nil, "", errSessionNotFinalized(s)
	}
	data, err := uc.sheets.ExportSpreadsheet(ctx, NewInvoiceView(s))
	if err != nil {
		uc.log.ForSession(sessionID).Error().Err(err).Msg("exportación XLSX fallida")
		return nil, "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return data, "invoice.xlsx", nil
}
