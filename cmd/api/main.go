package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoice-generator/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/raster"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/signature"
	"github.com/jhoicas/invoice-generator/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/invoice-generator/internal/interfaces/http"
	"github.com/jhoicas/invoice-generator/pkg/config"
	"github.com/jhoicas/invoice-generator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("export_mode", cfg.Export.Mode).
		Msg("iniciando aplicación")

	var logo []byte
	if cfg.Export.LogoPath != "" {
		logo, err = os.ReadFile(cfg.Export.LogoPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Export.LogoPath).Msg("leer logo")
		}
	}

	var fontData []byte
	if cfg.Export.FontPath != "" {
		fontData, err = os.ReadFile(cfg.Export.FontPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Export.FontPath).Msg("leer fuente")
		}
	}

	sessionRepo := memory.NewSessionRepository()

	// Renderizadores: raster (PNG → PDF de ancho fijo), vectorial (Maroto) y XLSX
	rasterizer, err := raster.NewRenderer(cfg.Export.RasterWidthPx, logo, fontData)
	if err != nil {
		log.Fatal().Err(err).Msg("rasterizador")
	}
	pdfGenerator, err := infrapdf.NewMarotoPDFGenerator(logo)
	if err != nil {
		log.Fatal().Err(err).Msg("generador PDF")
	}
	rasterExporter := infrapdf.NewRasterPDFExporter(cfg.Export.PageWidthMM)
	sheetExporter := xlsx.NewExcelizeExporter()

	sessionUC := invoicing.NewSessionUseCase(sessionRepo, invoicing.FormConfig{
		DefaultTaxRate: cfg.Invoice.DefaultTaxRate,
		StrictNumbers:  cfg.Invoice.StrictNumbers,
	}, log)
	exportUC := invoicing.NewExportUseCase(
		sessionRepo, rasterizer, rasterExporter, pdfGenerator, sheetExporter,
		invoicing.ExportConfig{
			Mode:          cfg.Export.Mode,
			FileName:      cfg.Export.FileName,
			MaxConcurrent: cfg.Export.MaxConcurrent,
			Timeout:       cfg.Export.Timeout,
		}, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Signature.MaxBytes + 1<<20, // firma + encabezados multipart
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Export.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Invoice Generator API",
		}))
	} else if cfg.App.SwaggerFile != "" {
		log.Warn().Str("path", cfg.App.SwaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC: sessionUC,
		ExportUC:  exportUC,
		Intake:    signature.NewIntake(cfg.Signature.MaxBytes),
	})

	// Limpieza periódica de sesiones inactivas
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(cfg.Session.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				sessionUC.SweepIdle(sweepCtx, cfg.Session.TTL)
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
