package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC *invoicing.SessionUseCase
	ExportUC  *invoicing.ExportUseCase
	Intake    SignatureIntake
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones de edición
	sessions := api.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC, deps.Intake)
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Delete("/:id", sessionHandler.Discard)
	sessions.Patch("/:id/fields", sessionHandler.ChangeField)
	sessions.Post("/:id/items", sessionHandler.AddItem)
	sessions.Patch("/:id/items/:index", sessionHandler.ChangeItemField)
	sessions.Put("/:id/signature", sessionHandler.AttachSignature)
	sessions.Delete("/:id/signature", sessionHandler.RemoveSignature)
	sessions.Post("/:id/validate", sessionHandler.Validate)
	sessions.Post("/:id/submit", sessionHandler.Submit)
	sessions.Get("/:id/invoice", sessionHandler.Invoice)
	sessions.Get("/:id/invoice/preview", sessionHandler.Preview)

	// Exportación (solo sesiones finalizadas)
	exportHandler := NewExportHandler(deps.ExportUC)
	sessions.Post("/:id/export/pdf", exportHandler.PDF)
	sessions.Get("/:id/export/xlsx", exportHandler.Spreadsheet)

	// Helpers sin sesión
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.SessionUC, deps.Intake)
	invoices.Post("/validate", invoiceHandler.Validate)
	invoices.Post("/totals", invoiceHandler.Totals)
}
