package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler descarga la factura generada como documento.
type ExportHandler struct {
	uc *invoicing.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *invoicing.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// PDF exporta la factura generada a PDF (invoice.pdf).
// @Summary      Descargar PDF
// @Description  Una sola exportación por sesión a la vez; un segundo pedido concurrente recibe 409.
// @Tags         export
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de sesión"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/export/pdf [post]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, mimePDF)
	return c.Send(data)
}

// Spreadsheet exporta ítems y totales a XLSX (invoice.xlsx).
// @Summary      Descargar hoja de cálculo
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID de sesión"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/export/xlsx [get]
func (h *ExportHandler) Spreadsheet(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportSpreadsheet(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(data)
}
