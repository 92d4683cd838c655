package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

// InvoiceHandler validación y cálculo sobre un borrador completo, sin sesión.
type InvoiceHandler struct {
	uc     *invoicing.SessionUseCase
	intake SignatureIntake
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoicing.SessionUseCase, intake SignatureIntake) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, intake: intake}
}

// Validate valida el borrador recibido.
// @Summary      Validar borrador (sin sesión)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InvoiceDraftRequest  true  "borrador; signatureImage como data URI"
// @Success      200   {object}  dto.ValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/validate [post]
func (h *InvoiceHandler) Validate(c *fiber.Ctx) error {
	var in dto.InvoiceDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var sig *entity.SignatureImage
	if in.SignatureImage != "" {
		img, err := h.intake.FromDataURI(in.SignatureImage)
		if err != nil {
			return writeError(c, err)
		}
		sig = img
	}
	d := h.uc.DraftFromRequest(in, sig)
	return c.JSON(invoicing.ValidationToResponse(h.uc.ValidateDraft(d)))
}

// Totals calcula los montos por ítem y los agregados del borrador recibido.
// @Summary      Calcular totales (sin sesión)
// @Description  Los montos no numéricos se devuelven como "NaN". La tarifa de cada ítem es la configurada; taxRate del body se ignora.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InvoiceDraftRequest  true  "borrador"
// @Success      200   {object}  dto.TotalsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/totals [post]
func (h *InvoiceHandler) Totals(c *fiber.Ctx) error {
	var in dto.InvoiceDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	d := h.uc.DraftFromRequest(in, nil)
	return c.JSON(invoicing.TotalsToResponse(invoice.ComputeTotals(d.Items)))
}
