package http

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain/invoice"
)

//go:embed templates/invoice.html
var templatesFS embed.FS

var invoiceTemplate = template.Must(template.New("invoice.html").Funcs(template.FuncMap{
	"amount": invoice.FormatAmount,
	"rate":   invoice.FormatRate,
}).ParseFS(templatesFS, "templates/invoice.html"))

type previewData struct {
	*invoicing.InvoiceView
	Signature template.URL // data URI de la firma; vacío si no hay
}

// Preview muestra la factura generada como HTML, la misma vista que se exporta.
// @Summary      Vista previa HTML de la factura
// @Tags         sessions
// @Produce      html
// @Param        id   path  string  true  "ID de sesión"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/invoice/preview [get]
func (h *SessionHandler) Preview(c *fiber.Ctx) error {
	view, err := h.uc.View(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	data := previewData{InvoiceView: view}
	if view.Draft.HasSignature() {
		// PreviewURI lo arma la intake a partir del tipo detectado
		data.Signature = template.URL(view.Draft.Signature.PreviewURI)
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
