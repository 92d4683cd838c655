package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain"
	"github.com/jhoicas/invoice-generator/internal/domain/entity"
)

// SignatureIntake lee y valida imágenes de firma.
type SignatureIntake interface {
	Read(r io.Reader, fileName string) (*entity.SignatureImage, error)
	FromDataURI(uri string) (*entity.SignatureImage, error)
}

// SessionHandler maneja la edición del formulario de factura.
type SessionHandler struct {
	uc     *invoicing.SessionUseCase
	intake SignatureIntake
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *invoicing.SessionUseCase, intake SignatureIntake) *SessionHandler {
	return &SessionHandler{uc: uc, intake: intake}
}

// Create abre una sesión de edición con el formulario vacío.
// @Summary      Crear sesión de edición
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	s, err := h.uc.Create(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoicing.SessionToResponse(s))
}

// Get devuelve el estado de la sesión y el borrador.
// @Summary      Obtener sesión
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "ID de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.SessionToResponse(s))
}

// Discard descarta la sesión.
// @Summary      Descartar sesión
// @Tags         sessions
// @Param        id   path  string  true  "ID de sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [delete]
func (h *SessionHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeField aplica un cambio de campo del formulario.
// @Summary      Cambiar campo del formulario
// @Description  path admite rutas como "sellerDetails.name", "billingDetails.pincode" o "reverseCharge".
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de sesión"
// @Param        body  body  dto.FieldChangeRequest  true  "ruta y valor"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/fields [patch]
func (h *SessionHandler) ChangeField(c *fiber.Ctx) error {
	var in dto.FieldChangeRequest
	if err := c.BodyParser(&in); err != nil || in.Path == "" {
		return invalidBody(c)
	}
	s, err := h.uc.ChangeField(c.Context(), c.Params("id"), in.Path, in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.SessionToResponse(s))
}

// ChangeItemField aplica un cambio a un campo de un ítem.
// @Summary      Cambiar campo de un ítem
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id     path  string                       true  "ID de sesión"
// @Param        index  path  int                          true  "posición del ítem (0-based)"
// @Param        body   body  dto.ItemFieldChangeRequest  true  "campo y valor"
// @Success      200    {object}  dto.SessionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/items/{index} [patch]
func (h *SessionHandler) ChangeItemField(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	var in dto.ItemFieldChangeRequest
	if err := c.BodyParser(&in); err != nil || in.Field == "" {
		return invalidBody(c)
	}
	s, err := h.uc.ChangeItemField(c.Context(), c.Params("id"), index, in.Field, in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.SessionToResponse(s))
}

// AddItem agrega un ítem vacío al final de la lista.
// @Summary      Agregar ítem
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "ID de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/items [post]
func (h *SessionHandler) AddItem(c *fiber.Ctx) error {
	s, err := h.uc.AddItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.SessionToResponse(s))
}

// AttachSignature recibe la imagen de firma (multipart, campo "signatureImage").
// Si la lectura falla la firma anterior se conserva.
// @Summary      Adjuntar firma
// @Tags         sessions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id              path      string  true  "ID de sesión"
// @Param        signatureImage  formData  file    true  "imagen de la firma"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/signature [put]
func (h *SessionHandler) AttachSignature(c *fiber.Ctx) error {
	fh, err := c.FormFile("signatureImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "falta el archivo signatureImage"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, domain.ErrInvalidImage)
	}
	defer f.Close()

	img, err := h.intake.Read(f, fh.Filename)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.AttachSignature(c.Context(), c.Params("id"), img)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.SessionToResponse(s))
}

// RemoveSignature quita la firma del borrador.
// @Summary      Quitar firma
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "ID de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/signature [delete]
func (h *SessionHandler) RemoveSignature(c *fiber.Ctx) error {
	s, err := h.uc.RemoveSignature(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.SessionToResponse(s))
}

// Validate valida el borrador sin cambiar el estado de la sesión.
// @Summary      Validar borrador
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "ID de sesión"
// @Success      200  {object}  dto.ValidationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/validate [post]
func (h *SessionHandler) Validate(c *fiber.Ctx) error {
	errs, err := h.uc.Validate(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.ValidationToResponse(errs))
}

// Submit genera la factura: con el formulario válido la sesión queda finalizada.
// @Summary      Generar factura
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "ID de sesión"
// @Success      200  {object}  dto.InvoiceViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "errors: clave de campo → mensaje"
// @Router       /api/sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	s, errs, err := h.uc.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if !errs.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "el formulario tiene campos inválidos",
			Errors:  errs,
		})
	}
	return c.JSON(invoicing.ViewToResponse(invoicing.NewInvoiceView(s)))
}

// Invoice devuelve la factura generada.
// @Summary      Obtener factura generada
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "ID de sesión"
// @Success      200  {object}  dto.InvoiceViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/invoice [get]
func (h *SessionHandler) Invoice(c *fiber.Ctx) error {
	view, err := h.uc.View(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoicing.ViewToResponse(view))
}
