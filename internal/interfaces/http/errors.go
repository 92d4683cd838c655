package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/dto"
	"github.com/jhoicas/invoice-generator/internal/application/invoicing"
	"github.com/jhoicas/invoice-generator/internal/domain"
)

// writeError traduce los errores de dominio a la respuesta HTTP correspondiente.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	case errors.Is(err, domain.ErrSessionFinalized):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_FINALIZED", Message: "la factura ya fue generada; el borrador no admite cambios"})
	case errors.Is(err, domain.ErrSessionNotFinalized):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FINALIZED", Message: "la factura aún no fue generada"})
	case errors.Is(err, domain.ErrExportInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXPORT_IN_PROGRESS", Message: "ya hay una exportación en curso"})
	case errors.Is(err, domain.ErrInvalidImage):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrReadOnlyField),
		errors.Is(err, domain.ErrItemOutOfRange),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, invoicing.ErrExportFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el documento"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
