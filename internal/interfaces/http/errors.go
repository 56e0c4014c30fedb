package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain"
)

// writeError traduce un error de dominio a su respuesta HTTP.
// Solo los errores no clasificados (500) llevan la cadena completa en details.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	resp := dto.ErrorResponse{Code: code, Message: publicMessage(err)}
	if status == fiber.StatusInternalServerError {
		resp.Message = "error interno"
		resp.Details = err.Error()
	}
	return c.Status(status).JSON(resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusForbidden, "INVALID_STATE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrBusinessRule):
		return fiber.StatusBadRequest, "BUSINESS_RULE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// publicMessage quita el prefijo de la clase ("recurso no encontrado: ") y deja el detalle legible.
func publicMessage(err error) string {
	msg := err.Error()
	for _, class := range []error{
		domain.ErrNotFound, domain.ErrInvalidState, domain.ErrInvalidInput,
		domain.ErrBusinessRule, domain.ErrUnauthorized, domain.ErrForbidden,
	} {
		prefix := class.Error() + ": "
		if i := strings.Index(msg, prefix); i >= 0 {
			return msg[i+len(prefix):]
		}
	}
	return msg
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}
