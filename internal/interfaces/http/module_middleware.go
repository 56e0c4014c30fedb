package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/clinica-api/internal/application/dto"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService; el uso de interfaz evita el import circular.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, systemID, moduleName string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica si el sistema del token JWT
// tiene el módulo activo. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalSystemID).
//
// Comportamiento:
//   - 403 Forbidden  → módulo no contratado o vencido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay system_id en el contexto, responde 401.
func RequireModule(moduleName string, checker moduleChecker, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		systemID := GetSystemID(c)
		if systemID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "system_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveModule(c.UserContext(), systemID, moduleName)
		if err != nil {
			log.Error().Err(err).Str("system_id", systemID).Str("module", moduleName).Msg("verificación de módulo fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está activo para este sistema",
			})
		}

		return c.Next()
	}
}
