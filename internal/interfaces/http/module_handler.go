package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// moduleCacheInvalidator lo implementa *usecase.ModuleService.
type moduleCacheInvalidator interface {
	InvalidateModule(systemID string)
}

// ModuleHandler operaciones sobre el estado de módulos del tenant.
type ModuleHandler struct {
	modules moduleCacheInvalidator
	log     zerolog.Logger
}

// NewModuleHandler construye el handler.
func NewModuleHandler(modules moduleCacheInvalidator, log zerolog.Logger) *ModuleHandler {
	return &ModuleHandler{modules: modules, log: log}
}

// Refresh descarta la caché de módulos del tenant del token para que una activación
// o baja recién hecha se vea en la siguiente petición.
// POST /api/modules/refresh
func (h *ModuleHandler) Refresh(c *fiber.Ctx) error {
	systemID := GetSystemID(c)
	if systemID == "" {
		return unauthorized(c)
	}
	h.modules.InvalidateModule(systemID)
	h.log.Info().Str("system_id", systemID).Str("user_id", GetUserID(c)).Msg("caché de módulos invalidada")
	return c.SendStatus(fiber.StatusNoContent)
}

// MountModules registra las rutas de módulos. Solo exigen autenticación: el tenant
// debe poder refrescar su estado aunque el módulo figure inactivo en caché.
func MountModules(r fiber.Router, h *ModuleHandler, auth fiber.Handler) {
	r.Post("/modules/refresh", auth, h.Refresh)
}
