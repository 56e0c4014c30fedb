package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/clinica-api/internal/domain/repository"
	"github.com/jhoicas/clinica-api/pkg/cache"
)

// ModuleService verifica qué módulos SaaS tiene activos un tenant.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	moduleRepo repository.ModuleRepository
	cache      cache.Cache[bool]
	ttl        time.Duration
}

// NewModuleService construye el servicio. Con ttl <= 0 cada consulta va a la base de datos.
func NewModuleService(moduleRepo repository.ModuleRepository, c cache.Cache[bool], ttl time.Duration) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo, cache: c, ttl: ttl}
}

// HasActiveModule informa si el tenant tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si el módulo no está contratado.
// Los errores de infraestructura se devuelven y nunca se cachean.
func (s *ModuleService) HasActiveModule(ctx context.Context, systemID, moduleName string) (bool, error) {
	if systemID == "" || moduleName == "" {
		return false, fmt.Errorf("module: systemID y moduleName son obligatorios")
	}
	key := moduleKey(systemID, moduleName)
	if s.cache != nil {
		if active, ok := s.cache.Get(key); ok {
			return active, nil
		}
	}
	active, err := s.moduleRepo.HasActiveModule(ctx, systemID, moduleName)
	if err != nil {
		return false, fmt.Errorf("module: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(key, active, s.ttl)
	}
	return active, nil
}

// InvalidateModule descarta el estado cacheado de los módulos del tenant
// (llamar tras activar o desactivar un módulo).
func (s *ModuleService) InvalidateModule(systemID string) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(systemID + "|")
	}
}

func moduleKey(systemID, moduleName string) string {
	return systemID + "|" + moduleName
}
