package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo activación de módulos SaaS por tenant.
type ModuleRepo struct {
	q Querier
}

func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

// HasActiveModule informa si el sistema tiene el módulo activo y sin vencer.
// Consulta directamente system_modules por clave primaria.
func (r *ModuleRepo) HasActiveModule(ctx context.Context, systemID, moduleName string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM system_modules
			 WHERE system_id   = $1
			   AND module_name = $2
			   AND is_active   = true
			   AND (expires_at IS NULL OR expires_at > now())
		)`
	var active bool
	if err := r.q.QueryRow(ctx, query, systemID, moduleName).Scan(&active); err != nil {
		return false, fmt.Errorf("check module %s: %w", moduleName, err)
	}
	return active, nil
}
