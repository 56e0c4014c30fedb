package repository

import (
	"context"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// ClinicRepository datos de la clínica emisora.
type ClinicRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Clinic, error)
}

// CashSessionRepository sesiones de caja.
type CashSessionRepository interface {
	// FindOpen devuelve la caja abierta más reciente de la clínica.
	FindOpen(ctx context.Context, systemID, clinicID string) (*entity.CashSession, error)
	GetByID(ctx context.Context, id string) (*entity.CashSession, error)
}

// PaymentMethodRepository métodos de pago del tenant.
type PaymentMethodRepository interface {
	GetByID(ctx context.Context, systemID, id string) (*entity.PaymentMethodDefinition, error)
}

// PartyRepository verifica clientes y usuarios referenciados por el ticket.
type PartyRepository interface {
	ClientExists(ctx context.Context, systemID, clientID string) (bool, error)
	UserExists(ctx context.Context, systemID, userID string) (bool, error)
}

// ModuleRepository activación de módulos SaaS por tenant.
type ModuleRepository interface {
	HasActiveModule(ctx context.Context, systemID, moduleName string) (bool, error)
}
