package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// StockRepository ajusta el stock de productos (product_settings).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// AdjustCurrentStock suma delta al stock actual. found=false si el producto no tiene registro de inventario.
	AdjustCurrentStock(ctx context.Context, productID string, delta decimal.Decimal) (found bool, err error)
}

// ConsumptionRepository sesiones restantes de bonos y paquetes vendidos.
type ConsumptionRepository interface {
	// Consume descuenta qty; domain.ErrInsufficientConsumption si no quedan suficientes.
	Consume(ctx context.Context, systemID string, kind entity.ConsumptionKind, instanceID string, qty decimal.Decimal) error
	Restore(ctx context.Context, systemID string, kind entity.ConsumptionKind, instanceID string, qty decimal.Decimal) (found bool, err error)
}
