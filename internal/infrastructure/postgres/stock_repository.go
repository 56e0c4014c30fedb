package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)
var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// AdjustCurrentStock suma delta (negativo al vender) en una sola sentencia atómica.
// El stock puede quedar negativo: la venta no se bloquea por falta de existencias.
func (r *StockRepo) AdjustCurrentStock(ctx context.Context, productID string, delta decimal.Decimal) (bool, error) {
	query := `UPDATE product_settings SET current_stock = current_stock + $2 WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, delta)
	if err != nil {
		return false, fmt.Errorf("adjust stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ConsumptionRepo sesiones restantes de bonos y paquetes.
type ConsumptionRepo struct {
	q Querier
}

func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

func consumptionTable(kind entity.ConsumptionKind) (string, error) {
	switch kind {
	case entity.ConsumptionBono:
		return "bono_instances", nil
	case entity.ConsumptionPackage:
		return "package_instances", nil
	}
	return "", fmt.Errorf("consumo: tipo %q no soportado", kind)
}

// Consume descuenta qty solo si quedan sesiones suficientes.
func (r *ConsumptionRepo) Consume(ctx context.Context, systemID string, kind entity.ConsumptionKind, instanceID string, qty decimal.Decimal) error {
	table, err := consumptionTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET remaining_quantity = remaining_quantity - $3
		WHERE id = $1 AND system_id = $2 AND remaining_quantity >= $3`, table)
	tag, err := r.q.Exec(ctx, query, instanceID, systemID, qty)
	if err != nil {
		return fmt.Errorf("consume %s: %w", table, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguir instancia inexistente de saldo insuficiente.
	var exists bool
	check := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND system_id = $2)`, table)
	if err := r.q.QueryRow(ctx, check, instanceID, systemID).Scan(&exists); err != nil {
		return fmt.Errorf("consume %s: %w", table, err)
	}
	if !exists {
		return fmt.Errorf("%w: instancia %s no encontrada", domain.ErrNotFound, instanceID)
	}
	return domain.ErrInsufficientConsumption
}

// Restore devuelve qty sesiones. found=false si la instancia ya no existe.
func (r *ConsumptionRepo) Restore(ctx context.Context, systemID string, kind entity.ConsumptionKind, instanceID string, qty decimal.Decimal) (bool, error) {
	table, err := consumptionTable(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET remaining_quantity = remaining_quantity + $3
		WHERE id = $1 AND system_id = $2`, table)
	tag, err := r.q.Exec(ctx, query, instanceID, systemID, qty)
	if err != nil {
		return false, fmt.Errorf("restore %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}
