package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.TicketItemRepository = (*TicketItemRepo)(nil)

// TicketItemRepo líneas del ticket sobre PostgreSQL.
type TicketItemRepo struct {
	q Querier
}

// NewTicketItemRepository construye el adaptador de líneas.
func NewTicketItemRepository(q Querier) *TicketItemRepo {
	return &TicketItemRepo{q: q}
}

const ticketItemColumns = `
	id, ticket_id, item_type, item_id, description, quantity, unit_price, original_unit_price,
	is_price_overridden, manual_discount_amount, manual_discount_percentage, discount_notes,
	applied_promotion_id, promotion_discount_amount, vat_rate_id, vat_rate, vat_amount, final_price,
	consumed_bono_instance_id, consumed_package_instance_id, created_at, updated_at`

// Create inserta la línea.
func (r *TicketItemRepo) Create(ctx context.Context, it *entity.TicketItem) error {
	query := `
		INSERT INTO ticket_items (` + ticketItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.TicketID, string(it.ItemType), it.CatalogItemID, it.Description, it.Quantity, it.UnitPrice, it.OriginalUnitPrice,
		it.IsPriceOverridden, it.ManualDiscountAmount, it.ManualDiscountPercentage, it.DiscountNotes,
		it.AppliedPromotionID, it.PromotionDiscountAmount, it.VATRateID, it.VATRate, it.VATAmount, it.FinalPrice,
		it.ConsumedBonoInstanceID, it.ConsumedPackageInstanceID, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create ticket item: referencia inexistente: %w", err)
		}
		return fmt.Errorf("create ticket item: %w", err)
	}
	return nil
}

// Update reescribe cantidades, precios, descuentos e IVA de la línea.
func (r *TicketItemRepo) Update(ctx context.Context, it *entity.TicketItem) error {
	query := `
		UPDATE ticket_items SET
			quantity = $2, unit_price = $3, is_price_overridden = $4,
			manual_discount_amount = $5, manual_discount_percentage = $6, discount_notes = $7,
			applied_promotion_id = $8, promotion_discount_amount = $9,
			vat_amount = $10, final_price = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Quantity, it.UnitPrice, it.IsPriceOverridden,
		it.ManualDiscountAmount, it.ManualDiscountPercentage, it.DiscountNotes,
		it.AppliedPromotionID, it.PromotionDiscountAmount,
		it.VATAmount, it.FinalPrice, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket item: %w", err)
	}
	return nil
}

// Delete elimina la línea.
func (r *TicketItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ticket_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ticket item: %w", err)
	}
	return nil
}

// GetByID obtiene la línea si pertenece al ticket. (nil, nil) si no existe.
func (r *TicketItemRepo) GetByID(ctx context.Context, ticketID, id string) (*entity.TicketItem, error) {
	query := `SELECT ` + ticketItemColumns + ` FROM ticket_items WHERE id = $1 AND ticket_id = $2`
	it, err := scanTicketItem(r.q.QueryRow(ctx, query, id, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket item: %w", err)
	}
	return it, nil
}

// ListByTicket devuelve las líneas en orden de creación.
func (r *TicketItemRepo) ListByTicket(ctx context.Context, ticketID string) ([]*entity.TicketItem, error) {
	query := `SELECT ` + ticketItemColumns + ` FROM ticket_items WHERE ticket_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket items: %w", err)
	}
	defer rows.Close()

	var list []*entity.TicketItem
	for rows.Next() {
		it, err := scanTicketItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanTicketItem(row pgx.Row) (*entity.TicketItem, error) {
	var it entity.TicketItem
	var itemType string
	err := row.Scan(
		&it.ID, &it.TicketID, &itemType, &it.CatalogItemID, &it.Description, &it.Quantity, &it.UnitPrice, &it.OriginalUnitPrice,
		&it.IsPriceOverridden, &it.ManualDiscountAmount, &it.ManualDiscountPercentage, &it.DiscountNotes,
		&it.AppliedPromotionID, &it.PromotionDiscountAmount, &it.VATRateID, &it.VATRate, &it.VATAmount, &it.FinalPrice,
		&it.ConsumedBonoInstanceID, &it.ConsumedPackageInstanceID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.ItemType = entity.TicketItemType(itemType)
	return &it, nil
}
