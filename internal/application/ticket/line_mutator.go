package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
	domticket "github.com/jhoicas/clinica-api/internal/domain/ticket"
)

// lineMutator aplica altas, bajas y modificaciones de líneas de un ticket ya bloqueado.
type lineMutator struct {
	r        Repos
	pricing  *PricingResolver
	log      zerolog.Logger
	t        *entity.Ticket
	tariffID string
	now      time.Time
	// strict: una línea inexistente es un error en lugar de un aviso.
	strict bool
}

// delete elimina líneas devolviendo stock y sesiones de bono/paquete consumidas.
func (m *lineMutator) delete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		item, err := m.r.Items.GetByID(ctx, m.t.ID, id)
		if err != nil {
			return fmt.Errorf("obtener línea %s: %w", id, err)
		}
		if item == nil {
			if m.strict {
				return domain.ErrTicketItemNotFound
			}
			m.log.Warn().Str("item_id", id).Msg("línea a eliminar no encontrada, se omite")
			continue
		}

		if item.ItemType == entity.TicketItemTypeProduct {
			if err := m.adjustStock(ctx, item.CatalogItemID, item.Quantity); err != nil {
				return err
			}
		}
		if err := m.restoreConsumption(ctx, item); err != nil {
			return err
		}
		if err := m.r.Items.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("eliminar línea %s: %w", id, err)
		}
	}
	return nil
}

// add crea líneas nuevas con precio resuelto y descuenta stock o sesiones.
func (m *lineMutator) add(ctx context.Context, reqs []dto.AddTicketItemRequest) error {
	for _, req := range reqs {
		itemType := entity.TicketItemType(req.ItemType)
		if !itemType.Valid() {
			return fmt.Errorf("%w: tipo de ítem %q", domain.ErrInvalidInput, req.ItemType)
		}
		if !req.Quantity.IsPositive() {
			return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
		}
		res, err := m.pricing.Resolve(ctx, itemType, req.ItemID, m.tariffID, m.t.SystemID, req.UnitPrice)
		if err != nil {
			return err
		}

		manual := decimalOrZero(req.ManualDiscountAmount)
		promo := decimalOrZero(req.PromotionDiscountAmount)
		amounts, err := domticket.PriceLine(res.UnitPrice, req.Quantity, manual, promo, res.VAT.Rate)
		if err != nil {
			return fmt.Errorf("%w (%s)", err, res.Description)
		}

		vatID := res.VAT.ID
		item := &entity.TicketItem{
			ID:                        uuid.New().String(),
			TicketID:                  m.t.ID,
			ItemType:                  itemType,
			CatalogItemID:             req.ItemID,
			Description:               res.Description,
			Quantity:                  req.Quantity,
			UnitPrice:                 res.UnitPrice,
			OriginalUnitPrice:         res.BasePrice,
			IsPriceOverridden:         req.UnitPrice != nil && (res.CatalogPrice == nil || !req.UnitPrice.Equal(*res.CatalogPrice)),
			ManualDiscountAmount:      manual,
			DiscountNotes:             req.DiscountNotes,
			AppliedPromotionID:        req.AppliedPromotionID,
			PromotionDiscountAmount:   promo,
			VATRateID:                 &vatID,
			VATRate:                   res.VAT.Rate,
			VATAmount:                 amounts.Tax,
			FinalPrice:                amounts.Net,
			ConsumedBonoInstanceID:    req.ConsumedBonoInstanceID,
			ConsumedPackageInstanceID: req.ConsumedPackageInstanceID,
			CreatedAt:                 m.now,
			UpdatedAt:                 m.now,
		}
		if err := m.r.Items.Create(ctx, item); err != nil {
			return fmt.Errorf("crear línea: %w", err)
		}

		if itemType == entity.TicketItemTypeProduct {
			if err := m.adjustStock(ctx, item.CatalogItemID, item.Quantity.Neg()); err != nil {
				return err
			}
		}
		if err := m.consume(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// update aplica cambios parciales. El IVA nunca se vuelve a resolver: se usa el tipo guardado en la línea.
func (m *lineMutator) update(ctx context.Context, reqs []dto.UpdateTicketItemRequest) error {
	for _, req := range reqs {
		item, err := m.r.Items.GetByID(ctx, m.t.ID, req.ID)
		if err != nil {
			return fmt.Errorf("obtener línea %s: %w", req.ID, err)
		}
		if item == nil {
			if m.strict {
				return domain.ErrTicketItemNotFound
			}
			m.log.Warn().Str("item_id", req.ID).Msg("línea a modificar no encontrada, se omite")
			continue
		}
		if q := req.Updates.Quantity; q != nil && !q.IsPositive() {
			return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
		}
		if applyLineUpdate(item, req.Updates) {
			item.UpdatedAt = m.now
			if err := m.r.Items.Update(ctx, item); err != nil {
				return fmt.Errorf("actualizar línea %s: %w", req.ID, err)
			}
		}
	}
	return nil
}

// applyLineUpdate muta item según los cambios pedidos y devuelve si hubo cambios.
//
// Precedencia del descuento manual: override de neto; si no, el porcentaje si difiere del guardado;
// si no, el importe si difiere del guardado (limpia el porcentaje); si no, se conserva el modo vigente.
func applyLineUpdate(item *entity.TicketItem, req dto.TicketItemChanges) bool {
	changed := false
	recalc := false

	if req.Quantity != nil && !req.Quantity.Equal(item.Quantity) {
		item.Quantity = *req.Quantity
		changed, recalc = true, true
	}
	unitPriceChanged := false
	if req.UnitPrice != nil && !req.UnitPrice.Equal(item.UnitPrice) {
		item.UnitPrice = *req.UnitPrice
		unitPriceChanged = true
		changed, recalc = true, true
	}

	mode := domticket.ModeOf(item)
	discountTouched := false
	switch {
	case req.IsPriceOverridden != nil && *req.IsPriceOverridden && req.FinalPrice != nil:
		mode = domticket.NetOverride(*req.FinalPrice)
		discountTouched = true
	case req.ManualDiscountPercentage.Set && !equalDecimalPtr(req.ManualDiscountPercentage.Ptr(), item.ManualDiscountPercentage):
		if req.ManualDiscountPercentage.Valid {
			mode = domticket.PercentageDiscount(req.ManualDiscountPercentage.Value)
		} else {
			mode = domticket.NoDiscount()
		}
		discountTouched = true
	case req.ManualDiscountAmount.Set && !decimalOrZero(req.ManualDiscountAmount.Ptr()).Equal(item.ManualDiscountAmount):
		mode = domticket.FixedAmountDiscount(decimalOrZero(req.ManualDiscountAmount.Ptr()))
		discountTouched = true
	}
	if discountTouched {
		changed, recalc = true, true
	}

	if req.DiscountNotes.Set && !equalStringPtr(req.DiscountNotes.Ptr(), item.DiscountNotes) {
		item.DiscountNotes = req.DiscountNotes.Ptr()
		changed = true
	}
	if req.AppliedPromotionID.Set && !equalStringPtr(req.AppliedPromotionID.Ptr(), item.AppliedPromotionID) {
		item.AppliedPromotionID = req.AppliedPromotionID.Ptr()
		changed, recalc = true, true
	}
	if req.PromotionDiscountAmount.Set {
		promo := decimalOrZero(req.PromotionDiscountAmount.Ptr())
		if !promo.Equal(item.PromotionDiscountAmount) {
			item.PromotionDiscountAmount = promo
			changed, recalc = true, true
		}
	}

	if !recalc {
		return changed
	}

	md := mode.Apply(item.Gross())
	item.ManualDiscountAmount = md.Amount
	item.ManualDiscountPercentage = md.Percentage
	// Cualquier recálculo que no fije neto ni precio unitario deja el neto derivado.
	item.IsPriceOverridden = md.Overridden || unitPriceChanged

	amounts := domticket.RecalculateLine(item.Gross(), item.ManualDiscountAmount, item.PromotionDiscountAmount, item.VATRate, md.OverrideNet)
	item.FinalPrice = amounts.Net
	item.VATAmount = amounts.Tax
	return true
}

func (m *lineMutator) adjustStock(ctx context.Context, productID string, delta decimal.Decimal) error {
	found, err := m.r.Stock.AdjustCurrentStock(ctx, productID, delta)
	if err != nil {
		return fmt.Errorf("ajustar stock del producto %s: %w", productID, err)
	}
	if !found {
		m.log.Warn().Str("product_id", productID).Str("delta", delta.String()).
			Msg("producto sin registro de inventario, no se ajusta stock")
	}
	return nil
}

func (m *lineMutator) consume(ctx context.Context, item *entity.TicketItem) error {
	kind, id, ok := consumptionOf(item)
	if !ok {
		return nil
	}
	if err := m.r.Consumption.Consume(ctx, m.t.SystemID, kind, id, item.Quantity); err != nil {
		return fmt.Errorf("consumir %s %s: %w", kind, id, err)
	}
	return nil
}

func (m *lineMutator) restoreConsumption(ctx context.Context, item *entity.TicketItem) error {
	kind, id, ok := consumptionOf(item)
	if !ok {
		return nil
	}
	found, err := m.r.Consumption.Restore(ctx, m.t.SystemID, kind, id, item.Quantity)
	if err != nil {
		return fmt.Errorf("restaurar %s %s: %w", kind, id, err)
	}
	if !found {
		m.log.Warn().Str("instance_id", id).Str("kind", string(kind)).
			Msg("instancia consumida no encontrada al eliminar la línea")
	}
	return nil
}

func consumptionOf(item *entity.TicketItem) (entity.ConsumptionKind, string, bool) {
	switch {
	case item.ConsumedBonoInstanceID != nil && *item.ConsumedBonoInstanceID != "":
		return entity.ConsumptionBono, *item.ConsumedBonoInstanceID, true
	case item.ConsumedPackageInstanceID != nil && *item.ConsumedPackageInstanceID != "":
		return entity.ConsumptionPackage, *item.ConsumedPackageInstanceID, true
	}
	return "", "", false
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func equalDecimalPtr(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
