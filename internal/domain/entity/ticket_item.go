package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketItemType tipo de ítem de catálogo referenciado por una línea.
type TicketItemType string

const (
	TicketItemTypeProduct           TicketItemType = "PRODUCT"
	TicketItemTypeService           TicketItemType = "SERVICE"
	TicketItemTypeBonoDefinition    TicketItemType = "BONO_DEFINITION"
	TicketItemTypePackageDefinition TicketItemType = "PACKAGE_DEFINITION"
)

// Valid indica si el tipo es uno de los soportados.
func (t TicketItemType) Valid() bool {
	switch t {
	case TicketItemTypeProduct, TicketItemTypeService, TicketItemTypeBonoDefinition, TicketItemTypePackageDefinition:
		return true
	}
	return false
}

// TicketItem línea del ticket.
// FinalPrice es el neto antes de impuestos; VATRate es el porcentaje fijado al crear la línea.
type TicketItem struct {
	ID                        string
	TicketID                  string
	ItemType                  TicketItemType
	CatalogItemID             string
	Description               string
	Quantity                  decimal.Decimal
	UnitPrice                 decimal.Decimal
	OriginalUnitPrice         *decimal.Decimal // precio base del catálogo al momento de la venta
	IsPriceOverridden         bool
	ManualDiscountAmount      decimal.Decimal
	ManualDiscountPercentage  *decimal.Decimal
	DiscountNotes             *string
	AppliedPromotionID        *string
	PromotionDiscountAmount   decimal.Decimal
	VATRateID                 *string
	VATRate                   decimal.Decimal
	VATAmount                 decimal.Decimal
	FinalPrice                decimal.Decimal
	ConsumedBonoInstanceID    *string
	ConsumedPackageInstanceID *string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// Gross devuelve precio unitario × cantidad.
func (i *TicketItem) Gross() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// LineDiscounts suma de descuento manual y de promoción.
func (i *TicketItem) LineDiscounts() decimal.Decimal {
	return i.ManualDiscountAmount.Add(i.PromotionDiscountAmount)
}
