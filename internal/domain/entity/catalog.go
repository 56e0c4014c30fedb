package entity

import "github.com/shopspring/decimal"

// VATType tipo de IVA (porcentaje).
type VATType struct {
	ID        string
	Name      string
	Rate      decimal.Decimal // p. ej. 21 para 21 %
	IsDefault bool
}

// TariffPrice entrada de precio de un ítem en una tarifa.
type TariffPrice struct {
	TariffID string
	Price    *decimal.Decimal
	VATType  *VATType
	IsActive bool
}

// CatalogItem producto, servicio, bono o paquete vendible.
// TariffPrice solo viene cargado si existe entrada para la tarifa consultada.
type CatalogItem struct {
	ID          string
	SystemID    string
	Type        TicketItemType
	Name        string
	Price       *decimal.Decimal
	VATType     *VATType
	TariffPrice *TariffPrice
}

// ProductSetting configuración de inventario de un producto.
type ProductSetting struct {
	ProductID    string
	CurrentStock decimal.Decimal
}

// ConsumptionKind tipo de instancia consumible vendida al cliente.
type ConsumptionKind string

const (
	ConsumptionBono    ConsumptionKind = "BONO"
	ConsumptionPackage ConsumptionKind = "PACKAGE"
)
