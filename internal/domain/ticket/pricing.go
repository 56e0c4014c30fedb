package ticket

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// PriceSources datos de catálogo necesarios para resolver precio e IVA de una línea.
type PriceSources struct {
	ItemType        entity.TicketItemType
	ManualUnitPrice *decimal.Decimal
	TariffPrice     *decimal.Decimal // entrada activa de la tarifa
	TariffVAT       *entity.VATType
	BasePrice       *decimal.Decimal
	ItemVAT         *entity.VATType
	// DefaultVAT solo se consulta para bonos y paquetes.
	DefaultVAT func() (*entity.VATType, error)
}

// ResolvedPrice precio unitario e IVA efectivos.
type ResolvedPrice struct {
	UnitPrice decimal.Decimal
	VAT       entity.VATType
}

// ResolvePrice aplica la cadena de prioridad: precio manual, tarifa, precio base.
// El IVA sigue: tarifa, ítem y, solo para bonos y paquetes, el IVA por defecto.
func ResolvePrice(src PriceSources) (ResolvedPrice, error) {
	var price *decimal.Decimal
	switch {
	case src.ManualUnitPrice != nil:
		price = src.ManualUnitPrice
	case src.TariffPrice != nil:
		price = src.TariffPrice
	case src.BasePrice != nil:
		price = src.BasePrice
	}
	if price == nil || price.IsNegative() {
		return ResolvedPrice{}, domain.ErrNoValidPrice
	}

	vat := src.TariffVAT
	if vat == nil {
		vat = src.ItemVAT
	}
	if vat == nil && usesDefaultVAT(src.ItemType) && src.DefaultVAT != nil {
		def, err := src.DefaultVAT()
		if err != nil {
			return ResolvedPrice{}, err
		}
		vat = def
	}
	if vat == nil {
		return ResolvedPrice{}, domain.ErrNoTaxRateConfigured
	}
	return ResolvedPrice{UnitPrice: *price, VAT: *vat}, nil
}

func usesDefaultVAT(t entity.TicketItemType) bool {
	return t == entity.TicketItemTypeBonoDefinition || t == entity.TicketItemTypePackageDefinition
}
