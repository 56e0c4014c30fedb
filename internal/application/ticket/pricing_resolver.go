package ticket

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
	domticket "github.com/jhoicas/clinica-api/internal/domain/ticket"
)

// PricingResolver determina precio unitario e IVA de un ítem para una tarifa.
type PricingResolver struct {
	catalog repository.CatalogRepository
}

// NewPricingResolver construye el resolver sobre el catálogo de la transacción en curso.
func NewPricingResolver(catalog repository.CatalogRepository) *PricingResolver {
	return &PricingResolver{catalog: catalog}
}

// Resolution precio resuelto junto con los datos del catálogo que se copian a la línea.
type Resolution struct {
	domticket.ResolvedPrice
	Description string
	BasePrice   *decimal.Decimal
	// CatalogPrice precio de tarifa o base, el que se habría aplicado sin precio manual.
	CatalogPrice *decimal.Decimal
}

// Resolve aplica la cadena manual → tarifa → precio base y tarifa → ítem → IVA por defecto.
func (p *PricingResolver) Resolve(
	ctx context.Context,
	itemType entity.TicketItemType,
	itemID, tariffID, systemID string,
	manualUnitPrice *decimal.Decimal,
) (*Resolution, error) {
	item, err := p.catalog.GetItem(ctx, systemID, itemType, itemID, tariffID)
	if err != nil {
		return nil, fmt.Errorf("pricing: obtener ítem: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrCatalogItemNotFound, itemType, itemID)
	}

	src := domticket.PriceSources{
		ItemType:        itemType,
		ManualUnitPrice: manualUnitPrice,
		BasePrice:       item.Price,
		ItemVAT:         item.VATType,
		DefaultVAT: func() (*entity.VATType, error) {
			vat, err := p.catalog.GetDefaultVAT(ctx, systemID, tariffID)
			if err != nil {
				return nil, fmt.Errorf("pricing: IVA por defecto: %w", err)
			}
			return vat, nil
		},
	}
	if tp := item.TariffPrice; tp != nil && tp.IsActive {
		src.TariffPrice = tp.Price
		src.TariffVAT = tp.VATType
	}
	catalogPrice := src.TariffPrice
	if catalogPrice == nil {
		catalogPrice = src.BasePrice
	}

	resolved, err := domticket.ResolvePrice(src)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, item.Name)
	}
	return &Resolution{
		ResolvedPrice: resolved,
		Description:   item.Name,
		BasePrice:     item.Price,
		CatalogPrice:  catalogPrice,
	}, nil
}
