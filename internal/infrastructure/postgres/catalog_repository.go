package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura de productos, servicios, bonos y paquetes con su precio de tarifa.
type CatalogRepo struct {
	q Querier
}

func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// catalogTables tabla por tipo de ítem vendible. Solo se interpolan estos literales en el SQL.
var catalogTables = map[entity.TicketItemType]string{
	entity.TicketItemTypeProduct:           "products",
	entity.TicketItemTypeService:           "services",
	entity.TicketItemTypeBonoDefinition:    "bono_definitions",
	entity.TicketItemTypePackageDefinition: "package_definitions",
}

// GetItem (nil, nil) si el ítem no existe en el tenant.
func (r *CatalogRepo) GetItem(ctx context.Context, systemID string, itemType entity.TicketItemType, itemID, tariffID string) (*entity.CatalogItem, error) {
	table, ok := catalogTables[itemType]
	if !ok {
		return nil, fmt.Errorf("get catalog item: tipo %q no soportado", itemType)
	}
	query := fmt.Sprintf(`
		SELECT c.id, c.system_id, c.name, c.price,
		       v.id, v.name, v.rate, v.is_default,
		       tp.tariff_id, tp.price, tp.is_active,
		       tv.id, tv.name, tv.rate, tv.is_default
		FROM %s c
		LEFT JOIN vat_types v ON v.id = c.vat_type_id
		LEFT JOIN tariff_item_prices tp
		       ON tp.item_id = c.id AND tp.item_type = $3 AND tp.tariff_id = $4
		LEFT JOIN vat_types tv ON tv.id = tp.vat_type_id
		WHERE c.id = $1 AND c.system_id = $2`, table)

	var item entity.CatalogItem
	var vat, tariffVAT nullableVAT
	var tpTariffID *string
	var tpPrice *decimal.Decimal
	var tpActive *bool
	err := r.q.QueryRow(ctx, query, itemID, systemID, string(itemType), nullIfEmpty(tariffID)).Scan(
		&item.ID, &item.SystemID, &item.Name, &item.Price,
		&vat.id, &vat.name, &vat.rate, &vat.isDefault,
		&tpTariffID, &tpPrice, &tpActive,
		&tariffVAT.id, &tariffVAT.name, &tariffVAT.rate, &tariffVAT.isDefault,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	item.Type = itemType
	item.VATType = vat.toEntity()
	if tpTariffID != nil {
		item.TariffPrice = &entity.TariffPrice{
			TariffID: *tpTariffID,
			Price:    tpPrice,
			VATType:  tariffVAT.toEntity(),
			IsActive: tpActive != nil && *tpActive,
		}
	}
	return &item, nil
}

// GetDefaultVAT prioriza el IVA por defecto de la tarifa y después el marcado como defecto en el sistema.
// (nil, nil) si no hay ninguno.
func (r *CatalogRepo) GetDefaultVAT(ctx context.Context, systemID, tariffID string) (*entity.VATType, error) {
	query := `
		SELECT v.id, v.name, v.rate, v.is_default
		FROM vat_types v
		LEFT JOIN tariffs t ON t.id = $2 AND t.system_id = $1
		WHERE v.system_id = $1 AND (v.id = t.default_vat_type_id OR v.is_default)
		ORDER BY COALESCE(v.id = t.default_vat_type_id, false) DESC, v.id
		LIMIT 1`
	var v entity.VATType
	err := r.q.QueryRow(ctx, query, systemID, nullIfEmpty(tariffID)).Scan(&v.ID, &v.Name, &v.Rate, &v.IsDefault)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default vat: %w", err)
	}
	return &v, nil
}

// nullableVAT columnas de un LEFT JOIN a vat_types.
type nullableVAT struct {
	id        *string
	name      *string
	rate      *decimal.Decimal
	isDefault *bool
}

func (n nullableVAT) toEntity() *entity.VATType {
	if n.id == nil || n.rate == nil {
		return nil
	}
	v := &entity.VATType{ID: *n.id, Rate: *n.rate}
	if n.name != nil {
		v.Name = *n.name
	}
	if n.isDefault != nil {
		v.IsDefault = *n.isDefault
	}
	return v
}
