package repository

import (
	"context"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// CatalogRepository lectura del catálogo y de la configuración de IVA.
type CatalogRepository interface {
	// GetItem carga el ítem con su IVA y, si existe y está activa, su entrada en la tarifa.
	GetItem(ctx context.Context, systemID string, itemType entity.TicketItemType, itemID, tariffID string) (*entity.CatalogItem, error)
	// GetDefaultVAT devuelve el IVA de la tarifa o, en su defecto, el IVA por defecto del sistema.
	GetDefaultVAT(ctx context.Context, systemID, tariffID string) (*entity.VATType, error)
}
