package ticket

import (
	"context"
	"fmt"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
	domticket "github.com/jhoicas/clinica-api/internal/domain/ticket"
)

// applyScalarUpdates aplica los campos de cabecera sobre t (se persisten junto con los totales).
func applyScalarUpdates(ctx context.Context, r Repos, t *entity.Ticket, in *dto.ScalarUpdatesRequest) error {
	if in == nil {
		return nil
	}

	if in.ClientID.Set {
		if in.ClientID.Valid && in.ClientID.Value != "" {
			ok, err := r.Parties.ClientExists(ctx, t.SystemID, in.ClientID.Value)
			if err != nil {
				return fmt.Errorf("verificar cliente: %w", err)
			}
			if !ok {
				return domain.ErrClientNotFound
			}
			t.ClientID = in.ClientID.Ptr()
		} else {
			t.ClientID = nil
		}
	}
	if in.SellerUserID.Set {
		if in.SellerUserID.Valid && in.SellerUserID.Value != "" {
			ok, err := r.Parties.UserExists(ctx, t.SystemID, in.SellerUserID.Value)
			if err != nil {
				return fmt.Errorf("verificar vendedor: %w", err)
			}
			if !ok {
				return domain.ErrUserNotFound
			}
			t.SellerUserID = in.SellerUserID.Ptr()
		} else {
			t.SellerUserID = nil
		}
	}
	if in.Notes.Set {
		t.Notes = in.Notes.Ptr()
	}
	if in.TicketSeries.Set {
		t.TicketSeries = in.TicketSeries.Ptr()
	}

	if !in.DiscountType.Set && !in.DiscountAmount.Set && !in.DiscountReason.Set {
		return nil
	}
	typ := t.DiscountType
	if in.DiscountType.Set {
		typ = nil
		if in.DiscountType.Valid {
			v := entity.DiscountType(in.DiscountType.Value)
			typ = &v
		}
	}
	amount := t.DiscountAmount
	if in.DiscountAmount.Set {
		amount = in.DiscountAmount.Ptr()
	} else if in.DiscountType.Set && typ == nil {
		// Quitar el tipo sin enviar importe elimina el descuento global completo.
		amount = nil
	}
	reason := t.DiscountReason
	if in.DiscountReason.Set {
		reason = in.DiscountReason.Ptr()
	}

	if _, err := domticket.NewGlobalDiscount(typ, amount); err != nil {
		return err
	}
	if in.DiscountType.Set && typ == nil {
		amount, reason = nil, nil
	}
	t.DiscountType = typ
	t.DiscountAmount = amount
	t.DiscountReason = reason
	return nil
}
