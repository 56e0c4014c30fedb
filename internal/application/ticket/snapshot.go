package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// loadSnapshot relee el ticket completo dentro de la transacción actual.
func loadSnapshot(ctx context.Context, r Repos, systemID, ticketID string) (*dto.TicketResponse, error) {
	t, err := r.Tickets.GetByID(ctx, systemID, ticketID)
	if err != nil {
		return nil, fmt.Errorf("obtener ticket: %w", err)
	}
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	items, err := r.Items.ListByTicket(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas: %w", err)
	}
	payments, err := r.Payments.ListByTicket(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	debts, err := r.Debts.ListByTicket(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("listar deudas: %w", err)
	}
	clinic, err := r.Clinics.GetByID(ctx, t.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("obtener clínica: %w", err)
	}
	var session *entity.CashSession
	if t.CashSessionID != nil {
		if session, err = r.CashSessions.GetByID(ctx, *t.CashSessionID); err != nil {
			return nil, fmt.Errorf("obtener caja: %w", err)
		}
	}
	return toResponse(t, clinic, items, payments, debts, session), nil
}

func toResponse(
	t *entity.Ticket,
	clinic *entity.Clinic,
	items []*entity.TicketItem,
	payments []*entity.Payment,
	debts []*entity.DebtLedger,
	session *entity.CashSession,
) *dto.TicketResponse {
	resp := &dto.TicketResponse{
		ID:                 t.ID,
		SystemID:           t.SystemID,
		ClinicID:           t.ClinicID,
		ClientID:           t.ClientID,
		SellerUserID:       t.SellerUserID,
		CashierUserID:      t.CashierUserID,
		TicketNumber:       t.TicketNumber,
		TicketSeries:       t.TicketSeries,
		Notes:              t.Notes,
		Status:             string(t.Status),
		CurrencyCode:       t.CurrencyCode,
		IssueDate:          t.IssueDate.Format(time.RFC3339),
		DiscountAmount:     t.DiscountAmount,
		DiscountReason:     t.DiscountReason,
		TotalAmount:        t.TotalAmount,
		TaxAmount:          t.TaxAmount,
		FinalAmount:        t.FinalAmount,
		PaidAmount:         t.PaidAmount,
		PaidAmountDirectly: t.PaidAmountDirectly,
		PendingAmount:      t.PendingAmount,
		DueAmount:          t.DueAmount,
		HasOpenDebt:        t.HasOpenDebt,
		Items:              make([]dto.TicketItemResponse, 0, len(items)),
		Payments:           make([]dto.PaymentResponse, 0, len(payments)),
		DebtLedgers:        make([]dto.DebtLedgerResponse, 0, len(debts)),
		UpdatedAt:          t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DiscountType != nil {
		s := string(*t.DiscountType)
		resp.DiscountType = &s
	}
	if clinic != nil {
		resp.ClinicName = clinic.Name
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.TicketItemResponse{
			ID:                        it.ID,
			ItemType:                  string(it.ItemType),
			ItemID:                    it.CatalogItemID,
			Description:               it.Description,
			Quantity:                  it.Quantity,
			UnitPrice:                 it.UnitPrice,
			OriginalUnitPrice:         it.OriginalUnitPrice,
			IsPriceOverridden:         it.IsPriceOverridden,
			ManualDiscountAmount:      it.ManualDiscountAmount,
			ManualDiscountPercentage:  it.ManualDiscountPercentage,
			DiscountNotes:             it.DiscountNotes,
			AppliedPromotionID:        it.AppliedPromotionID,
			PromotionDiscountAmount:   it.PromotionDiscountAmount,
			VATRateID:                 it.VATRateID,
			VATRate:                   it.VATRate,
			VATAmount:                 it.VATAmount,
			FinalPrice:                it.FinalPrice,
			ConsumedBonoInstanceID:    it.ConsumedBonoInstanceID,
			ConsumedPackageInstanceID: it.ConsumedPackageInstanceID,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:                        p.ID,
			Type:                      string(p.Type),
			Amount:                    p.Amount,
			PaymentMethodDefinitionID: p.PaymentMethodDefinitionID,
			CashSessionID:             p.CashSessionID,
			DebtLedgerID:              p.DebtLedgerID,
			PaymentDate:               p.PaymentDate.Format(time.RFC3339),
			TransactionReference:      p.TransactionReference,
			Notes:                     p.Notes,
		})
	}
	for _, d := range debts {
		resp.DebtLedgers = append(resp.DebtLedgers, dto.DebtLedgerResponse{
			ID:             d.ID,
			ClientID:       d.ClientID,
			OriginalAmount: d.OriginalAmount,
			PaidAmount:     d.PaidAmount,
			PendingAmount:  d.PendingAmount,
			Status:         string(d.Status),
		})
	}
	if session != nil {
		resp.CashSession = &dto.CashSessionResponse{
			ID:            session.ID,
			SessionNumber: session.SessionNumber,
			Status:        session.Status,
		}
	}
	return resp
}
