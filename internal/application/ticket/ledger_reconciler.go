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
)

// ledgerReconciler gestiona pagos directos y la deuda aplazada de un ticket ya bloqueado.
type ledgerReconciler struct {
	r      Repos
	log    zerolog.Logger
	t      *entity.Ticket
	userID string
	now    time.Time
}

// deletePayments elimina pagos del ticket. Un id inexistente se registra y se omite.
func (l *ledgerReconciler) deletePayments(ctx context.Context, ids []string) error {
	for _, id := range ids {
		p, err := l.r.Payments.GetByID(ctx, l.t.ID, id)
		if err != nil {
			return fmt.Errorf("obtener pago %s: %w", id, err)
		}
		if p == nil {
			l.log.Warn().Str("payment_id", id).Msg("pago a eliminar no encontrado, se omite")
			continue
		}
		if p.Type == entity.PaymentTypeDebit {
			l.t.PaidAmountDirectly = l.t.PaidAmountDirectly.Sub(p.Amount)
		}
		if err := l.r.Payments.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("eliminar pago %s: %w", id, err)
		}
	}
	return nil
}

// addPayments registra pagos DEBIT vinculados a la caja abierta de la clínica, si la hay.
func (l *ledgerReconciler) addPayments(ctx context.Context, reqs []dto.AddPaymentRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	session, err := l.r.CashSessions.FindOpen(ctx, l.t.SystemID, l.t.ClinicID)
	if err != nil {
		return fmt.Errorf("buscar caja abierta: %w", err)
	}
	var sessionID *string
	if session != nil {
		sessionID = &session.ID
		l.t.CashSessionID = sessionID
	}

	for _, req := range reqs {
		method, err := l.r.PaymentMethods.GetByID(ctx, l.t.SystemID, req.PaymentMethodDefinitionID)
		if err != nil {
			return fmt.Errorf("obtener método de pago: %w", err)
		}
		if method == nil || !method.IsActive {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPaymentMethod, req.PaymentMethodDefinitionID)
		}

		date := l.now
		if req.PaymentDate != nil {
			parsed, err := time.Parse(time.RFC3339, *req.PaymentDate)
			if err != nil {
				return fmt.Errorf("%w: paymentDate %q", domain.ErrInvalidInput, *req.PaymentDate)
			}
			date = parsed
		}

		p := &entity.Payment{
			ID:                        uuid.New().String(),
			TicketID:                  l.t.ID,
			SystemID:                  l.t.SystemID,
			ClinicID:                  l.t.ClinicID,
			UserID:                    optionalString(l.userID),
			PaymentMethodDefinitionID: method.ID,
			CashSessionID:             sessionID,
			Type:                      entity.PaymentTypeDebit,
			Amount:                    req.Amount,
			PaymentDate:               date,
			TransactionReference:      req.TransactionReference,
			Notes:                     req.Notes,
			CreatedAt:                 l.now,
		}
		if err := l.r.Payments.Create(ctx, p); err != nil {
			return fmt.Errorf("crear pago: %w", err)
		}
		l.t.PaidAmountDirectly = l.t.PaidAmountDirectly.Add(p.Amount)
	}
	return nil
}

// applyDeferral concilia la deuda abierta del ticket con el importe a aplazar.
//
//	D > 0: requiere cliente; actualiza la deuda abierta o crea una nueva.
//	D = 0: cancela la deuda si no tiene cobros; si los tiene, la deja abierta tal cual.
func (l *ledgerReconciler) applyDeferral(ctx context.Context, amount decimal.Decimal) error {
	open, err := l.r.Debts.FindOpenByTicket(ctx, l.t.ID)
	if err != nil {
		return fmt.Errorf("buscar deuda abierta: %w", err)
	}

	if amount.IsPositive() {
		if l.t.ClientID == nil || *l.t.ClientID == "" {
			return domain.ErrClientRequiredForDebt
		}
		exists, err := l.r.Parties.ClientExists(ctx, l.t.SystemID, *l.t.ClientID)
		if err != nil {
			return fmt.Errorf("verificar cliente: %w", err)
		}
		if !exists {
			return domain.ErrClientRequiredForDebt
		}

		if open != nil {
			open.OriginalAmount = amount
			open.PendingAmount = amount.Sub(open.PaidAmount)
			open.Status = entity.DebtStatusPending
			if !open.PendingAmount.IsPositive() {
				open.Status = entity.DebtStatusPaid
			}
			open.ClientID = *l.t.ClientID
			open.UpdatedAt = l.now
			if err := l.r.Debts.Update(ctx, open); err != nil {
				return fmt.Errorf("actualizar deuda: %w", err)
			}
		} else {
			debt := &entity.DebtLedger{
				ID:             uuid.New().String(),
				TicketID:       l.t.ID,
				ClientID:       *l.t.ClientID,
				ClinicID:       l.t.ClinicID,
				SystemID:       l.t.SystemID,
				OriginalAmount: amount,
				PaidAmount:     decimal.Zero,
				PendingAmount:  amount,
				Status:         entity.DebtStatusPending,
				CreatedAt:      l.now,
				UpdatedAt:      l.now,
			}
			if err := l.r.Debts.Create(ctx, debt); err != nil {
				return fmt.Errorf("crear deuda: %w", err)
			}
		}
		l.t.HasOpenDebt = true
		l.t.DueAmount = decimalPtr(amount)
		return nil
	}

	switch {
	case open == nil:
		l.t.HasOpenDebt = false
		l.t.DueAmount = decimalPtr(decimal.Zero)
	case open.PaidAmount.IsZero():
		open.Status = entity.DebtStatusCancelled
		open.PendingAmount = decimal.Zero
		open.UpdatedAt = l.now
		if err := l.r.Debts.Update(ctx, open); err != nil {
			return fmt.Errorf("cancelar deuda: %w", err)
		}
		l.t.HasOpenDebt = false
		l.t.DueAmount = decimalPtr(decimal.Zero)
	default:
		l.t.HasOpenDebt = true
		l.t.DueAmount = decimalPtr(open.PendingAmount)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
