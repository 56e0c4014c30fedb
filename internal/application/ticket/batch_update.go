package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
	domticket "github.com/jhoicas/clinica-api/internal/domain/ticket"
)

// BatchUpdateUseCase aplica en una única transacción todos los cambios de un ticket abierto:
// líneas, cabecera, pagos y deuda aplazada. Cualquier error deshace la petición completa.
type BatchUpdateUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewBatchUpdateUseCase construye el caso de uso.
func NewBatchUpdateUseCase(txRunner TxRunner, log zerolog.Logger) *BatchUpdateUseCase {
	return &BatchUpdateUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// WithClock sustituye el reloj (tests).
func (uc *BatchUpdateUseCase) WithClock(now func() time.Time) *BatchUpdateUseCase {
	uc.now = now
	return uc
}

// BatchUpdate ejecuta el lote y devuelve la instantánea resultante del ticket.
//
// Retorna:
//   - domain.ErrTicketNotFound  si el ticket no existe en el tenant.
//   - domain.ErrTicketNotOpen   si el ticket no está en estado OPEN.
//   - errores de validación o de regla de negocio (ver domain/errors.go).
func (uc *BatchUpdateUseCase) BatchUpdate(
	ctx context.Context,
	systemID, userID, ticketID string,
	in dto.BatchUpdateTicketRequest,
) (*dto.TicketResponse, error) {
	return uc.run(ctx, systemID, userID, ticketID, in, false)
}

// AddItem añade una sola línea al ticket.
func (uc *BatchUpdateUseCase) AddItem(ctx context.Context, systemID, userID, ticketID string, in dto.AddTicketItemRequest) (*dto.TicketResponse, error) {
	return uc.run(ctx, systemID, userID, ticketID, dto.BatchUpdateTicketRequest{ItemsToAdd: []dto.AddTicketItemRequest{in}}, true)
}

// UpdateItem modifica una línea; a diferencia del lote, una línea inexistente es un 404.
func (uc *BatchUpdateUseCase) UpdateItem(ctx context.Context, systemID, userID, ticketID string, in dto.UpdateTicketItemRequest) (*dto.TicketResponse, error) {
	return uc.run(ctx, systemID, userID, ticketID, dto.BatchUpdateTicketRequest{ItemsToUpdate: []dto.UpdateTicketItemRequest{in}}, true)
}

// DeleteItem elimina una línea devolviendo stock y sesiones consumidas.
func (uc *BatchUpdateUseCase) DeleteItem(ctx context.Context, systemID, userID, ticketID, itemID string) (*dto.TicketResponse, error) {
	return uc.run(ctx, systemID, userID, ticketID, dto.BatchUpdateTicketRequest{ItemIDsToDelete: []string{itemID}}, true)
}

func (uc *BatchUpdateUseCase) run(
	ctx context.Context,
	systemID, userID, ticketID string,
	in dto.BatchUpdateTicketRequest,
	strict bool,
) (*dto.TicketResponse, error) {
	if systemID == "" || ticketID == "" {
		return nil, fmt.Errorf("%w: systemID y ticketID son obligatorios", domain.ErrInvalidInput)
	}
	now := uc.now()
	log := uc.log.With().Str("system_id", systemID).Str("ticket_id", ticketID).Logger()

	var resp *dto.TicketResponse
	err := uc.txRunner.RunTicket(ctx, func(r Repos) error {
		// ── 1. Bloquear ticket y validar estado ──────────────────────────────
		t, err := r.Tickets.GetForUpdate(ctx, systemID, ticketID)
		if err != nil {
			return fmt.Errorf("obtener ticket: %w", err)
		}
		if t == nil {
			return domain.ErrTicketNotFound
		}
		if !t.IsOpen() {
			return fmt.Errorf("%w (estado %s)", domain.ErrTicketNotOpen, t.Status)
		}
		clinic, err := r.Clinics.GetByID(ctx, t.ClinicID)
		if err != nil {
			return fmt.Errorf("obtener clínica: %w", err)
		}
		if clinic == nil || clinic.TariffID == nil || *clinic.TariffID == "" {
			return domain.ErrNoPriceList
		}

		lines := &lineMutator{
			r:        r,
			pricing:  NewPricingResolver(r.Catalog),
			log:      log,
			t:        t,
			tariffID: *clinic.TariffID,
			now:      now,
			strict:   strict,
		}
		ledger := &ledgerReconciler{r: r, log: log, t: t, userID: userID, now: now}

		// ── 2. Pagos a eliminar ──────────────────────────────────────────────
		if err := ledger.deletePayments(ctx, in.PaymentIDsToDelete); err != nil {
			return err
		}
		// ── 3. Líneas a eliminar ─────────────────────────────────────────────
		if err := lines.delete(ctx, in.ItemIDsToDelete); err != nil {
			return err
		}
		// ── 4. Cabecera ──────────────────────────────────────────────────────
		if err := applyScalarUpdates(ctx, r, t, in.ScalarUpdates); err != nil {
			return err
		}
		// ── 5. Líneas nuevas ─────────────────────────────────────────────────
		if err := lines.add(ctx, in.ItemsToAdd); err != nil {
			return err
		}
		// ── 6. Líneas modificadas ────────────────────────────────────────────
		if err := lines.update(ctx, in.ItemsToUpdate); err != nil {
			return err
		}
		// ── 7. Pagos nuevos ──────────────────────────────────────────────────
		if err := ledger.addPayments(ctx, in.PaymentsToAdd); err != nil {
			return err
		}
		// ── 8. Deuda aplazada ────────────────────────────────────────────────
		if in.AmountToDefer != nil {
			if err := ledger.applyDeferral(ctx, *in.AmountToDefer); err != nil {
				return err
			}
		}
		// ── 9. Totales desde cero ────────────────────────────────────────────
		if err := recalculateTotals(ctx, r, t); err != nil {
			return err
		}
		t.UpdatedAt = now
		if err := r.Tickets.UpdateHeader(ctx, t); err != nil {
			return fmt.Errorf("actualizar ticket: %w", err)
		}

		// ── 10. Instantánea final ────────────────────────────────────────────
		resp, err = loadSnapshot(ctx, r, systemID, ticketID)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("items_added", len(in.ItemsToAdd)).
		Int("items_updated", len(in.ItemsToUpdate)).
		Int("items_deleted", len(in.ItemIDsToDelete)).
		Int("payments_added", len(in.PaymentsToAdd)).
		Int("payments_deleted", len(in.PaymentIDsToDelete)).
		Str("final_amount", resp.FinalAmount.String()).
		Msg("ticket actualizado")
	return resp, nil
}

// recalculateTotals agrega líneas y pagos vigentes y vuelca el resultado en la cabecera.
func recalculateTotals(ctx context.Context, r Repos, t *entity.Ticket) error {
	items, err := r.Items.ListByTicket(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("listar líneas: %w", err)
	}
	payments, err := r.Payments.ListByTicket(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("listar pagos: %w", err)
	}
	global, err := domticket.GlobalDiscountOf(t)
	if err != nil {
		return err
	}
	domticket.Aggregate(items, global, payments).ApplyTo(t)
	return nil
}
