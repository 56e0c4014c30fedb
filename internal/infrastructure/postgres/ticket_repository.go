package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación de TicketRepository sobre PostgreSQL (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador de tickets. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

const ticketColumns = `
	id, system_id, clinic_id, client_id, seller_user_id, cashier_user_id, cash_session_id,
	ticket_number, ticket_series, notes, status, currency_code, issue_date,
	discount_type, discount_amount, discount_reason,
	total_amount, tax_amount, final_amount, paid_amount, paid_amount_directly, pending_amount,
	due_amount, has_open_debt, created_at, updated_at`

// GetByID obtiene el ticket del tenant. (nil, nil) si no existe.
func (r *TicketRepo) GetByID(ctx context.Context, systemID, id string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 AND system_id = $2`
	t, err := scanTicket(r.q.QueryRow(ctx, query, id, systemID))
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene el ticket y bloquea la fila hasta el fin de la transacción.
func (r *TicketRepo) GetForUpdate(ctx context.Context, systemID, id string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 AND system_id = $2 FOR UPDATE`
	t, err := scanTicket(r.q.QueryRow(ctx, query, id, systemID))
	if err != nil {
		return nil, fmt.Errorf("get ticket for update: %w", err)
	}
	return t, nil
}

// UpdateHeader persiste los campos editables y los totales de la cabecera.
func (r *TicketRepo) UpdateHeader(ctx context.Context, t *entity.Ticket) error {
	query := `
		UPDATE tickets SET
			client_id = $3, seller_user_id = $4, cash_session_id = $5,
			ticket_series = $6, notes = $7,
			discount_type = $8, discount_amount = $9, discount_reason = $10,
			total_amount = $11, tax_amount = $12, final_amount = $13,
			paid_amount = $14, paid_amount_directly = $15, pending_amount = $16,
			due_amount = $17, has_open_debt = $18, updated_at = $19
		WHERE id = $1 AND system_id = $2`
	var discountType *string
	if t.DiscountType != nil {
		s := string(*t.DiscountType)
		discountType = &s
	}
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.SystemID,
		t.ClientID, t.SellerUserID, t.CashSessionID,
		t.TicketSeries, t.Notes,
		discountType, t.DiscountAmount, t.DiscountReason,
		t.TotalAmount, t.TaxAmount, t.FinalAmount,
		t.PaidAmount, t.PaidAmountDirectly, t.PendingAmount,
		t.DueAmount, t.HasOpenDebt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update ticket: %w", pgx.ErrNoRows)
	}
	return nil
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	var status string
	var discountType *string
	err := row.Scan(
		&t.ID, &t.SystemID, &t.ClinicID, &t.ClientID, &t.SellerUserID, &t.CashierUserID, &t.CashSessionID,
		&t.TicketNumber, &t.TicketSeries, &t.Notes, &status, &t.CurrencyCode, &t.IssueDate,
		&discountType, &t.DiscountAmount, &t.DiscountReason,
		&t.TotalAmount, &t.TaxAmount, &t.FinalAmount, &t.PaidAmount, &t.PaidAmountDirectly, &t.PendingAmount,
		&t.DueAmount, &t.HasOpenDebt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.Status = entity.TicketStatus(status)
	if discountType != nil {
		dt := entity.DiscountType(*discountType)
		t.DiscountType = &dt
	}
	return &t, nil
}
