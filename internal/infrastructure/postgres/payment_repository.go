package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos del ticket sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, ticket_id, system_id, clinic_id, user_id, payment_method_definition_id, cash_session_id,
	debt_ledger_id, type, amount, payment_date, transaction_reference, notes, created_at`

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TicketID, p.SystemID, p.ClinicID, p.UserID, p.PaymentMethodDefinitionID, p.CashSessionID,
		p.DebtLedgerID, string(p.Type), p.Amount, p.PaymentDate, p.TransactionReference, p.Notes, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create payment: pago duplicado %s: %w", p.ID, err)
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// GetByID (nil, nil) si el pago no existe o es de otro ticket.
func (r *PaymentRepo) GetByID(ctx context.Context, ticketID, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND ticket_id = $2`
	p, err := scanPayment(r.q.QueryRow(ctx, query, id, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepo) ListByTicket(ctx context.Context, ticketID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ticket_id = $1 ORDER BY payment_date, created_at`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var typ string
	err := row.Scan(
		&p.ID, &p.TicketID, &p.SystemID, &p.ClinicID, &p.UserID, &p.PaymentMethodDefinitionID, &p.CashSessionID,
		&p.DebtLedgerID, &typ, &p.Amount, &p.PaymentDate, &p.TransactionReference, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = entity.PaymentType(typ)
	return &p, nil
}
