package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var _ repository.DebtLedgerRepository = (*DebtLedgerRepo)(nil)

// DebtLedgerRepo deudas aplazadas sobre PostgreSQL.
type DebtLedgerRepo struct {
	q Querier
}

func NewDebtLedgerRepository(q Querier) *DebtLedgerRepo {
	return &DebtLedgerRepo{q: q}
}

const debtLedgerColumns = `
	id, ticket_id, client_id, clinic_id, system_id, original_amount, paid_amount,
	pending_amount, status, notes, created_at, updated_at`

// FindOpenByTicket devuelve la deuda abierta más reciente del ticket. (nil, nil) si no hay.
func (r *DebtLedgerRepo) FindOpenByTicket(ctx context.Context, ticketID string) (*entity.DebtLedger, error) {
	query := `SELECT ` + debtLedgerColumns + ` FROM debt_ledgers
		WHERE ticket_id = $1 AND status NOT IN ('PAID', 'CANCELLED')
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`
	d, err := scanDebtLedger(r.q.QueryRow(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open debt: %w", err)
	}
	return d, nil
}

func (r *DebtLedgerRepo) Create(ctx context.Context, d *entity.DebtLedger) error {
	query := `
		INSERT INTO debt_ledgers (` + debtLedgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.TicketID, d.ClientID, d.ClinicID, d.SystemID, d.OriginalAmount, d.PaidAmount,
		d.PendingAmount, string(d.Status), d.Notes, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create debt ledger: %w", err)
	}
	return nil
}

func (r *DebtLedgerRepo) Update(ctx context.Context, d *entity.DebtLedger) error {
	query := `
		UPDATE debt_ledgers SET
			original_amount = $2, paid_amount = $3, pending_amount = $4,
			status = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.OriginalAmount, d.PaidAmount, d.PendingAmount, string(d.Status), d.Notes, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update debt ledger: %w", err)
	}
	return nil
}

func (r *DebtLedgerRepo) ListByTicket(ctx context.Context, ticketID string) ([]*entity.DebtLedger, error) {
	query := `SELECT ` + debtLedgerColumns + ` FROM debt_ledgers WHERE ticket_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list debt ledgers: %w", err)
	}
	defer rows.Close()

	var list []*entity.DebtLedger
	for rows.Next() {
		d, err := scanDebtLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt ledger: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDebtLedger(row pgx.Row) (*entity.DebtLedger, error) {
	var d entity.DebtLedger
	var status string
	err := row.Scan(
		&d.ID, &d.TicketID, &d.ClientID, &d.ClinicID, &d.SystemID, &d.OriginalAmount, &d.PaidAmount,
		&d.PendingAmount, &status, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Status = entity.DebtStatus(status)
	return &d, nil
}
