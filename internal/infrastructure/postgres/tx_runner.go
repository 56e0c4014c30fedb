package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/clinica-api/internal/application/ticket"
)

var _ ticket.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTicket inicia una transacción, ejecuta fn con todos los repos del ticket atados a la tx
// y hace Commit, o Rollback si fn devuelve error.
func (r *TxRunner) RunTicket(ctx context.Context, fn func(r ticket.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ticketRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func ticketRepos(q Querier) ticket.Repos {
	return ticket.Repos{
		Tickets:        NewTicketRepository(q),
		Items:          NewTicketItemRepository(q),
		Payments:       NewPaymentRepository(q),
		Debts:          NewDebtLedgerRepository(q),
		Catalog:        NewCatalogRepository(q),
		Stock:          NewStockRepository(q),
		Consumption:    NewConsumptionRepository(q),
		PaymentMethods: NewPaymentMethodRepository(q),
		CashSessions:   NewCashSessionRepository(q),
		Clinics:        NewClinicRepository(q),
		Parties:        NewPartyRepository(q),
	}
}
