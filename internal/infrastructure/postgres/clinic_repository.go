package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

var (
	_ repository.ClinicRepository        = (*ClinicRepo)(nil)
	_ repository.CashSessionRepository   = (*CashSessionRepo)(nil)
	_ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)
	_ repository.PartyRepository         = (*PartyRepo)(nil)
)

// ClinicRepo datos de la clínica emisora.
type ClinicRepo struct {
	q Querier
}

func NewClinicRepository(q Querier) *ClinicRepo {
	return &ClinicRepo{q: q}
}

func (r *ClinicRepo) GetByID(ctx context.Context, id string) (*entity.Clinic, error) {
	query := `
		SELECT id, system_id, name, tariff_id, currency, tax_id, address, city,
		       postal_code, phone, email, ticket_size
		FROM clinics WHERE id = $1`
	var c entity.Clinic
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.SystemID, &c.Name, &c.TariffID, &c.Currency, &c.TaxID, &c.Address, &c.City,
		&c.PostalCode, &c.Phone, &c.Email, &c.TicketSize,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clinic: %w", err)
	}
	return &c, nil
}

// CashSessionRepo sesiones de caja.
type CashSessionRepo struct {
	q Querier
}

func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const cashSessionColumns = `id, session_number, clinic_id, system_id, status, opening_time, closing_time`

// FindOpen (nil, nil) si la clínica no tiene caja abierta.
func (r *CashSessionRepo) FindOpen(ctx context.Context, systemID, clinicID string) (*entity.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions
		WHERE system_id = $1 AND clinic_id = $2 AND status = 'OPEN'
		ORDER BY opening_time DESC
		LIMIT 1`
	s, err := scanCashSession(r.q.QueryRow(ctx, query, systemID, clinicID))
	if err != nil {
		return nil, fmt.Errorf("find open cash session: %w", err)
	}
	return s, nil
}

func (r *CashSessionRepo) GetByID(ctx context.Context, id string) (*entity.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE id = $1`
	s, err := scanCashSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return s, nil
}

func scanCashSession(row pgx.Row) (*entity.CashSession, error) {
	var s entity.CashSession
	err := row.Scan(&s.ID, &s.SessionNumber, &s.ClinicID, &s.SystemID, &s.Status, &s.OpeningTime, &s.ClosingTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// PaymentMethodRepo métodos de pago configurados por el tenant.
type PaymentMethodRepo struct {
	q Querier
}

func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

func (r *PaymentMethodRepo) GetByID(ctx context.Context, systemID, id string) (*entity.PaymentMethodDefinition, error) {
	query := `
		SELECT id, system_id, name, code, is_active
		FROM payment_method_definitions WHERE id = $1 AND system_id = $2`
	var m entity.PaymentMethodDefinition
	err := r.q.QueryRow(ctx, query, id, systemID).Scan(&m.ID, &m.SystemID, &m.Name, &m.Code, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// PartyRepo comprobaciones de existencia de clientes y usuarios del tenant.
type PartyRepo struct {
	q Querier
}

func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

func (r *PartyRepo) ClientExists(ctx context.Context, systemID, clientID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1 AND system_id = $2)`, clientID, systemID)
}

func (r *PartyRepo) UserExists(ctx context.Context, systemID, userID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND system_id = $2)`, userID, systemID)
}

func (r *PartyRepo) exists(ctx context.Context, query, id, systemID string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, id, systemID).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}
