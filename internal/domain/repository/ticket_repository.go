package repository

import (
	"context"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// TicketRepository define el puerto de persistencia para la cabecera del ticket (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type TicketRepository interface {
	GetByID(ctx context.Context, systemID, id string) (*entity.Ticket, error)
	// GetForUpdate bloquea la fila del ticket hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, systemID, id string) (*entity.Ticket, error)
	UpdateHeader(ctx context.Context, t *entity.Ticket) error
}

// TicketItemRepository líneas del ticket.
type TicketItemRepository interface {
	Create(ctx context.Context, item *entity.TicketItem) error
	Update(ctx context.Context, item *entity.TicketItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, ticketID, id string) (*entity.TicketItem, error)
	ListByTicket(ctx context.Context, ticketID string) ([]*entity.TicketItem, error)
}

// PaymentRepository pagos del ticket.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, ticketID, id string) (*entity.Payment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]*entity.Payment, error)
}

// DebtLedgerRepository deudas aplazadas del ticket.
type DebtLedgerRepository interface {
	// FindOpenByTicket devuelve la deuda no PAID ni CANCELLED del ticket, si existe.
	FindOpenByTicket(ctx context.Context, ticketID string) (*entity.DebtLedger, error)
	Create(ctx context.Context, d *entity.DebtLedger) error
	Update(ctx context.Context, d *entity.DebtLedger) error
	ListByTicket(ctx context.Context, ticketID string) ([]*entity.DebtLedger, error)
}
