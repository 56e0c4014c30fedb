package ticket

import (
	"context"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Tickets        repository.TicketRepository
	Items          repository.TicketItemRepository
	Payments       repository.PaymentRepository
	Debts          repository.DebtLedgerRepository
	Catalog        repository.CatalogRepository
	Stock          repository.StockRepository
	Consumption    repository.ConsumptionRepository
	PaymentMethods repository.PaymentMethodRepository
	CashSessions   repository.CashSessionRepository
	Clinics        repository.ClinicRepository
	Parties        repository.PartyRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback de todo.
type TxRunner interface {
	RunTicket(ctx context.Context, fn func(r Repos) error) error
}

// ReceiptRenderer genera el PDF del ticket.
type ReceiptRenderer interface {
	Render(snapshot *dto.TicketResponse, size string) ([]byte, error)
}
