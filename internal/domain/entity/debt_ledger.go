package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus estado de una deuda aplazada.
type DebtStatus string

const (
	DebtStatusPending       DebtStatus = "PENDING"
	DebtStatusPartiallyPaid DebtStatus = "PARTIALLY_PAID"
	DebtStatusPaid          DebtStatus = "PAID"
	DebtStatusCancelled     DebtStatus = "CANCELLED"
)

// DebtLedger importe aplazado de un ticket a cargo de un cliente.
// Como mucho existe una entrada abierta (no PAID ni CANCELLED) por ticket.
type DebtLedger struct {
	ID             string
	TicketID       string
	ClientID       string
	ClinicID       string
	SystemID       string
	OriginalAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	PendingAmount  decimal.Decimal
	Status         DebtStatus
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOpen indica si la deuda sigue viva.
func (d *DebtLedger) IsOpen() bool {
	return d.Status != DebtStatusPaid && d.Status != DebtStatusCancelled
}
