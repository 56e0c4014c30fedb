package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType dirección del movimiento.
type PaymentType string

const (
	PaymentTypeDebit  PaymentType = "DEBIT"  // cobro al cliente
	PaymentTypeCredit PaymentType = "CREDIT" // devolución
)

// Payment registro de pago asociado a un ticket.
type Payment struct {
	ID                        string
	TicketID                  string
	SystemID                  string
	ClinicID                  string
	UserID                    *string
	PaymentMethodDefinitionID string
	CashSessionID             *string
	DebtLedgerID              *string
	Type                      PaymentType
	Amount                    decimal.Decimal
	PaymentDate               time.Time
	TransactionReference      *string
	Notes                     *string
	CreatedAt                 time.Time
}

// PaymentMethodDefinition método de pago configurado por el tenant.
type PaymentMethodDefinition struct {
	ID       string
	SystemID string
	Name     string
	Code     string
	IsActive bool
}
