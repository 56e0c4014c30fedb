package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus estado del documento de venta.
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "OPEN"      // Editable; único estado que admite cambios
	TicketStatusClosed    TicketStatus = "CLOSED"    // Cobrado y cerrado en caja
	TicketStatusAccounted TicketStatus = "ACCOUNTED" // Contabilizado (convertido a factura)
	TicketStatusVoid      TicketStatus = "VOID"
)

// DiscountType tipo de descuento global del ticket.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Ticket cabecera del documento de venta de una clínica.
// Los importes agregados (TotalAmount, TaxAmount, FinalAmount, PaidAmount, PendingAmount)
// se recalculan siempre a partir de líneas y pagos.
type Ticket struct {
	ID            string
	SystemID      string // tenant
	ClinicID      string
	ClientID      *string
	SellerUserID  *string
	CashierUserID *string
	CashSessionID *string
	TicketNumber  *string
	TicketSeries  *string
	Notes         *string
	Status        TicketStatus
	CurrencyCode  string
	IssueDate     time.Time

	DiscountType   *DiscountType
	DiscountAmount *decimal.Decimal
	DiscountReason *string

	TotalAmount        decimal.Decimal // neto tras descuentos de línea
	TaxAmount          decimal.Decimal
	FinalAmount        decimal.Decimal
	PaidAmount         decimal.Decimal // Σ pagos DEBIT vigentes
	PaidAmountDirectly decimal.Decimal // contador acumulado de pagos directos
	PendingAmount      decimal.Decimal
	DueAmount          *decimal.Decimal
	HasOpenDebt        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen indica si el ticket admite modificaciones.
func (t *Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen
}
