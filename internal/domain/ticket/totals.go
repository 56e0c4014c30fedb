package ticket

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// Totals agregados de cabecera.
type Totals struct {
	Gross                 decimal.Decimal
	LineDiscounts         decimal.Decimal
	NetAfterLineDiscounts decimal.Decimal
	TaxTotal              decimal.Decimal
	GlobalDiscount        decimal.Decimal
	FinalAmount           decimal.Decimal
	PaidAmount            decimal.Decimal
	PendingAmount         decimal.Decimal
}

// Aggregate recalcula los totales desde cero. Es puro e idempotente:
// el importe pagado se deriva de los pagos DEBIT vigentes, nunca de un contador.
func Aggregate(items []*entity.TicketItem, global GlobalDiscount, payments []*entity.Payment) Totals {
	var t Totals
	for _, it := range items {
		t.Gross = t.Gross.Add(it.Gross())
		t.LineDiscounts = t.LineDiscounts.Add(it.LineDiscounts())
		t.TaxTotal = t.TaxTotal.Add(it.VATAmount)
	}
	t.Gross = Round2(t.Gross)
	t.LineDiscounts = Round2(t.LineDiscounts)
	t.NetAfterLineDiscounts = t.Gross.Sub(t.LineDiscounts)
	t.TaxTotal = Round2(t.TaxTotal)
	t.GlobalDiscount = global.Effective(t.NetAfterLineDiscounts)
	t.FinalAmount = Round2(t.NetAfterLineDiscounts.Sub(t.GlobalDiscount).Add(t.TaxTotal))

	for _, p := range payments {
		if p.Type == entity.PaymentTypeDebit {
			t.PaidAmount = t.PaidAmount.Add(p.Amount)
		}
	}
	t.PaidAmount = Round2(t.PaidAmount)
	t.PendingAmount = t.FinalAmount.Sub(t.PaidAmount)
	return t
}

// ApplyTo copia los totales a la cabecera.
func (t Totals) ApplyTo(tk *entity.Ticket) {
	tk.TotalAmount = t.NetAfterLineDiscounts
	tk.TaxAmount = t.TaxTotal
	tk.FinalAmount = t.FinalAmount
	tk.PaidAmount = t.PaidAmount
	tk.PendingAmount = t.PendingAmount
}
