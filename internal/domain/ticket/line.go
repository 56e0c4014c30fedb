package ticket

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain"
)

// LineAmounts importes calculados de una línea.
type LineAmounts struct {
	Gross decimal.Decimal
	Net   decimal.Decimal // neto antes de impuestos
	Tax   decimal.Decimal
}

// PriceLine calcula una línea nueva. Un descuento que deja el neto en negativo es un error.
func PriceLine(unitPrice, quantity, manualDiscount, promotionDiscount, vatRate decimal.Decimal) (LineAmounts, error) {
	gross := unitPrice.Mul(quantity)
	net := gross.Sub(manualDiscount).Sub(promotionDiscount)
	if net.IsNegative() && (manualDiscount.IsPositive() || promotionDiscount.IsPositive()) {
		return LineAmounts{}, domain.ErrInvalidDiscount
	}
	net = Round2(nonNegative(net))
	return LineAmounts{
		Gross: gross,
		Net:   net,
		Tax:   Round2(Percent(net, vatRate)),
	}, nil
}

// RecalculateLine recalcula neto e impuesto de una línea existente con su tipo de IVA guardado.
// overrideNet, si viene, sustituye al neto derivado de los descuentos.
func RecalculateLine(gross, manualDiscount, promotionDiscount, vatRate decimal.Decimal, overrideNet *decimal.Decimal) LineAmounts {
	net := gross.Sub(manualDiscount).Sub(promotionDiscount)
	if overrideNet != nil {
		net = *overrideNet
	}
	net = Round2(nonNegative(net))
	return LineAmounts{
		Gross: gross,
		Net:   net,
		Tax:   Round2(Percent(net, vatRate)),
	}
}
