package ticket

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
)

// DiscountKind variante activa de un DiscountMode.
type DiscountKind int

const (
	DiscountNone DiscountKind = iota
	DiscountPercentage
	DiscountFixedAmount
	DiscountNetOverride
)

// DiscountMode descuento manual de una línea: como mucho una variante a la vez.
type DiscountMode struct {
	kind  DiscountKind
	value decimal.Decimal
}

func NoDiscount() DiscountMode { return DiscountMode{kind: DiscountNone} }

func PercentageDiscount(pct decimal.Decimal) DiscountMode {
	return DiscountMode{kind: DiscountPercentage, value: pct}
}

func FixedAmountDiscount(amount decimal.Decimal) DiscountMode {
	if !amount.IsPositive() {
		return NoDiscount()
	}
	return DiscountMode{kind: DiscountFixedAmount, value: amount}
}

// NetOverride fija directamente el neto deseado de la línea.
func NetOverride(net decimal.Decimal) DiscountMode {
	return DiscountMode{kind: DiscountNetOverride, value: net}
}

func (m DiscountMode) Kind() DiscountKind      { return m.kind }
func (m DiscountMode) Value() decimal.Decimal { return m.value }

// ModeOf deduce el modo vigente de una línea persistida.
// Un override de neto no es persistente: queda guardado como importe fijo.
func ModeOf(item *entity.TicketItem) DiscountMode {
	if item.ManualDiscountPercentage != nil {
		return PercentageDiscount(*item.ManualDiscountPercentage)
	}
	return FixedAmountDiscount(item.ManualDiscountAmount)
}

// ManualDiscount resultado de aplicar un DiscountMode sobre el bruto de la línea.
type ManualDiscount struct {
	Amount      decimal.Decimal
	Percentage  *decimal.Decimal
	Overridden  bool
	OverrideNet *decimal.Decimal
}

// Apply resuelve el descuento manual para un bruto dado.
func (m DiscountMode) Apply(gross decimal.Decimal) ManualDiscount {
	switch m.kind {
	case DiscountPercentage:
		pct := m.value
		return ManualDiscount{Amount: Round2(Percent(gross, pct)), Percentage: &pct}
	case DiscountFixedAmount:
		return ManualDiscount{Amount: m.value}
	case DiscountNetOverride:
		net := m.value
		return ManualDiscount{
			Amount:      Round2(nonNegative(gross.Sub(net))),
			Overridden:  true,
			OverrideNet: &net,
		}
	default:
		return ManualDiscount{Amount: decimal.Zero}
	}
}

// GlobalDiscountKind variante del descuento global.
type GlobalDiscountKind int

const (
	GlobalNone GlobalDiscountKind = iota
	GlobalPercentage
	GlobalFixedAmount
)

// GlobalDiscount descuento a nivel de cabecera.
type GlobalDiscount struct {
	Kind  GlobalDiscountKind
	Value decimal.Decimal
}

// NewGlobalDiscount exige tipo y valor > 0 juntos, o ninguno de los dos.
func NewGlobalDiscount(typ *entity.DiscountType, value *decimal.Decimal) (GlobalDiscount, error) {
	hasType := typ != nil
	hasValue := value != nil && !value.IsZero()
	if hasType != hasValue {
		return GlobalDiscount{}, domain.ErrInvalidGlobalDiscount
	}
	if !hasType {
		return GlobalDiscount{Kind: GlobalNone}, nil
	}
	if value.IsNegative() {
		return GlobalDiscount{}, domain.ErrInvalidGlobalDiscount
	}
	switch *typ {
	case entity.DiscountTypePercentage:
		return GlobalDiscount{Kind: GlobalPercentage, Value: *value}, nil
	case entity.DiscountTypeFixedAmount:
		return GlobalDiscount{Kind: GlobalFixedAmount, Value: *value}, nil
	}
	return GlobalDiscount{}, domain.ErrInvalidGlobalDiscount
}

// GlobalDiscountOf lee el descuento global guardado en el ticket.
func GlobalDiscountOf(t *entity.Ticket) (GlobalDiscount, error) {
	return NewGlobalDiscount(t.DiscountType, t.DiscountAmount)
}

// Effective importe efectivo sobre la base, acotado a [0, base].
func (g GlobalDiscount) Effective(base decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch g.Kind {
	case GlobalPercentage:
		d = Percent(base, g.Value)
	case GlobalFixedAmount:
		d = g.Value
	default:
		return decimal.Zero
	}
	return Round2(clamp(d, decimal.Zero, nonNegative(base)))
}
