package ticket_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinica-api/internal/domain"
	"github.com/jhoicas/clinica-api/internal/domain/entity"
	"github.com/jhoicas/clinica-api/internal/domain/ticket"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceLine_SinDescuento(t *testing.T) {
	l, err := ticket.PriceLine(d("50"), d("2"), decimal.Zero, decimal.Zero, d("21"))
	require.NoError(t, err)
	assertDec(t, "100", l.Gross, "bruto")
	assertDec(t, "100", l.Net, "neto")
	assertDec(t, "21", l.Tax, "IVA")
}

func TestPriceLine_DescuentoMayorQueBruto(t *testing.T) {
	_, err := ticket.PriceLine(d("50"), d("1"), d("60"), decimal.Zero, d("21"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDiscount))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "InvalidDiscount es un error de validación")
}

func TestPriceLine_RedondeoIVA(t *testing.T) {
	l, err := ticket.PriceLine(d("9.99"), d("3"), decimal.Zero, decimal.Zero, d("21"))
	require.NoError(t, err)
	assertDec(t, "29.97", l.Net, "neto")
	assertDec(t, "6.29", l.Tax, "IVA redondeado a 2 decimales")
}

func TestRecalculateLine_NetoNuncaNegativo(t *testing.T) {
	l := ticket.RecalculateLine(d("40"), d("30"), d("20"), d("21"), nil)
	assertDec(t, "0", l.Net, "neto acotado")
	assertDec(t, "0", l.Tax, "IVA sobre neto acotado")
}

func TestRecalculateLine_OverrideNeto(t *testing.T) {
	l := ticket.RecalculateLine(d("100"), d("25"), decimal.Zero, d("10"), dp("75"))
	assertDec(t, "75", l.Net, "neto override")
	assertDec(t, "7.5", l.Tax, "IVA del neto override")
}

// ──────────────────────────────────────────────────────────────────────────────
// DiscountMode
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscountMode_Porcentaje(t *testing.T) {
	md := ticket.PercentageDiscount(d("10")).Apply(d("200"))
	assertDec(t, "20", md.Amount, "importe")
	require.NotNil(t, md.Percentage)
	assertDec(t, "10", *md.Percentage, "porcentaje guardado")
	assert.False(t, md.Overridden)
}

func TestDiscountMode_ImporteFijoLimpiaPorcentaje(t *testing.T) {
	md := ticket.FixedAmountDiscount(d("15")).Apply(d("200"))
	assertDec(t, "15", md.Amount, "importe")
	assert.Nil(t, md.Percentage)
}

func TestDiscountMode_NetOverride(t *testing.T) {
	cases := []struct {
		name, gross, net, manual string
	}{
		{"neto menor que bruto", "100", "80", "20"},
		{"neto igual a bruto", "100", "100", "0"},
		{"neto mayor que bruto", "100", "120", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			md := ticket.NetOverride(d(tc.net)).Apply(d(tc.gross))
			assertDec(t, tc.manual, md.Amount, "descuento manual = max(0, bruto - neto)")
			assert.Nil(t, md.Percentage)
			assert.True(t, md.Overridden)
			require.NotNil(t, md.OverrideNet)
			assertDec(t, tc.net, *md.OverrideNet, "neto deseado")
		})
	}
}

func TestModeOf(t *testing.T) {
	pct := d("5")
	assert.Equal(t, ticket.DiscountPercentage, ticket.ModeOf(&entity.TicketItem{ManualDiscountPercentage: &pct, ManualDiscountAmount: d("3")}).Kind())
	assert.Equal(t, ticket.DiscountFixedAmount, ticket.ModeOf(&entity.TicketItem{ManualDiscountAmount: d("3")}).Kind())
	assert.Equal(t, ticket.DiscountNone, ticket.ModeOf(&entity.TicketItem{}).Kind())
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento global
// ──────────────────────────────────────────────────────────────────────────────

func TestNewGlobalDiscount_TipoYValorJuntos(t *testing.T) {
	pct := entity.DiscountTypePercentage

	_, err := ticket.NewGlobalDiscount(&pct, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidGlobalDiscount, "tipo sin valor")

	_, err = ticket.NewGlobalDiscount(&pct, dp("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidGlobalDiscount, "tipo con valor cero")

	_, err = ticket.NewGlobalDiscount(nil, dp("5"))
	assert.ErrorIs(t, err, domain.ErrInvalidGlobalDiscount, "valor sin tipo")

	g, err := ticket.NewGlobalDiscount(nil, dp("0"))
	require.NoError(t, err, "valor cero sin tipo equivale a sin descuento")
	assert.Equal(t, ticket.GlobalNone, g.Kind)

	g, err = ticket.NewGlobalDiscount(&pct, dp("10"))
	require.NoError(t, err)
	assert.Equal(t, ticket.GlobalPercentage, g.Kind)
}

func TestGlobalDiscount_EffectiveAcotado(t *testing.T) {
	fixed := entity.DiscountTypeFixedAmount
	g, err := ticket.NewGlobalDiscount(&fixed, dp("500"))
	require.NoError(t, err)
	assertDec(t, "80", g.Effective(d("80")), "no supera la base")

	pct := entity.DiscountTypePercentage
	g, err = ticket.NewGlobalDiscount(&pct, dp("150"))
	require.NoError(t, err)
	assertDec(t, "80", g.Effective(d("80")), "porcentaje > 100 acotado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func item(unit, qty, manual, promo, vat string) *entity.TicketItem {
	it := &entity.TicketItem{
		UnitPrice:               d(unit),
		Quantity:                d(qty),
		ManualDiscountAmount:    d(manual),
		PromotionDiscountAmount: d(promo),
		VATRate:                 d("21"),
	}
	it.VATAmount = d(vat)
	return it
}

func TestAggregate_DescuentoGlobalPorcentaje(t *testing.T) {
	items := []*entity.TicketItem{
		item("50", "1", "0", "0", "10.50"),
		item("30", "1", "0", "0", "6.30"),
	}
	pct := entity.DiscountTypePercentage
	g, err := ticket.NewGlobalDiscount(&pct, dp("10"))
	require.NoError(t, err)

	tot := ticket.Aggregate(items, g, nil)
	assertDec(t, "80", tot.NetAfterLineDiscounts, "neto")
	assertDec(t, "8", tot.GlobalDiscount, "descuento global")
	assertDec(t, "16.80", tot.TaxTotal, "IVA")
	assertDec(t, "88.80", tot.FinalAmount, "total")
	assertDec(t, "88.80", tot.PendingAmount, "pendiente")
}

func TestAggregate_PagadoSoloDebitos(t *testing.T) {
	items := []*entity.TicketItem{item("100", "1", "0", "0", "21")}
	payments := []*entity.Payment{
		{Type: entity.PaymentTypeDebit, Amount: d("50")},
		{Type: entity.PaymentTypeCredit, Amount: d("10")},
		{Type: entity.PaymentTypeDebit, Amount: d("20.5")},
	}
	tot := ticket.Aggregate(items, ticket.GlobalDiscount{}, payments)
	assertDec(t, "121", tot.FinalAmount, "total")
	assertDec(t, "70.5", tot.PaidAmount, "pagado")
	assertDec(t, "50.5", tot.PendingAmount, "pendiente")
}

func TestAggregate_Idempotente(t *testing.T) {
	items := []*entity.TicketItem{item("19.99", "3", "5", "1", "11.33")}
	first := ticket.Aggregate(items, ticket.GlobalDiscount{}, nil)
	second := ticket.Aggregate(items, ticket.GlobalDiscount{}, nil)
	assert.True(t, first.FinalAmount.Equal(second.FinalAmount))
	assert.True(t, first.PendingAmount.Equal(second.PendingAmount))
}

func TestAggregate_TicketVacio(t *testing.T) {
	tot := ticket.Aggregate(nil, ticket.GlobalDiscount{}, nil)
	assert.True(t, tot.FinalAmount.IsZero())
	assert.True(t, tot.PendingAmount.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de precio
// ──────────────────────────────────────────────────────────────────────────────

func TestResolvePrice_Prioridad(t *testing.T) {
	vatItem := &entity.VATType{ID: "v1", Rate: d("21")}
	vatTariff := &entity.VATType{ID: "v2", Rate: d("10")}

	r, err := ticket.ResolvePrice(ticket.PriceSources{
		ItemType:        entity.TicketItemTypeService,
		ManualUnitPrice: dp("12"),
		TariffPrice:     dp("30"),
		TariffVAT:       vatTariff,
		BasePrice:       dp("40"),
		ItemVAT:         vatItem,
	})
	require.NoError(t, err)
	assertDec(t, "12", r.UnitPrice, "precio manual primero")
	assert.Equal(t, "v2", r.VAT.ID, "IVA de tarifa primero")

	r, err = ticket.ResolvePrice(ticket.PriceSources{
		ItemType:  entity.TicketItemTypeService,
		BasePrice: dp("40"),
		ItemVAT:   vatItem,
	})
	require.NoError(t, err)
	assertDec(t, "40", r.UnitPrice, "precio base como último recurso")
	assert.Equal(t, "v1", r.VAT.ID)
}

func TestResolvePrice_SinPrecio(t *testing.T) {
	_, err := ticket.ResolvePrice(ticket.PriceSources{ItemType: entity.TicketItemTypeProduct, ItemVAT: &entity.VATType{}})
	assert.ErrorIs(t, err, domain.ErrNoValidPrice)

	_, err = ticket.ResolvePrice(ticket.PriceSources{ItemType: entity.TicketItemTypeProduct, ManualUnitPrice: dp("-1"), ItemVAT: &entity.VATType{}})
	assert.ErrorIs(t, err, domain.ErrNoValidPrice, "precio negativo")
}

func TestResolvePrice_IVAPorDefectoSoloBonosYPaquetes(t *testing.T) {
	def := func() (*entity.VATType, error) { return &entity.VATType{ID: "def", Rate: d("21")}, nil }

	r, err := ticket.ResolvePrice(ticket.PriceSources{
		ItemType:   entity.TicketItemTypeBonoDefinition,
		BasePrice:  dp("100"),
		DefaultVAT: def,
	})
	require.NoError(t, err)
	assert.Equal(t, "def", r.VAT.ID)

	_, err = ticket.ResolvePrice(ticket.PriceSources{
		ItemType:   entity.TicketItemTypeProduct,
		BasePrice:  dp("100"),
		DefaultVAT: def,
	})
	assert.ErrorIs(t, err, domain.ErrNoTaxRateConfigured)
}
