// Package pdf genera el recibo imprimible del ticket con Maroto v2.
//
// Formatos:
//
//	80mm / 58mm  rollo térmico: una columna, alto calculado según las líneas
//	A4           hoja completa con tabla de líneas y bloque de totales
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	appticket "github.com/jhoicas/clinica-api/internal/application/ticket"
)

var _ appticket.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReceiptRenderer implementa ticket.ReceiptRenderer usando Maroto v2.
type ReceiptRenderer struct{}

// NewReceiptRenderer construye el generador.
func NewReceiptRenderer() *ReceiptRenderer { return &ReceiptRenderer{} }

// Render genera el PDF del ticket en el tamaño pedido y devuelve sus bytes.
func (g *ReceiptRenderer) Render(t *dto.TicketResponse, size string) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("pdf: ticket nil")
	}
	layout := layoutFor(size, len(t.Items), len(t.Payments))

	b := config.NewBuilder().
		WithLeftMargin(layout.margin).WithRightMargin(layout.margin).
		WithTopMargin(layout.margin).WithBottomMargin(layout.margin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: layout.font}).
		WithTitle("Ticket "+ticketLabel(t), true)
	if layout.a4 {
		b = b.WithPageSize(pagesize.A4)
	} else {
		b = b.WithDimensions(layout.width, layout.height)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRows(t, layout)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if layout.a4 {
		m.AddRows(tableHeaderRow(layout))
	}
	m.AddRows(itemRows(t, layout)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRows(t, layout)...)
	if len(t.Payments) > 0 {
		m.AddRows(paymentRows(t, layout)...)
	}
	m.AddRows(footerRows(t, layout)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// layout medidas en milímetros según el formato.
type layout struct {
	a4     bool
	width  float64
	height float64
	margin float64
	font   float64
}

func layoutFor(size string, items, payments int) layout {
	switch size {
	case "A4":
		return layout{a4: true, margin: 10, font: 9}
	case "58mm":
		return layout{width: 58, height: rollHeight(items, payments), margin: 2, font: 6}
	default:
		return layout{width: 80, height: rollHeight(items, payments), margin: 3, font: 7}
	}
}

// rollHeight alto del rollo: cabecera, totales y pie fijos más una franja por línea y pago.
func rollHeight(items, payments int) float64 {
	return 110 + float64(items)*9 + float64(payments)*5
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(t *dto.TicketResponse, l layout) []core.Row {
	name := nonEmpty(t.ClinicName, "Clínica")
	fecha := t.IssueDate
	if len(fecha) >= 10 {
		fecha = fecha[:10]
	}
	if l.a4 {
		return []core.Row{
			row.New(16).Add(
				col.New(7).Add(
					text.New(name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
				),
				col.New(5).Add(
					text.New("TICKET "+ticketLabel(t), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
					text.New("Fecha: "+fecha, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
				),
			),
		}
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: l.font + 2, Align: align.Center}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("Ticket "+ticketLabel(t)+"  "+fecha, props.Text{Size: l.font, Align: align.Center, Color: colorGray}),
		)),
	}
}

func tableHeaderRow(l layout) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: l.font, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Dto.", 1, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

func itemRows(t *dto.TicketResponse, l layout) []core.Row {
	rows := make([]core.Row, 0, len(t.Items)*2)
	small := props.Text{Size: l.font, Top: 0.5}
	for _, it := range t.Items {
		discount := it.ManualDiscountAmount.Add(it.PromotionDiscountAmount)
		lineTotal := it.FinalPrice.Add(it.VATAmount)
		if l.a4 {
			rows = append(rows, row.New(6).Add(
				col.New(1).Add(text.New(it.Quantity.String(), withAlign(small, align.Center))),
				col.New(5).Add(text.New(it.Description, withAlign(small, align.Left))),
				col.New(2).Add(text.New(money(it.UnitPrice, t.CurrencyCode), withAlign(small, align.Right))),
				col.New(1).Add(text.New(money(discount, ""), withAlign(small, align.Right))),
				col.New(1).Add(text.New(it.VATRate.StringFixed(0)+"%", withAlign(small, align.Center))),
				col.New(2).Add(text.New(money(lineTotal, t.CurrencyCode), withAlign(small, align.Right))),
			))
			continue
		}
		rows = append(rows,
			row.New(4).Add(col.New(12).Add(text.New(it.Description, withAlign(small, align.Left)))),
			row.New(4).Add(
				col.New(7).Add(text.New(
					fmt.Sprintf("%s x %s", it.Quantity.String(), money(it.UnitPrice, "")),
					props.Text{Size: l.font, Color: colorGray},
				)),
				col.New(5).Add(text.New(money(lineTotal, t.CurrencyCode), withAlign(small, align.Right))),
			),
		)
		if discount.IsPositive() {
			rows = append(rows, row.New(3).Add(col.New(12).Add(text.New(
				"Descuento -"+money(discount, ""), props.Text{Size: l.font - 1, Color: colorGray},
			))))
		}
	}
	return rows
}

func totalRows(t *dto.TicketResponse, l layout) []core.Row {
	pair := func(label string, v decimal.Decimal, bold bool) core.Row {
		p := props.Text{Size: l.font, Top: 0.5}
		if bold {
			p.Style = fontstyle.Bold
			p.Size = l.font + 1
			p.Color = colorPrimary
		}
		return row.New(5).Add(
			col.New(7).Add(text.New(label, withAlign(p, align.Right))),
			col.New(5).Add(text.New(money(v, t.CurrencyCode), withAlign(p, align.Right))),
		)
	}
	rows := []core.Row{
		pair("Base imponible:", t.TotalAmount, false),
		pair("IVA:", t.TaxAmount, false),
	}
	if t.DiscountType != nil && t.DiscountAmount != nil {
		label := "Descuento global:"
		if *t.DiscountType == "PERCENTAGE" {
			label = fmt.Sprintf("Descuento global (%s%%):", t.DiscountAmount.String())
		}
		// El importe efectivo es la diferencia entre bruto con IVA y total final.
		applied := t.TotalAmount.Add(t.TaxAmount).Sub(t.FinalAmount)
		rows = append(rows, pair(label, applied.Neg(), false))
	}
	rows = append(rows,
		pair("TOTAL:", t.FinalAmount, true),
		pair("Pagado:", t.PaidAmount, false),
		pair("Pendiente:", t.PendingAmount, false),
	)
	return rows
}

func paymentRows(t *dto.TicketResponse, l layout) []core.Row {
	rows := []core.Row{
		row.New(5).Add(col.New(12).Add(text.New("Pagos", props.Text{Style: fontstyle.Bold, Size: l.font, Top: 1}))),
	}
	for _, p := range t.Payments {
		date := p.PaymentDate
		if len(date) >= 10 {
			date = date[:10]
		}
		rows = append(rows, row.New(4).Add(
			col.New(7).Add(text.New(date+"  "+p.Type, props.Text{Size: l.font, Color: colorGray})),
			col.New(5).Add(text.New(money(p.Amount, t.CurrencyCode), props.Text{Size: l.font, Align: align.Right})),
		))
	}
	return rows
}

func footerRows(t *dto.TicketResponse, l layout) []core.Row {
	qrHeight := 22.0
	if l.a4 {
		qrHeight = 30
	}
	rows := []core.Row{row.New(3)}
	if t.HasOpenDebt && t.DueAmount != nil {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(
			"Importe aplazado: "+money(*t.DueAmount, t.CurrencyCode),
			props.Text{Style: fontstyle.Bold, Size: l.font, Align: align.Center},
		))))
	}
	rows = append(rows,
		row.New(qrHeight).Add(col.New(12).Add(code.NewQr(t.ID, props.Rect{Percent: 90, Center: true}))),
		row.New(5).Add(col.New(12).Add(text.New(
			"Gracias por su visita", props.Text{Size: l.font, Align: align.Center, Color: colorGray, Top: 1},
		))),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func ticketLabel(t *dto.TicketResponse) string {
	if t.TicketNumber != nil && *t.TicketNumber != "" {
		if t.TicketSeries != nil && *t.TicketSeries != "" {
			return *t.TicketSeries + "-" + *t.TicketNumber
		}
		return *t.TicketNumber
	}
	return t.ID
}

func withAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con dos decimales, coma decimal y puntos de miles. Ej: 1234.5 → "1.234,50 EUR".
func money(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if neg {
		out = "-" + out
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
