package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinica-api/internal/application/dto"
)

func sampleTicket() *dto.TicketResponse {
	number := "000123"
	due := decimal.RequireFromString("20")
	return &dto.TicketResponse{
		ID:            "tk-1",
		ClinicName:    "Clínica Centro",
		TicketNumber:  &number,
		Status:        "OPEN",
		CurrencyCode:  "EUR",
		IssueDate:     "2026-03-01T10:00:00Z",
		TotalAmount:   decimal.RequireFromString("80"),
		TaxAmount:     decimal.RequireFromString("16.8"),
		FinalAmount:   decimal.RequireFromString("96.8"),
		PaidAmount:    decimal.RequireFromString("50"),
		PendingAmount: decimal.RequireFromString("46.8"),
		DueAmount:     &due,
		HasOpenDebt:   true,
		Items: []dto.TicketItemResponse{{
			ID:                   "it-1",
			ItemType:             "SERVICE",
			Description:          "Limpieza facial",
			Quantity:             decimal.RequireFromString("1"),
			UnitPrice:            decimal.RequireFromString("100"),
			ManualDiscountAmount: decimal.RequireFromString("20"),
			VATRate:              decimal.RequireFromString("21"),
			VATAmount:            decimal.RequireFromString("16.8"),
			FinalPrice:           decimal.RequireFromString("80"),
		}},
		Payments: []dto.PaymentResponse{{
			ID:          "p-1",
			Type:        "DEBIT",
			Amount:      decimal.RequireFromString("50"),
			PaymentDate: "2026-03-01T10:05:00Z",
		}},
	}
}

func TestRender_Formatos(t *testing.T) {
	r := NewReceiptRenderer()
	for _, size := range []string{"80mm", "58mm", "A4"} {
		t.Run(size, func(t *testing.T) {
			out, err := r.Render(sampleTicket(), size)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestRender_TicketNil(t *testing.T) {
	_, err := NewReceiptRenderer().Render(nil, "80mm")
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1.234,50 EUR", money(decimal.RequireFromString("1234.5"), "EUR"))
	assert.Equal(t, "0,00", money(decimal.Zero, ""))
	assert.Equal(t, "-20,00", money(decimal.RequireFromString("-20"), ""))
	assert.Equal(t, "1.000.000,00", money(decimal.RequireFromString("1000000"), ""))
}

func TestRollHeight_CreceConLineas(t *testing.T) {
	assert.Greater(t, rollHeight(5, 1), rollHeight(1, 1))
	assert.True(t, layoutFor("A4", 0, 0).a4)
	assert.Equal(t, 58.0, layoutFor("58mm", 0, 0).width)
}
