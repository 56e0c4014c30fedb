package dto

import (
	"github.com/shopspring/decimal"
)

// BatchUpdateTicketRequest body para PUT /api/tickets/:id/batch-update.
// Todos los bloques son opcionales; se aplican en una única transacción.
type BatchUpdateTicketRequest struct {
	ScalarUpdates      *ScalarUpdatesRequest     `json:"scalarUpdates,omitempty"`
	ItemsToAdd         []AddTicketItemRequest    `json:"itemsToAdd,omitempty" validate:"dive"`
	ItemsToUpdate      []UpdateTicketItemRequest `json:"itemsToUpdate,omitempty" validate:"dive"`
	ItemIDsToDelete    []string                  `json:"itemIdsToDelete,omitempty" validate:"dive,required"`
	PaymentsToAdd      []AddPaymentRequest       `json:"paymentsToAdd,omitempty" validate:"dive"`
	PaymentIDsToDelete []string                  `json:"paymentIdsToDelete,omitempty" validate:"dive,required"`
	AmountToDefer      *decimal.Decimal          `json:"amountToDefer,omitempty" validate:"omitempty,gte=0"`
}

// ScalarUpdatesRequest campos de cabecera. null explícito desvincula o limpia el campo.
type ScalarUpdatesRequest struct {
	ClientID       Nullable[string]          `json:"clientId"`
	SellerUserID   Nullable[string]          `json:"sellerUserId"`
	Notes          Nullable[string]          `json:"notes" validate:"omitempty,max=1000"`
	TicketSeries   Nullable[string]          `json:"ticketSeries" validate:"omitempty,max=50"`
	DiscountType   Nullable[string]          `json:"discountType" validate:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountAmount Nullable[decimal.Decimal] `json:"discountAmount" validate:"omitempty,gte=0"`
	DiscountReason Nullable[string]          `json:"discountReason" validate:"omitempty,max=255"`
}

// AddTicketItemRequest línea nueva.
// UnitPrice es un precio manual; si se omite se resuelve desde tarifa o catálogo.
type AddTicketItemRequest struct {
	ItemType                  string           `json:"itemType" validate:"required,oneof=PRODUCT SERVICE BONO_DEFINITION PACKAGE_DEFINITION"`
	ItemID                    string           `json:"itemId" validate:"required"`
	Quantity                  decimal.Decimal  `json:"quantity" validate:"gte=0.01"`
	UnitPrice                 *decimal.Decimal `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	ManualDiscountAmount      *decimal.Decimal `json:"manualDiscountAmount,omitempty" validate:"omitempty,gte=0"`
	PromotionDiscountAmount   *decimal.Decimal `json:"promotionDiscountAmount,omitempty" validate:"omitempty,gte=0"`
	AppliedPromotionID        *string          `json:"appliedPromotionId,omitempty"`
	DiscountNotes             *string          `json:"discountNotes,omitempty" validate:"omitempty,max=255"`
	ConsumedBonoInstanceID    *string          `json:"consumedBonoInstanceId,omitempty"`
	ConsumedPackageInstanceID *string          `json:"consumedPackageInstanceId,omitempty"`
}

// UpdateTicketItemRequest cambios parciales sobre una línea existente, anidados en "updates".
type UpdateTicketItemRequest struct {
	ID      string            `json:"id" validate:"required"`
	Updates TicketItemChanges `json:"updates"`
}

// TicketItemChanges campos modificables de una línea.
// IsPriceOverridden=true junto con FinalPrice fija el neto de la línea.
type TicketItemChanges struct {
	Quantity                 *decimal.Decimal          `json:"quantity,omitempty" validate:"omitempty,gte=0.01"`
	UnitPrice                *decimal.Decimal          `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	IsPriceOverridden        *bool                     `json:"isPriceOverridden,omitempty"`
	FinalPrice               *decimal.Decimal          `json:"finalPrice,omitempty" validate:"omitempty,gte=0"`
	ManualDiscountPercentage Nullable[decimal.Decimal] `json:"manualDiscountPercentage" validate:"omitempty,gte=0,lte=100"`
	ManualDiscountAmount     Nullable[decimal.Decimal] `json:"manualDiscountAmount" validate:"omitempty,gte=0"`
	DiscountNotes            Nullable[string]          `json:"discountNotes" validate:"omitempty,max=255"`
	AppliedPromotionID       Nullable[string]          `json:"appliedPromotionId"`
	PromotionDiscountAmount  Nullable[decimal.Decimal] `json:"promotionDiscountAmount" validate:"omitempty,gte=0"`
}

// AddPaymentRequest pago directo (DEBIT).
type AddPaymentRequest struct {
	PaymentMethodDefinitionID string          `json:"paymentMethodDefinitionId" validate:"required"`
	Amount                    decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentDate               *string         `json:"paymentDate,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	TransactionReference      *string         `json:"transactionReference,omitempty" validate:"omitempty,max=255"`
	Notes                     *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// TicketResponse instantánea completa del ticket.
type TicketResponse struct {
	ID                 string               `json:"id"`
	SystemID           string               `json:"systemId"`
	ClinicID           string               `json:"clinicId"`
	ClinicName         string               `json:"clinicName,omitempty"`
	ClientID           *string              `json:"clientId"`
	SellerUserID       *string              `json:"sellerUserId"`
	CashierUserID      *string              `json:"cashierUserId"`
	TicketNumber       *string              `json:"ticketNumber"`
	TicketSeries       *string              `json:"ticketSeries"`
	Notes              *string              `json:"notes"`
	Status             string               `json:"status"`
	CurrencyCode       string               `json:"currencyCode"`
	IssueDate          string               `json:"issueDate"`
	DiscountType       *string              `json:"discountType"`
	DiscountAmount     *decimal.Decimal     `json:"discountAmount"`
	DiscountReason     *string              `json:"discountReason"`
	TotalAmount        decimal.Decimal      `json:"totalAmount"`
	TaxAmount          decimal.Decimal      `json:"taxAmount"`
	FinalAmount        decimal.Decimal      `json:"finalAmount"`
	PaidAmount         decimal.Decimal      `json:"paidAmount"`
	PaidAmountDirectly decimal.Decimal      `json:"paidAmountDirectly"`
	PendingAmount      decimal.Decimal      `json:"pendingAmount"`
	DueAmount          *decimal.Decimal     `json:"dueAmount"`
	HasOpenDebt        bool                 `json:"hasOpenDebt"`
	Items              []TicketItemResponse `json:"items"`
	Payments           []PaymentResponse    `json:"payments"`
	DebtLedgers        []DebtLedgerResponse `json:"debtLedgers"`
	CashSession        *CashSessionResponse `json:"cashSession"`
	UpdatedAt          string               `json:"updatedAt"`
}

// TicketItemResponse línea en la respuesta.
type TicketItemResponse struct {
	ID                        string           `json:"id"`
	ItemType                  string           `json:"itemType"`
	ItemID                    string           `json:"itemId"`
	Description               string           `json:"description"`
	Quantity                  decimal.Decimal  `json:"quantity"`
	UnitPrice                 decimal.Decimal  `json:"unitPrice"`
	OriginalUnitPrice         *decimal.Decimal `json:"originalUnitPrice"`
	IsPriceOverridden         bool             `json:"isPriceOverridden"`
	ManualDiscountAmount      decimal.Decimal  `json:"manualDiscountAmount"`
	ManualDiscountPercentage  *decimal.Decimal `json:"manualDiscountPercentage"`
	DiscountNotes             *string          `json:"discountNotes"`
	AppliedPromotionID        *string          `json:"appliedPromotionId"`
	PromotionDiscountAmount   decimal.Decimal  `json:"promotionDiscountAmount"`
	VATRateID                 *string          `json:"vatRateId"`
	VATRate                   decimal.Decimal  `json:"vatRate"`
	VATAmount                 decimal.Decimal  `json:"vatAmount"`
	FinalPrice                decimal.Decimal  `json:"finalPrice"`
	ConsumedBonoInstanceID    *string          `json:"consumedBonoInstanceId"`
	ConsumedPackageInstanceID *string          `json:"consumedPackageInstanceId"`
}

// PaymentResponse pago en la respuesta.
type PaymentResponse struct {
	ID                        string          `json:"id"`
	Type                      string          `json:"type"`
	Amount                    decimal.Decimal `json:"amount"`
	PaymentMethodDefinitionID string          `json:"paymentMethodDefinitionId"`
	CashSessionID             *string         `json:"cashSessionId"`
	DebtLedgerID              *string         `json:"debtLedgerId"`
	PaymentDate               string          `json:"paymentDate"`
	TransactionReference      *string         `json:"transactionReference"`
	Notes                     *string         `json:"notes"`
}

// DebtLedgerResponse deuda aplazada en la respuesta.
type DebtLedgerResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
	Status         string          `json:"status"`
}

// CashSessionResponse resumen de la caja vinculada.
type CashSessionResponse struct {
	ID            string `json:"id"`
	SessionNumber string `json:"sessionNumber"`
	Status        string `json:"status"`
}
