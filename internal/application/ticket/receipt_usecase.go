package ticket

import (
	"context"
	"fmt"

	"github.com/jhoicas/clinica-api/internal/domain"
)

// Tamaños de recibo soportados.
const (
	ReceiptSize80mm = "80mm"
	ReceiptSize58mm = "58mm"
	ReceiptSizeA4   = "A4"
)

// ReceiptUseCase genera el recibo imprimible de un ticket.
type ReceiptUseCase struct {
	query    *QueryUseCase
	renderer ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso inyectando el generador de PDF.
func NewReceiptUseCase(query *QueryUseCase, renderer ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{query: query, renderer: renderer}
}

// Receipt devuelve (pdfBytes, filename). size vacío usa 80mm.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, systemID, ticketID, size string) ([]byte, string, error) {
	switch size {
	case "":
		size = ReceiptSize80mm
	case ReceiptSize80mm, ReceiptSize58mm, ReceiptSizeA4:
	default:
		return nil, "", fmt.Errorf("%w: tamaño de recibo %q", domain.ErrInvalidInput, size)
	}

	snap, err := uc.query.GetTicket(ctx, systemID, ticketID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.Render(snap, size)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generar PDF: %w", err)
	}

	name := snap.ID
	if snap.TicketNumber != nil && *snap.TicketNumber != "" {
		name = *snap.TicketNumber
	}
	return pdf, fmt.Sprintf("ticket-%s.pdf", name), nil
}
