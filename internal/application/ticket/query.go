package ticket

import (
	"context"
	"fmt"

	"github.com/jhoicas/clinica-api/internal/application/dto"
	"github.com/jhoicas/clinica-api/internal/domain"
)

// QueryUseCase lectura de tickets.
type QueryUseCase struct {
	txRunner TxRunner
}

func NewQueryUseCase(txRunner TxRunner) *QueryUseCase {
	return &QueryUseCase{txRunner: txRunner}
}

// GetTicket devuelve la instantánea del ticket (lectura consistente en una transacción).
func (uc *QueryUseCase) GetTicket(ctx context.Context, systemID, ticketID string) (*dto.TicketResponse, error) {
	if systemID == "" || ticketID == "" {
		return nil, fmt.Errorf("%w: systemID y ticketID son obligatorios", domain.ErrInvalidInput)
	}
	var resp *dto.TicketResponse
	err := uc.txRunner.RunTicket(ctx, func(r Repos) error {
		var err error
		resp, err = loadSnapshot(ctx, r, systemID, ticketID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
