package http

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-api/internal/application/dto"
)

// ticketCommands operaciones de escritura; las implementa *ticket.BatchUpdateUseCase.
type ticketCommands interface {
	BatchUpdate(ctx context.Context, systemID, userID, ticketID string, in dto.BatchUpdateTicketRequest) (*dto.TicketResponse, error)
	AddItem(ctx context.Context, systemID, userID, ticketID string, in dto.AddTicketItemRequest) (*dto.TicketResponse, error)
	UpdateItem(ctx context.Context, systemID, userID, ticketID string, in dto.UpdateTicketItemRequest) (*dto.TicketResponse, error)
	DeleteItem(ctx context.Context, systemID, userID, ticketID, itemID string) (*dto.TicketResponse, error)
}

type ticketQueries interface {
	GetTicket(ctx context.Context, systemID, ticketID string) (*dto.TicketResponse, error)
}

type receiptGenerator interface {
	Receipt(ctx context.Context, systemID, ticketID, size string) ([]byte, string, error)
}

// TicketHandler maneja las peticiones HTTP de tickets (protegido).
type TicketHandler struct {
	commands ticketCommands
	queries  ticketQueries
	receipts receiptGenerator
	validate *validator.Validate
}

// NewTicketHandler construye el handler.
func NewTicketHandler(commands ticketCommands, queries ticketQueries, receipts receiptGenerator) *TicketHandler {
	return &TicketHandler{
		commands: commands,
		queries:  queries,
		receipts: receipts,
		validate: newValidator(),
	}
}

// identity devuelve (systemID, userID) o responde 401.
func identity(c *fiber.Ctx) (string, string, bool) {
	systemID := GetSystemID(c)
	userID := GetUserID(c)
	if systemID == "" || userID == "" {
		return "", "", false
	}
	return systemID, userID, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// Get devuelve la instantánea completa del ticket.
// GET /api/tickets/:id
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	systemID, _, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.queries.GetTicket(c.UserContext(), systemID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BatchUpdate aplica todos los cambios del cuerpo en una sola transacción.
// PUT /api/tickets/:id/batch-update
func (h *TicketHandler) BatchUpdate(c *fiber.Ctx) error {
	systemID, userID, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.BatchUpdateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, validationMessage(err))
	}
	out, err := h.commands.BatchUpdate(c.UserContext(), systemID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem añade una línea.
// POST /api/tickets/:id/items
func (h *TicketHandler) AddItem(c *fiber.Ctx) error {
	systemID, userID, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.AddTicketItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, validationMessage(err))
	}
	out, err := h.commands.AddItem(c.UserContext(), systemID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem modifica una línea. El cuerpo lleva los campos a cambiar sin anidar; la línea sale de la ruta.
// PUT /api/tickets/:id/items/:itemId
func (h *TicketHandler) UpdateItem(c *fiber.Ctx) error {
	systemID, userID, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	var changes dto.TicketItemChanges
	if err := c.BodyParser(&changes); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	in := dto.UpdateTicketItemRequest{ID: c.Params("itemId"), Updates: changes}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, validationMessage(err))
	}
	out, err := h.commands.UpdateItem(c.UserContext(), systemID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem elimina una línea.
// DELETE /api/tickets/:id/items/:itemId
func (h *TicketHandler) DeleteItem(c *fiber.Ctx) error {
	systemID, userID, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.commands.DeleteItem(c.UserContext(), systemID, userID, c.Params("id"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt devuelve el PDF imprimible.
// GET /api/tickets/:id/receipt?size=80mm|58mm|A4
func (h *TicketHandler) Receipt(c *fiber.Ctx) error {
	systemID, _, ok := identity(c)
	if !ok {
		return unauthorized(c)
	}
	pdf, filename, err := h.receipts.Receipt(c.UserContext(), systemID, c.Params("id"), c.Query("size"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
