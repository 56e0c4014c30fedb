package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/clinica-api/internal/application/ticket"
	"github.com/jhoicas/clinica-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUpdateUC  *ticket.BatchUpdateUseCase
	QueryUC        *ticket.QueryUseCase
	ReceiptUC      *ticket.ReceiptUseCase
	ModuleService  *usecase.ModuleService
	RateLimiter    *TenantRateLimiter
	JWTSecret      string
	RequiredModule string
	Logger         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Antes del grupo protegido: no pasa por RequireModule.
	MountModules(api, NewModuleHandler(deps.ModuleService, deps.Logger), AuthMiddleware(deps.JWTSecret))

	// Rutas protegidas (requieren Bearer Token y el módulo de tickets activo)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		RequireModule(deps.RequiredModule, deps.ModuleService, deps.Logger),
	)

	h := NewTicketHandler(deps.BatchUpdateUC, deps.QueryUC, deps.ReceiptUC)
	MountTickets(protected, h, deps.RateLimiter.Middleware())
}

// MountTickets registra las rutas de tickets; limit se aplica solo a las que modifican.
func MountTickets(r fiber.Router, h *TicketHandler, limit fiber.Handler) {
	tickets := r.Group("/tickets")
	tickets.Get("/:id", h.Get)
	tickets.Get("/:id/receipt", h.Receipt)
	tickets.Put("/:id/batch-update", limit, h.BatchUpdate)
	tickets.Post("/:id/items", limit, h.AddItem)
	tickets.Put("/:id/items/:itemId", limit, h.UpdateItem)
	tickets.Delete("/:id/items/:itemId", limit, h.DeleteItem)
}
