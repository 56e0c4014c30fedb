package entity

import "time"

// Clinic centro donde se emite el ticket.
type Clinic struct {
	ID         string
	SystemID   string
	Name       string
	TariffID   *string // tarifa (lista de precios) por defecto
	Currency   string
	TaxID      string
	Address    string
	City       string
	PostalCode string
	Phone      string
	Email      string
	TicketSize string // 80mm, 58mm o A4
}

// CashSession sesión de caja de una clínica.
type CashSession struct {
	ID            string
	SessionNumber string
	ClinicID      string
	SystemID      string
	Status        string // OPEN, CLOSED
	OpeningTime   time.Time
	ClosingTime   *time.Time
}

// CashSessionStatusOpen estado de una caja abierta.
const CashSessionStatusOpen = "OPEN"

// Módulos SaaS (deben coincidir con la tabla system_modules).
const (
	ModuleTickets = "tickets"
	ModuleShelly  = "shelly"
)

// SystemModule activación de un módulo en un tenant.
type SystemModule struct {
	SystemID   string
	ModuleName string
	IsActive   bool
	ExpiresAt  *time.Time
}
