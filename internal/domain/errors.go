package domain

import (
	"errors"
	"fmt"
)

// Clases de error de dominio (sin dependencias externas).
// La capa HTTP traduce cada clase a un código de estado.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidState = errors.New("estado inválido para la operación")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrBusinessRule = errors.New("regla de negocio violada")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores específicos del ticket; envuelven su clase para que errors.Is responda a ambos.
var (
	ErrTicketNotFound          = fmt.Errorf("%w: ticket no encontrado", ErrNotFound)
	ErrTicketItemNotFound      = fmt.Errorf("%w: línea de ticket no encontrada", ErrNotFound)
	ErrCatalogItemNotFound     = fmt.Errorf("%w: ítem de catálogo no encontrado", ErrNotFound)
	ErrClientNotFound          = fmt.Errorf("%w: cliente no encontrado", ErrNotFound)
	ErrUserNotFound            = fmt.Errorf("%w: usuario no encontrado", ErrNotFound)
	ErrTicketNotOpen           = fmt.Errorf("%w: el ticket no está abierto", ErrInvalidState)
	ErrInvalidDiscount         = fmt.Errorf("%w: el descuento supera el importe de la línea", ErrInvalidInput)
	ErrInvalidGlobalDiscount   = fmt.Errorf("%w: el descuento global requiere tipo y valor", ErrInvalidInput)
	ErrNoValidPrice            = fmt.Errorf("%w: no hay precio válido para el ítem", ErrBusinessRule)
	ErrNoTaxRateConfigured     = fmt.Errorf("%w: no hay tipo de IVA configurado", ErrBusinessRule)
	ErrNoPriceList             = fmt.Errorf("%w: la clínica no tiene tarifa asignada", ErrBusinessRule)
	ErrClientRequiredForDebt   = fmt.Errorf("%w: se requiere un cliente para aplazar deuda", ErrBusinessRule)
	ErrUnknownPaymentMethod    = fmt.Errorf("%w: método de pago desconocido", ErrBusinessRule)
	ErrInsufficientConsumption = fmt.Errorf("%w: sesiones insuficientes en el bono o paquete", ErrBusinessRule)
)
