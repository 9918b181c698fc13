package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta/orden. PAID y CANCELLED son terminales.
const (
	SalePending        = "PENDING"
	SalePreparing      = "PREPARING"
	SaleReadyForPickup = "READY_FOR_PICKUP"
	SalePaid           = "PAID"
	SaleCancelled      = "CANCELLED"
)

// Métodos de pago aceptados al liquidar una venta (conjunto cerrado,
// distinto del texto libre de los pagos de suscripción).
const (
	MethodCash     = "CASH"
	MethodCard     = "CARD"
	MethodTransfer = "TRANSFER"
	MethodOther    = "OTHER"
)

// ValidSaleStatus informa si s es un estado de venta conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SalePending, SalePreparing, SaleReadyForPickup, SalePaid, SaleCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod informa si m pertenece al conjunto cerrado de métodos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodOther:
		return true
	}
	return false
}

// SaleTerminal informa si el estado no admite más transiciones.
func SaleTerminal(s string) bool {
	return s == SalePaid || s == SaleCancelled
}

// CanTransitionSale valida la transición from→to contra la tabla de estados:
//
//	PENDING   → PREPARING | READY_FOR_PICKUP | CANCELLED
//	PREPARING → READY_FOR_PICKUP | CANCELLED
//	READY_FOR_PICKUP → PAID | CANCELLED
//
// Cualquier par no listado (incluido salir de un terminal) es ilegal.
func CanTransitionSale(from, to string) bool {
	switch from {
	case SalePending:
		return to == SalePreparing || to == SaleReadyForPickup || to == SaleCancelled
	case SalePreparing:
		return to == SaleReadyForPickup || to == SaleCancelled
	case SaleReadyForPickup:
		return to == SalePaid || to == SaleCancelled
	}
	return false
}

// SaleItem es una línea de venta con snapshot de nombre y precio al momento
// de crear la orden.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // UnitPrice * Quantity, fijado en la creación
}

// Sale representa una venta POS o una orden del marketplace.
// TotalAmount se calcula una sola vez en la creación (suma de subtotales)
// y ninguna transición de estado lo modifica.
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    *string // nil = venta de mostrador sin cliente
	UserID        string  // quién la registró (vacío en órdenes del marketplace)
	Items         []SaleItem
	TotalAmount   decimal.Decimal
	PaymentMethod *string // nil hasta liquidar; ver constantes Method*
	Status        string  // ver constantes Sale*
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
