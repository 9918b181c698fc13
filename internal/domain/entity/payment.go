package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago reportado manualmente. PENDING admite exactamente una
// transición terminal (APPROVED o REJECTED); después el registro es inmutable
// salvo campos de auditoría.
const (
	PaymentPending  = "PENDING"
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// Payment es un pago de suscripción reportado por la empresa y revisado por
// un operador de plataforma. Method es texto libre ("Zelle", "Pago Móvil");
// Reference es el comprobante que el operador verifica a mano.
type Payment struct {
	ID              string
	CompanyID       string
	Amount          decimal.Decimal // > 0
	Method          string
	Reference       string
	Notes           string
	Status          string // ver constantes Payment*
	RejectionReason string // solo en REJECTED
	ReviewedBy      string // user id del operador que decidió
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

// Decided informa si el pago ya recibió su transición terminal.
func (p *Payment) Decided() bool {
	return p.Status != PaymentPending
}
