package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitPaymentRequest reporte manual de un pago de suscripción.
// Method es texto libre ("Zelle", "Pago Móvil", "Transferencia Banesco").
type SubmitPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// RejectPaymentRequest motivo del rechazo (obligatorio).
type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// PaymentResponse pago reportado, visible para el tenant y el operador.
type PaymentResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Reference       string          `json:"reference"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	ReviewedBy      string          `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentListResponse listado de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
