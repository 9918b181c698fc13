// Package notify define el contrato del emisor de notificaciones.
// Los eventos son fire-and-forget: un fallo de publicación se registra en el
// emisor y nunca revierte ni contamina la transacción que lo originó.
package notify

import (
	"context"
	"time"
)

// Tipos de evento publicados por el core.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventPaymentDecided     = "payment.decided"
)

// Event es el payload que consume el poller de la UI.
type Event struct {
	Type      string    `json:"type"`
	CompanyID string    `json:"company_id"`
	SaleID    string    `json:"sale_id,omitempty"`
	PaymentID string    `json:"payment_id,omitempty"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher puerto de publicación. Las implementaciones no devuelven error:
// la entrega es best-effort por contrato.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// NopPublisher descarta todo. Para tests y despliegues sin Redis.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, Event) {}
