package repository

import "github.com/mercavia/mercavia-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para pagos reportados.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// ListPending devuelve los pagos PENDING de todas las empresas,
	// del más antiguo al más reciente (equidad de la cola de revisión).
	ListPending() ([]*entity.Payment, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Payment, error)
	// Decide aplica la transición terminal (status, rejection_reason,
	// reviewed_by, reviewed_at) solo si el pago sigue PENDING (CAS).
	// Devuelve domain.ErrConflict si ya fue decidido por otro operador.
	Decide(payment *entity.Payment) error
}
