package payments

import (
	"context"

	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// ReviewTxRunner ejecuta el cierre de una revisión dentro de una transacción
// de BD, pasando repositorios atados a esa tx. Garantiza que la decisión del
// pago y la activación del plan se apliquen juntas o ninguna.
type ReviewTxRunner interface {
	RunReview(ctx context.Context, fn func(
		paymentRepo repository.PaymentRepository,
		companyRepo repository.CompanyRepository,
	) error) error
}
