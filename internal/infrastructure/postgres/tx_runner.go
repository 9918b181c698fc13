package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mercavia/mercavia-api/internal/application/payments"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// Asegura que TxRunner implementa payments.ReviewTxRunner.
var _ payments.ReviewTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunReview inicia una transacción con los repos de pagos y empresas atados a
// ella y hace Commit o Rollback. Es la garantía de atomicidad del cierre de
// revisión: decisión del pago y activación del plan, juntas o ninguna.
func (r *TxRunner) RunReview(ctx context.Context, fn func(
	paymentRepo repository.PaymentRepository,
	companyRepo repository.CompanyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	paymentRepo := NewPaymentRepository(tx)
	companyRepo := NewCompanyRepository(tx)

	if err := fn(paymentRepo, companyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
