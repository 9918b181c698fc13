package postgres

import (
	"context"
	"fmt"

	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// Asegura que PaymentRepo implementa repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, amount, method, reference, notes,
	status, rejection_reason, reviewed_by, reviewed_at, created_at`

// Create persiste un pago reportado (PENDING).
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, company_id, amount, method, reference, notes,
			status, rejection_reason, reviewed_by, reviewed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CompanyID, payment.Amount, payment.Method,
		payment.Reference, payment.Notes, payment.Status,
		payment.RejectionReason, nullIfEmpty(payment.ReviewedBy),
		payment.ReviewedAt, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	var reviewedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Amount, &p.Method, &p.Reference, &p.Notes,
		&p.Status, &p.RejectionReason, &reviewedBy, &p.ReviewedAt, &p.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if reviewedBy != nil {
		p.ReviewedBy = *reviewedBy
	}
	return &p, nil
}

// ListPending devuelve la cola de revisión: PENDING de todas las empresas,
// del más antiguo al más reciente.
func (r *PaymentRepo) ListPending() ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments WHERE status = $1 ORDER BY created_at ASC`
	return r.scanList(query, entity.PaymentPending)
}

// ListByCompany historial de pagos de una empresa.
func (r *PaymentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(query, companyID, limit, offset)
}

// Decide aplica la transición terminal solo si el pago sigue PENDING (CAS).
// Dos operadores compitiendo: el segundo recibe domain.ErrConflict.
func (r *PaymentRepo) Decide(payment *entity.Payment) error {
	query := `
		UPDATE payments SET status = $2, rejection_reason = $3,
			reviewed_by = $4, reviewed_at = $5
		WHERE id = $1 AND status = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Status, payment.RejectionReason,
		nullIfEmpty(payment.ReviewedBy), payment.ReviewedAt,
		entity.PaymentPending,
	)
	if err != nil {
		return fmt.Errorf("decide payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *PaymentRepo) scanList(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var reviewedBy *string
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Amount, &p.Method, &p.Reference, &p.Notes,
			&p.Status, &p.RejectionReason, &reviewedBy, &p.ReviewedAt, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if reviewedBy != nil {
			p.ReviewedBy = *reviewedBy
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
