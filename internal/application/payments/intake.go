// Package payments implementa el flujo de pagos reportados manualmente:
// la empresa reporta una transferencia ("Zelle", "Pago Móvil"), el pago entra
// PENDING a la cola del operador, y la decisión aprueba/rechaza exactamente
// una vez. La aprobación activa el plan PAID en la misma transacción.
package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/notify"
	"github.com/mercavia/mercavia-api/internal/application/subscription"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// IntakeConfig parámetros de plataforma para el flujo de pagos.
type IntakeConfig struct {
	PaidDays     int             // días que activa cada pago aprobado
	MonthlyPrice decimal.Decimal // monto del plan mensual (simulate-success)
}

// IntakeUseCase casos de uso de reporte y revisión de pagos.
type IntakeUseCase struct {
	txRunner    ReviewTxRunner
	paymentRepo repository.PaymentRepository
	companyRepo repository.CompanyRepository
	plans       *subscription.Manager
	publisher   notify.Publisher
	cfg         IntakeConfig
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(
	txRunner ReviewTxRunner,
	paymentRepo repository.PaymentRepository,
	companyRepo repository.CompanyRepository,
	plans *subscription.Manager,
	publisher notify.Publisher,
	cfg IntakeConfig,
) *IntakeUseCase {
	return &IntakeUseCase{
		txRunner:    txRunner,
		paymentRepo: paymentRepo,
		companyRepo: companyRepo,
		plans:       plans,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// Submit registra un pago reportado por la empresa. Queda PENDING en la cola
// del operador; no toca el plan todavía.
func (uc *IntakeUseCase) Submit(companyID string, in dto.SubmitPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Reference == "" || in.Method == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	p := &entity.Payment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Amount:    in.Amount,
		Method:    in.Method,
		Reference: in.Reference,
		Notes:     in.Notes,
		Status:    entity.PaymentPending,
		CreatedAt: time.Now(),
	}
	if err := uc.paymentRepo.Create(p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// ListPendingForReview cola del operador: pagos PENDING de todas las
// empresas, del más antiguo al más reciente.
func (uc *IntakeUseCase) ListPendingForReview() ([]dto.PaymentResponse, error) {
	list, err := uc.paymentRepo.ListPending()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return items, nil
}

// ListByCompany historial de pagos del tenant.
func (uc *IntakeUseCase) ListByCompany(companyID string, limit, offset int) (*dto.PaymentListResponse, error) {
	list, err := uc.paymentRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Approve aprueba un pago PENDING y activa el plan PAID de la empresa dueña,
// todo dentro de una transacción: si la activación falla, el pago sigue
// PENDING para el tenant. Dos operadores compitiendo por el mismo pago:
// solo gana el primer CAS desde PENDING, el segundo recibe domain.ErrConflict.
func (uc *IntakeUseCase) Approve(ctx context.Context, paymentID, operatorID string, now time.Time) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Decided() {
		return nil, domain.ErrConflict
	}

	reviewedAt := now
	p.Status = entity.PaymentApproved
	p.ReviewedBy = operatorID
	p.ReviewedAt = &reviewedAt

	err = uc.txRunner.RunReview(ctx, func(
		paymentRepo repository.PaymentRepository,
		companyRepo repository.CompanyRepository,
	) error {
		if err := paymentRepo.Decide(p); err != nil {
			return err
		}
		company, err := companyRepo.GetByID(p.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		expected := company.PlanStatus
		if err := subscription.ApplyActivatePaid(company, now, uc.cfg.PaidDays); err != nil {
			return err
		}
		return companyRepo.UpdatePlan(company, expected)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, notify.Event{
		Type:      notify.EventPaymentDecided,
		CompanyID: p.CompanyID,
		PaymentID: p.ID,
		OldStatus: entity.PaymentPending,
		NewStatus: entity.PaymentApproved,
		At:        now,
	})
	return toPaymentResponse(p), nil
}

// Reject rechaza un pago PENDING con motivo obligatorio. No toca el plan.
func (uc *IntakeUseCase) Reject(ctx context.Context, paymentID, operatorID, reason string, now time.Time) (*dto.PaymentResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Decided() {
		return nil, domain.ErrConflict
	}

	reviewedAt := now
	p.Status = entity.PaymentRejected
	p.RejectionReason = reason
	p.ReviewedBy = operatorID
	p.ReviewedAt = &reviewedAt

	if err := uc.paymentRepo.Decide(p); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, notify.Event{
		Type:      notify.EventPaymentDecided,
		CompanyID: p.CompanyID,
		PaymentID: p.ID,
		OldStatus: entity.PaymentPending,
		NewStatus: entity.PaymentRejected,
		At:        now,
	})
	return toPaymentResponse(p), nil
}

// SimulateSuccess atajo de dev/pruebas: registra un pago ya aprobado por el
// monto mensual y activa el plan sin pasar por la cola de revisión.
func (uc *IntakeUseCase) SimulateSuccess(ctx context.Context, companyID string, now time.Time) (*dto.PaymentResponse, error) {
	if _, err := uc.plans.ActivatePaid(companyID, now, uc.cfg.PaidDays); err != nil {
		return nil, err
	}
	reviewedAt := now
	p := &entity.Payment{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Amount:     uc.cfg.MonthlyPrice,
		Method:     "SIMULATED",
		Reference:  "simulate-success",
		Status:     entity.PaymentApproved,
		ReviewedBy: "system",
		ReviewedAt: &reviewedAt,
		CreatedAt:  now,
	}
	if err := uc.paymentRepo.Create(p); err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, notify.Event{
		Type:      notify.EventPaymentDecided,
		CompanyID: companyID,
		PaymentID: p.ID,
		NewStatus: entity.PaymentApproved,
		At:        now,
	})
	return toPaymentResponse(p), nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Amount:          p.Amount,
		Method:          p.Method,
		Reference:       p.Reference,
		Notes:           p.Notes,
		Status:          p.Status,
		RejectionReason: p.RejectionReason,
		ReviewedBy:      p.ReviewedBy,
		ReviewedAt:      p.ReviewedAt,
		CreatedAt:       p.CreatedAt,
	}
}
