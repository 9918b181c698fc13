// Package subscription implementa la máquina de estados del plan de una
// empresa: FREE → TRIAL → PAID, downgrade y el override administrativo.
// El vencimiento del trial NO es una transición almacenada: se deriva con
// plan.IsBlocked en cada acceso (ver internal/domain/plan).
package subscription

import (
	"time"

	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// Config parámetros de plataforma que consume el gestor.
type Config struct {
	TrialDays int // duración del período de prueba al iniciarlo
	PaidDays  int // días que otorga cada activación de pago
}

// Manager aplica las transiciones de plan sobre el repositorio de empresas.
// Cada transición es una sola escritura condicionada al estado leído (CAS):
// plan_status, trial_started_at y subscription_end cambian juntos o no cambian.
type Manager struct {
	companyRepo repository.CompanyRepository
	cfg         Config
}

// NewManager construye el gestor con el puerto de persistencia.
func NewManager(companyRepo repository.CompanyRepository, cfg Config) *Manager {
	return &Manager{companyRepo: companyRepo, cfg: cfg}
}

// ApplyStartTrial muta la empresa en memoria: FREE → TRIAL.
// Snapshotea trialDays para que cambios de config no acorten trials en curso.
func ApplyStartTrial(c *entity.Company, now time.Time, trialDays int) error {
	if c.PlanStatus != entity.PlanFree {
		return domain.ErrIllegalTransition
	}
	started := now
	c.PlanStatus = entity.PlanTrial
	c.TrialStartedAt = &started
	c.TrialLengthDays = trialDays
	c.SubscriptionEnd = nil
	c.UpdatedAt = now
	return nil
}

// ApplyActivatePaid muta la empresa en memoria hacia PAID.
// Permitido desde FREE, TRIAL y PAST_DUE (reactivación); desde PAID extiende
// la vigencia a partir del fin actual si aún no venció (renovación).
// SUSPENDED solo sale por override administrativo.
func ApplyActivatePaid(c *entity.Company, now time.Time, durationDays int) error {
	if c.PlanStatus == entity.PlanSuspended {
		return domain.ErrIllegalTransition
	}
	start := now
	if c.PlanStatus == entity.PlanPaid && c.SubscriptionEnd != nil && c.SubscriptionEnd.After(now) {
		start = *c.SubscriptionEnd
	}
	end := start.AddDate(0, 0, durationDays)
	c.PlanStatus = entity.PlanPaid
	c.SubscriptionEnd = &end
	c.UpdatedAt = now
	return nil
}

// ApplyDowngrade muta la empresa en memoria: PAID → FREE, limpia la vigencia.
func ApplyDowngrade(c *entity.Company, now time.Time) error {
	if c.PlanStatus != entity.PlanPaid {
		return domain.ErrIllegalTransition
	}
	c.PlanStatus = entity.PlanFree
	c.SubscriptionEnd = nil
	c.UpdatedAt = now
	return nil
}

// StartTrial inicia el período de prueba de la empresa.
func (m *Manager) StartTrial(companyID string, now time.Time) (*entity.Company, error) {
	c, err := m.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	expected := c.PlanStatus
	if err := ApplyStartTrial(c, now, m.cfg.TrialDays); err != nil {
		return nil, err
	}
	if err := m.companyRepo.UpdatePlan(c, expected); err != nil {
		return nil, err
	}
	return c, nil
}

// ActivatePaid pasa la empresa a PAID por durationDays días.
// Lo invoca la aprobación de un pago y el atajo simulate-success.
func (m *Manager) ActivatePaid(companyID string, now time.Time, durationDays int) (*entity.Company, error) {
	c, err := m.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	expected := c.PlanStatus
	if err := ApplyActivatePaid(c, now, durationDays); err != nil {
		return nil, err
	}
	if err := m.companyRepo.UpdatePlan(c, expected); err != nil {
		return nil, err
	}
	return c, nil
}

// Downgrade baja la empresa de PAID a FREE a pedido del tenant.
func (m *Manager) Downgrade(companyID string, now time.Time) (*entity.Company, error) {
	c, err := m.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	expected := c.PlanStatus
	if err := ApplyDowngrade(c, now); err != nil {
		return nil, err
	}
	if err := m.companyRepo.UpdatePlan(c, expected); err != nil {
		return nil, err
	}
	return c, nil
}

// AdminOverride asigna el plan directamente, sin pasar por la tabla de
// transiciones. Es la válvula de escape del operador (PAST_DUE, SUSPENDED,
// reasignaciones manuales); mantiene coherentes los campos derivados.
func (m *Manager) AdminOverride(companyID, target string, now time.Time) (*entity.Company, error) {
	if !entity.ValidPlanStatus(target) {
		return nil, domain.ErrInvalidInput
	}
	c, err := m.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	expected := c.PlanStatus

	c.PlanStatus = target
	c.UpdatedAt = now
	switch target {
	case entity.PlanTrial:
		if c.TrialStartedAt == nil {
			started := now
			c.TrialStartedAt = &started
			c.TrialLengthDays = m.cfg.TrialDays
		}
		c.SubscriptionEnd = nil
	case entity.PlanPaid:
		if c.SubscriptionEnd == nil || !c.SubscriptionEnd.After(now) {
			end := now.AddDate(0, 0, m.cfg.PaidDays)
			c.SubscriptionEnd = &end
		}
	default:
		c.SubscriptionEnd = nil
	}

	if err := m.companyRepo.UpdatePlan(c, expected); err != nil {
		return nil, err
	}
	return c, nil
}
