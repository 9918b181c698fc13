package entity

import "time"

// Estados de plan de suscripción de una empresa.
// Una empresa tiene exactamente un plan_status a la vez; las transiciones
// las aplica únicamente el gestor de suscripciones (o el override de superadmin).
const (
	PlanFree      = "FREE"
	PlanTrial     = "TRIAL"
	PlanPaid      = "PAID"
	PlanPastDue   = "PAST_DUE"
	PlanSuspended = "SUSPENDED"
)

// ValidPlanStatus informa si s es uno de los estados de plan conocidos.
func ValidPlanStatus(s string) bool {
	switch s {
	case PlanFree, PlanTrial, PlanPaid, PlanPastDue, PlanSuspended:
		return true
	}
	return false
}

// Company representa una tienda/tenant de la plataforma (multi-tenant, enfoque Venezuela).
// Se crea en plan FREE al registrarse y nunca se borra físicamente
// (desactivación suave vía Status).
type Company struct {
	ID      string
	Name    string
	RIF     string // RIF venezolano (J-12345678-9)
	Address string
	Phone   string
	Email   string
	Status  string // active, inactive

	PlanStatus      string // ver constantes Plan*
	TrialStartedAt  *time.Time
	TrialLengthDays int        // snapshot de la config al iniciar el trial
	SubscriptionEnd *time.Time // nil salvo en PAID

	CreatedAt time.Time
	UpdatedAt time.Time
}
