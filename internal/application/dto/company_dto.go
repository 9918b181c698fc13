package dto

import "time"

// CompanyResponse empresa con su estado de plan.
// TrialEndsAt se deriva al responder; no se persiste.
type CompanyResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	RIF             string     `json:"rif"`
	Address         string     `json:"address,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Email           string     `json:"email,omitempty"`
	Status          string     `json:"status"`
	PlanStatus      string     `json:"plan_status"`
	TrialStartedAt  *time.Time `json:"trial_started_at,omitempty"`
	TrialEndsAt     *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionEnd *time.Time `json:"subscription_end,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas (superadmin).
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// OverrideSubscriptionRequest asignación directa de plan por el operador.
// Camino administrativo explícito: NO pasa por la tabla de transiciones.
type OverrideSubscriptionRequest struct {
	Status string `json:"status"` // FREE | TRIAL | PAID | PAST_DUE | SUSPENDED
}
