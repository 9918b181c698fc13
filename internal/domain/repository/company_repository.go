package repository

import "github.com/mercavia/mercavia-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByRIF(rif string) (*entity.Company, error)
	Update(company *entity.Company) error
	// UpdatePlan escribe plan_status, trial_started_at, trial_length_days y
	// subscription_end en una sola escritura, condicionada a que plan_status
	// siga siendo expectedStatus (CAS). Devuelve domain.ErrConflict si otro
	// escritor se adelantó y domain.ErrNotFound si la empresa no existe.
	UpdatePlan(company *entity.Company, expectedStatus string) error
	List(limit, offset int) ([]*entity.Company, error)
}
