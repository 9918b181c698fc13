package usecase

import (
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/plan"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// CompanyUseCase lecturas de empresas (la creación vive en auth.RegisterCompany
// y las transiciones de plan en subscription.Manager).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación (vista del operador de plataforma).
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	out := &dto.CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		RIF:             c.RIF,
		Address:         c.Address,
		Phone:           c.Phone,
		Email:           c.Email,
		Status:          c.Status,
		PlanStatus:      c.PlanStatus,
		TrialStartedAt:  c.TrialStartedAt,
		SubscriptionEnd: c.SubscriptionEnd,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if end, ok := plan.TrialEndsAt(c); ok {
		out.TrialEndsAt = &end
	}
	return out
}
