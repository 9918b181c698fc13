package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/plan"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// ProductUseCase altas y lecturas de catálogo. La creación está sujeta al
// motor de políticas de plan: FREE limita la cantidad de productos,
// PAST_DUE/SUSPENDED no crean.
type ProductUseCase struct {
	repo        repository.ProductRepository
	companyRepo repository.CompanyRepository
	freeLimit   int
}

// NewProductUseCase construye el caso de uso. freeLimit viene de la config de plataforma.
func NewProductUseCase(repo repository.ProductRepository, companyRepo repository.CompanyRepository, freeLimit int) *ProductUseCase {
	return &ProductUseCase{repo: repo, companyRepo: companyRepo, freeLimit: freeLimit}
}

// Create crea un producto si el plan de la empresa lo permite.
// Devuelve domain.ErrPlanLimit al tope del plan FREE y domain.ErrPlanBlocked
// si el plan no admite mutaciones (vencido, moroso o suspendida).
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if plan.IsBlocked(company, now) {
		return nil, domain.ErrPlanBlocked
	}
	count, err := uc.repo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if !plan.CanCreateProduct(company, count, uc.freeLimit) {
		return nil, domain.ErrPlanLimit
	}

	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa con paginación.
func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
