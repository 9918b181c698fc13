package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/usecase"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCompany(companyID string) (int, error) {
	count := 0
	for _, p := range r.products {
		if p.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
	for _, c := range companies {
		cp := *c
		r.companies[c.ID] = &cp
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error { return nil }
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeCompanyRepo) GetByRIF(rif string) (*entity.Company, error)              { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error                            { return nil }
func (r *fakeCompanyRepo) UpdatePlan(c *entity.Company, expectedStatus string) error { return nil }
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error)         { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const freeLimit = 3

func newProductFixture(company *entity.Company) (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, newFakeCompanyRepo(company), freeLimit)
	return uc, repo
}

func planCompany(status string) *entity.Company {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Company{
		ID:         "c1",
		Name:       "Ferretería Los Andes",
		RIF:        "J-55667788-9",
		Status:     "active",
		PlanStatus: status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func productReq(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:   sku,
		Name:  "Martillo " + sku,
		Price: decimal.NewFromInt(12),
		Stock: 10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Límite del plan FREE
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_FreeHastaElLimite(t *testing.T) {
	uc, _ := newProductFixture(planCompany(entity.PlanFree))

	for i := 0; i < freeLimit; i++ {
		_, err := uc.Create("c1", productReq(string(rune('A'+i))))
		require.NoError(t, err, "producto %d dentro del límite", i+1)
	}

	_, err := uc.Create("c1", productReq("D"))
	assert.ErrorIs(t, err, domain.ErrPlanLimit,
		"el producto %d debe chocar con el límite FREE", freeLimit+1)
}

func TestProductCreate_PaidSinLimite(t *testing.T) {
	uc, _ := newProductFixture(planCompany(entity.PlanPaid))

	for i := 0; i < freeLimit+2; i++ {
		_, err := uc.Create("c1", productReq(string(rune('A'+i))))
		require.NoError(t, err)
	}
}

func TestProductCreate_TrialVigenteSinLimite(t *testing.T) {
	company := planCompany(entity.PlanTrial)
	started := time.Now().AddDate(0, 0, -2)
	company.TrialStartedAt = &started
	company.TrialLengthDays = 15
	uc, _ := newProductFixture(company)

	for i := 0; i < freeLimit+2; i++ {
		_, err := uc.Create("c1", productReq(string(rune('A'+i))))
		require.NoError(t, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo por plan
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_PlanBloqueado(t *testing.T) {
	for _, status := range []string{entity.PlanPastDue, entity.PlanSuspended} {
		uc, _ := newProductFixture(planCompany(status))
		_, err := uc.Create("c1", productReq("A"))
		assert.ErrorIs(t, err, domain.ErrPlanBlocked, status)
	}
}

func TestProductCreate_TrialVencidoBloquea(t *testing.T) {
	company := planCompany(entity.PlanTrial)
	started := time.Now().AddDate(0, 0, -20)
	company.TrialStartedAt = &started
	company.TrialLengthDays = 15
	uc, _ := newProductFixture(company)

	_, err := uc.Create("c1", productReq("A"))
	assert.ErrorIs(t, err, domain.ErrPlanBlocked)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones y lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newProductFixture(planCompany(entity.PlanPaid))

	_, err := uc.Create("c1", productReq("A"))
	require.NoError(t, err)
	_, err = uc.Create("c1", productReq("A"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_ValidaEntrada(t *testing.T) {
	uc, _ := newProductFixture(planCompany(entity.PlanPaid))

	cases := []dto.CreateProductRequest{
		{SKU: "", Name: "x", Price: decimal.NewFromInt(1)},
		{SKU: "A", Name: "", Price: decimal.NewFromInt(1)},
		{SKU: "A", Name: "x", Price: decimal.NewFromInt(-1)},
		{SKU: "A", Name: "x", Price: decimal.NewFromInt(1), Stock: -1},
	}
	for _, in := range cases {
		_, err := uc.Create("c1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProductGetByID_OtraEmpresa(t *testing.T) {
	uc, repo := newProductFixture(planCompany(entity.PlanPaid))
	require.NoError(t, repo.Create(&entity.Product{ID: "p1", CompanyID: "c2", SKU: "A", Name: "x"}))

	_, err := uc.GetByID("c1", "p1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
