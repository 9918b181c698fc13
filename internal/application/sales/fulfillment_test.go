package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/notify"
	"github.com/mercavia/mercavia-api/internal/application/sales"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	return &cp, nil
}

func (r *fakeSaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateStatus replica el CAS del repo real y, como la tabla sales, no
// reescribe el total.
func (r *fakeSaleRepo) UpdateStatus(s *entity.Sale, expectedStatus string) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != expectedStatus {
		return domain.ErrConflict
	}
	stored.Status = s.Status
	stored.PaymentMethod = s.PaymentMethod
	stored.UpdatedAt = s.UpdatedAt
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByCompany(companyID string) (int, error) {
	return len(r.products), nil
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
func (r *fakeCompanyRepo) GetByRIF(rif string) (*entity.Company, error)           { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error                         { return nil }
func (r *fakeCompanyRepo) UpdatePlan(c *entity.Company, expectedStatus string) error { return nil }
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error)      { return nil, nil }

type recordingPublisher struct {
	events []notify.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) {
	p.events = append(p.events, ev)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fulfillFixture struct {
	uc        *sales.FulfillmentUseCase
	saleRepo  *fakeSaleRepo
	publisher *recordingPublisher
}

func newFulfillFixture(company *entity.Company, products ...*entity.Product) *fulfillFixture {
	saleRepo := newFakeSaleRepo()
	publisher := &recordingPublisher{}
	uc := sales.NewFulfillmentUseCase(
		saleRepo,
		newFakeProductRepo(products...),
		newFakeCompanyRepo(company),
		publisher,
	)
	return &fulfillFixture{uc: uc, saleRepo: saleRepo, publisher: publisher}
}

func activeCompany(planStatus string) *entity.Company {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Company{
		ID:         "c1",
		Name:       "Panadería El Trigal",
		RIF:        "J-11223344-5",
		Status:     "active",
		PlanStatus: planStatus,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func catalogProduct(id string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:        id,
		CompanyID: "c1",
		SKU:       "SKU-" + id,
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
	}
}

// Dos líneas: 10×2 + 5×1 = 25.
func twoLineOrder() []dto.SaleItemRequest {
	return []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePOSSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePOSSale_NacePagada(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanPaid),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))

	out, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.MethodCash,
		Items:         twoLineOrder(),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SalePaid, out.Status, "la venta POS nace PAID")
	assert.Equal(t, entity.MethodCash, out.PaymentMethod)
	assert.True(t, decimal.NewFromInt(25).Equal(out.TotalAmount),
		"total = 10*2 + 5*1")
	require.Len(t, out.Items, 2)
	assert.True(t, decimal.NewFromInt(20).Equal(out.Items[0].Subtotal))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notify.EventOrderCreated, f.publisher.events[0].Type)
	assert.Equal(t, entity.SalePaid, f.publisher.events[0].NewStatus)
}

func TestCreatePOSSale_MetodoObligatorio(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanPaid), catalogProduct("p1", 10, 50))

	_, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: "",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePOSSale_PlanBloqueado(t *testing.T) {
	for _, status := range []string{entity.PlanPastDue, entity.PlanSuspended} {
		f := newFulfillFixture(activeCompany(status), catalogProduct("p1", 10, 50))
		_, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
			PaymentMethod: entity.MethodCash,
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrPlanBlocked, status)
	}
}

func TestCreatePOSSale_TrialVencidoBloquea(t *testing.T) {
	company := activeCompany(entity.PlanTrial)
	started := time.Now().AddDate(0, 0, -20) // trial de 15 días, empezó hace 20
	company.TrialStartedAt = &started
	company.TrialLengthDays = 15
	f := newFulfillFixture(company, catalogProduct("p1", 10, 50))

	_, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.MethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrPlanBlocked)
}

func TestCreatePOSSale_StockInsuficiente(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanPaid), catalogProduct("p1", 10, 3))

	_, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.MethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreatePOSSale_PrecioPorDefectoDelCatalogo(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanPaid), catalogProduct("p1", 7, 50))

	out, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.MethodCard,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3}}, // sin unit_price
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(21).Equal(out.TotalAmount),
		"sin precio explícito se usa el del producto")
}

func TestCreatePOSSale_ProductoDeOtraEmpresa(t *testing.T) {
	other := catalogProduct("p1", 10, 50)
	other.CompanyID = "c2"
	f := newFulfillFixture(activeCompany(entity.PlanPaid), other)

	_, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.MethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreatePOSSale_SinLineas(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanPaid))
	_, err := f.uc.CreatePOSSale(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.MethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_NacePendiente(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))

	out, err := f.uc.PlaceOrder(context.Background(), "c1", dto.PlaceOrderRequest{
		CustomerID: "cust-9",
		Items:      twoLineOrder(),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SalePending, out.Status)
	assert.Empty(t, out.PaymentMethod, "la orden no tiene método hasta liquidarse")
	assert.True(t, decimal.NewFromInt(25).Equal(out.TotalAmount))
}

func TestPlaceOrder_EmpresaBloqueadaNoRecibeOrdenes(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanSuspended), catalogProduct("p1", 10, 50))

	_, err := f.uc.PlaceOrder(context.Background(), "c1", dto.PlaceOrderRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrPlanBlocked)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func placeOrder(t *testing.T, f *fulfillFixture) *dto.SaleResponse {
	t.Helper()
	out, err := f.uc.PlaceOrder(context.Background(), "c1", dto.PlaceOrderRequest{
		Items: twoLineOrder(),
	})
	require.NoError(t, err)
	return out
}

func TestUpdateStatus_CicloCompletoHastaPaid(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)
	ctx := context.Background()

	out, err := f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SalePreparing, "")
	require.NoError(t, err)
	assert.Equal(t, entity.SalePreparing, out.Status)

	out, err = f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SaleReadyForPickup, "")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleReadyForPickup, out.Status)

	out, err = f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SalePaid, entity.MethodTransfer)
	require.NoError(t, err)
	assert.Equal(t, entity.SalePaid, out.Status)
	assert.Equal(t, entity.MethodTransfer, out.PaymentMethod)

	// El total no cambió en todo el recorrido.
	assert.True(t, decimal.NewFromInt(25).Equal(out.TotalAmount),
		"ninguna transición recalcula el total")

	// order.created + 3 status_changed
	require.Len(t, f.publisher.events, 4)
	assert.Equal(t, notify.EventOrderStatusChanged, f.publisher.events[3].Type)
	assert.Equal(t, entity.SaleReadyForPickup, f.publisher.events[3].OldStatus)
	assert.Equal(t, entity.SalePaid, f.publisher.events[3].NewStatus)
}

func TestUpdateStatus_PaidExigeMetodo(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SaleReadyForPickup, "")
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SalePaid, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "PAID sin método debe rechazarse")

	_, err = f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SalePaid, "EFECTIVO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método fuera del conjunto cerrado")

	// La orden sigue donde estaba, lista para reintentar con método válido.
	out, err := f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SalePaid, entity.MethodCash)
	require.NoError(t, err)
	assert.Equal(t, entity.SalePaid, out.Status)
}

func TestUpdateStatus_SaltoIlegal(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), "c1", order.ID, entity.SalePaid, entity.MethodCash)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition,
		"PENDING → PAID no está en la tabla")
}

func TestUpdateStatus_TerminalCerrado(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, "c1", order.ID, entity.SaleCancelled, "")
	require.NoError(t, err)

	for _, target := range []string{entity.SalePending, entity.SalePreparing,
		entity.SaleReadyForPickup, entity.SalePaid, entity.SaleCancelled} {
		_, err = f.uc.UpdateStatus(ctx, "c1", order.ID, target, entity.MethodCash)
		assert.ErrorIs(t, err, domain.ErrIllegalTransition,
			"una orden CANCELLED no sale de ahí: %s", target)
	}
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), "c1", order.ID, "SHIPPED", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_OtraEmpresaNoPuede(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)

	_, err := f.uc.UpdateStatus(context.Background(), "c2", order.ID, entity.SalePreparing, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_VentaInexistente(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree))
	_, err := f.uc.UpdateStatus(context.Background(), "c1", "nope", entity.SalePreparing, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos escritores sobre la misma orden: el CAS deja pasar solo al primero.
func TestUpdateStatus_CASConcurrente(t *testing.T) {
	f := newFulfillFixture(activeCompany(entity.PlanFree),
		catalogProduct("p1", 10, 50), catalogProduct("p2", 5, 50))
	order := placeOrder(t, f)

	// Simula al segundo escritor decidiendo sobre el estado viejo: el primero
	// ya movió la orden a PREPARING.
	stale, err := f.saleRepo.GetByID(order.ID)
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), "c1", order.ID, entity.SalePreparing, "")
	require.NoError(t, err)

	stale.Status = entity.SaleCancelled
	err = f.saleRepo.UpdateStatus(stale, entity.SalePending)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
