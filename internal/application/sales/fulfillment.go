// Package sales implementa el ciclo de vida de ventas/órdenes.
// Hay dos modos de creación documentados y separados a propósito:
// la venta POS nace PAID (el cajero confirma el pago en el momento) y la
// orden del marketplace nace PENDING y recorre la tabla de transiciones.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/notify"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/plan"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// FulfillmentUseCase crea ventas y aplica transiciones de estado.
type FulfillmentUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	publisher   notify.Publisher
}

// NewFulfillmentUseCase construye el caso de uso.
func NewFulfillmentUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	publisher notify.Publisher,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		publisher:   publisher,
	}
}

// CreatePOSSale registra una venta de punto de venta: el pago se confirmó de
// forma síncrona, así que nace directamente PAID con el método capturado.
// El plan de la empresa debe permitir operar el POS.
func (uc *FulfillmentUseCase) CreatePOSSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !plan.CanOperatePOS(company) || plan.IsBlocked(company, now) {
		return nil, domain.ErrPlanBlocked
	}

	items, total, err := uc.buildItems(companyID, in.Items)
	if err != nil {
		return nil, err
	}

	method := in.PaymentMethod
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    optionalID(in.CustomerID),
		UserID:        userID,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: &method,
		Status:        entity.SalePaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, notify.Event{
		Type:      notify.EventOrderCreated,
		CompanyID: companyID,
		SaleID:    sale.ID,
		NewStatus: sale.Status,
		At:        now,
	})
	return toSaleResponse(sale), nil
}

// PlaceOrder registra una orden del marketplace: nace PENDING, sin método de
// pago, y avanza por la tabla de transiciones. Una empresa bloqueada no
// recibe órdenes nuevas (su catálogo sigue visible, eso es del colaborador UI).
func (uc *FulfillmentUseCase) PlaceOrder(ctx context.Context, companyID string, in dto.PlaceOrderRequest) (*dto.SaleResponse, error) {
	now := time.Now()
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if plan.IsBlocked(company, now) {
		return nil, domain.ErrPlanBlocked
	}

	items, total, err := uc.buildItems(companyID, in.Items)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  optionalID(in.CustomerID),
		Items:       items,
		TotalAmount: total,
		Status:      entity.SalePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, notify.Event{
		Type:      notify.EventOrderCreated,
		CompanyID: companyID,
		SaleID:    sale.ID,
		NewStatus: sale.Status,
		At:        now,
	})
	return toSaleResponse(sale), nil
}

// UpdateStatus aplica una transición de la tabla de estados sobre la venta.
// target == PAID exige paymentMethod del conjunto cerrado. La escritura es
// CAS sobre el estado leído; el evento se publica después del commit y su
// fallo no revierte la transición.
func (uc *FulfillmentUseCase) UpdateStatus(ctx context.Context, companyID, saleID, target, paymentMethod string) (*dto.SaleResponse, error) {
	if !entity.ValidSaleStatus(target) {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	// Terminales primero: "orden ya cerrada" aunque el salto estuviera listado.
	if entity.SaleTerminal(sale.Status) {
		return nil, domain.ErrIllegalTransition
	}
	if !entity.CanTransitionSale(sale.Status, target) {
		return nil, domain.ErrIllegalTransition
	}
	if target == entity.SalePaid {
		if !entity.ValidPaymentMethod(paymentMethod) {
			return nil, domain.ErrInvalidInput
		}
		sale.PaymentMethod = &paymentMethod
	}

	oldStatus := sale.Status
	sale.Status = target
	sale.UpdatedAt = time.Now()
	if err := uc.saleRepo.UpdateStatus(sale, oldStatus); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, notify.Event{
		Type:      notify.EventOrderStatusChanged,
		CompanyID: sale.CompanyID,
		SaleID:    sale.ID,
		OldStatus: oldStatus,
		NewStatus: target,
		At:        sale.UpdatedAt,
	})
	return toSaleResponse(sale), nil
}

// GetByID devuelve una venta de la empresa.
func (uc *FulfillmentUseCase) GetByID(companyID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

// ListByCompany lista las ventas de la empresa con paginación.
func (uc *FulfillmentUseCase) ListByCompany(companyID string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// buildItems valida las líneas contra el catálogo y calcula subtotales y
// total una sola vez. La cantidad no puede superar el snapshot de stock; el
// descuento real lo hace el colaborador de inventario.
func (uc *FulfillmentUseCase) buildItems(companyID string, in []dto.SaleItemRequest) ([]entity.SaleItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	items := make([]entity.SaleItem, 0, len(in))
	total := decimal.Zero
	for _, line := range in {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, decimal.Zero, domain.ErrForbidden
		}
		if line.Quantity > product.Stock {
			return nil, decimal.Zero, domain.ErrInsufficientStock
		}
		unitPrice := line.UnitPrice
		if unitPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, entity.SaleItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	out := &dto.SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Items:       items,
		TotalAmount: s.TotalAmount,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.CustomerID != nil {
		out.CustomerID = *s.CustomerID
	}
	if s.PaymentMethod != nil {
		out.PaymentMethod = *s.PaymentMethod
	}
	return out
}
