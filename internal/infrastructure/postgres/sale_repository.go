package postgres

import (
	"context"
	"fmt"

	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
)

// Asegura que SaleRepo implementa repository.SaleRepository.
var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera e ítems. Se asume dentro de una petición; si se
// necesita atomicidad estricta, pasar una tx como Querier.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, company_id, customer_id, user_id, total_amount,
			payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CompanyID, sale.CustomerID, nullIfEmpty(sale.UserID),
		sale.TotalAmount, sale.PaymentMethod, sale.Status,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name,
			quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range sale.Items {
		it := &sale.Items[i]
		it.SaleID = sale.ID
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.SaleID, it.ProductID, it.ProductName,
			it.Quantity, it.UnitPrice, it.Subtotal,
		); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus ítems cargados.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, customer_id, user_id, total_amount,
			payment_method, status, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var userID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.CustomerID, &userID, &s.TotalAmount,
		&s.PaymentMethod, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if userID != nil {
		s.UserID = *userID
	}
	items, err := r.itemsBySale(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// ListByCompany devuelve ventas de una empresa con sus ítems, paginadas.
func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, customer_id, user_id, total_amount,
			payment_method, status, created_at, updated_at
		FROM sales WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var userID *string
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.CustomerID, &userID, &s.TotalAmount,
			&s.PaymentMethod, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if userID != nil {
			s.UserID = *userID
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.itemsBySale(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

// UpdateStatus escribe status y payment_method condicionado al estado leído (CAS).
// total_amount no se toca: es inmutable después de la creación.
func (r *SaleRepo) UpdateStatus(sale *entity.Sale, expectedStatus string) error {
	query := `
		UPDATE sales SET status = $2, payment_method = $3, updated_at = $4
		WHERE id = $1 AND status = $5`
	cmd, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Status, sale.PaymentMethod, sale.UpdatedAt, expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *SaleRepo) itemsBySale(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
