package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. Si UnitPrice es cero se usa el precio
// vigente del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest venta POS: se confirma el pago en el momento, la venta
// nace en PAID con el método capturado.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"` // vacío = venta de mostrador
	PaymentMethod string            `json:"payment_method"`
	Items         []SaleItemRequest `json:"items"`
}

// PlaceOrderRequest orden del marketplace: nace en PENDING, sin método de pago.
type PlaceOrderRequest struct {
	CustomerID string            `json:"customer_id"`
	Items      []SaleItemRequest `json:"items"`
}

// UpdateSaleStatusRequest transición de estado de una venta/orden.
// PaymentMethod solo es obligatorio cuando Status es PAID.
type UpdateSaleStatusRequest struct {
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
}

// SaleItemResponse línea con snapshot de nombre y precio.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta/orden con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
