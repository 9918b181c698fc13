package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una empresa.
// Stock es el snapshot vigente usado para validar ventas; el descuento real
// lo hace el colaborador de inventario, no este core.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
