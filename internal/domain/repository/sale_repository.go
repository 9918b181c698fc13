package repository

import "github.com/mercavia/mercavia-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas/órdenes.
type SaleRepository interface {
	// Create persiste cabecera e ítems juntos.
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus ítems cargados.
	GetByID(id string) (*entity.Sale, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
	// UpdateStatus escribe status y payment_method condicionado a que el
	// estado siga siendo expectedStatus (CAS). Devuelve domain.ErrConflict
	// si otra transición se aplicó entre la lectura y la escritura.
	UpdateStatus(sale *entity.Sale, expectedStatus string) error
}
