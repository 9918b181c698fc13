package entity

import "time"

// Roles válidos para User. superadmin es el operador de plataforma:
// no pertenece a ninguna empresa (CompanyID vacío) y revisa pagos reportados.
const (
	RoleAdmin      = "admin"
	RoleVendedor   = "vendedor"
	RoleSuperAdmin = "superadmin"
)

// User representa un usuario del sistema (pertenece a una Company, salvo superadmin).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, vendedor, superadmin
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
