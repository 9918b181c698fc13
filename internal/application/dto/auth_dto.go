package dto

import "time"

// RegisterCompanyRequest alta de tienda: crea la empresa (plan FREE) y su usuario admin.
type RegisterCompanyRequest struct {
	CompanyName string `json:"company_name"`
	RIF         string `json:"rif"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AdminName   string `json:"admin_name"`
}

// RegisterUserRequest alta de un usuario adicional dentro de la empresa.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin | vendedor
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterCompanyResponse empresa creada + su admin.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
}
