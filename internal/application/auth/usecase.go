package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/domain"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/plan"
	"github.com/mercavia/mercavia-api/internal/domain/repository"
	"github.com/mercavia/mercavia-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de tienda, usuarios y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// RegisterCompany da de alta una tienda: crea la empresa en plan FREE y su
// usuario admin. Devuelve domain.ErrDuplicate si el RIF ya existe.
func (uc *AuthUseCase) RegisterCompany(in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if in.CompanyName == "" || in.RIF == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.companyRepo.GetByRIF(in.RIF)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:         uuid.New().String(),
		Name:       in.CompanyName,
		RIF:        in.RIF,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
		Status:     "active",
		PlanStatus: entity.PlanFree,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.AdminName
	if name == "" {
		name = in.Email
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(admin); err != nil {
		return nil, err
	}
	return &dto.RegisterCompanyResponse{
		Company: *toCompanyResponse(company),
		Admin:   *toUserResponse(admin),
	}, nil
}

// RegisterUser crea un usuario adicional dentro de la empresa del solicitante.
// Devuelve ErrEmailAlreadyExists si el email ya existe en esa company.
func (uc *AuthUseCase) RegisterUser(companyID string, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.GetByEmailAndCompany(in.Email, companyID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if role != entity.RoleAdmin && role != entity.RoleVendedor {
		// superadmin no se asigna por registro; es de plataforma.
		return nil, domain.ErrInvalidInput
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	out := &dto.CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		RIF:             c.RIF,
		Address:         c.Address,
		Phone:           c.Phone,
		Email:           c.Email,
		Status:          c.Status,
		PlanStatus:      c.PlanStatus,
		TrialStartedAt:  c.TrialStartedAt,
		SubscriptionEnd: c.SubscriptionEnd,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if end, ok := plan.TrialEndsAt(c); ok {
		out.TrialEndsAt = &end
	}
	return out
}
