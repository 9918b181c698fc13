package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/auth"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// AuthHandler endpoints de registro y login.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// RegisterCompany godoc
// @Summary      Registrar tienda
// @Description  Crea la empresa en plan FREE y su usuario admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterCompanyRequest true "Datos de la tienda"
// @Success      201 {object} dto.RegisterCompanyResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var req dto.RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.RegisterCompany(req)
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().Str("company_id", out.Company.ID).Str("rif", out.Company.RIF).Msg("empresa registrada")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterUser godoc
// @Summary      Registrar usuario
// @Description  Crea un usuario adicional (admin o vendedor) en la empresa del solicitante
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterUserRequest true "Datos del usuario"
// @Success      201 {object} dto.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/users [post]
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.RegisterUser(GetCompanyID(c), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Login
// @Description  Autentica por email/password y devuelve el JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.Login(req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
