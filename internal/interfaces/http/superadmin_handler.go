package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/payments"
	"github.com/mercavia/mercavia-api/internal/application/subscription"
	"github.com/mercavia/mercavia-api/internal/application/usecase"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// SuperAdminHandler endpoints del operador de plataforma: cola de revisión de
// pagos y administración de planes de todas las empresas.
type SuperAdminHandler struct {
	payments  *payments.IntakeUseCase
	plans     *subscription.Manager
	companies *usecase.CompanyUseCase
	log       *logger.Logger
}

// NewSuperAdminHandler construye el handler del operador.
func NewSuperAdminHandler(
	payments *payments.IntakeUseCase,
	plans *subscription.Manager,
	companies *usecase.CompanyUseCase,
	log *logger.Logger,
) *SuperAdminHandler {
	return &SuperAdminHandler{payments: payments, plans: plans, companies: companies, log: log}
}

// ListCompanies godoc
// @Summary      Listar empresas
// @Tags         superadmin
// @Produce      json
// @Param        limit  query int false "Límite" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200 {object} dto.CompanyListResponse
// @Security     BearerAuth
// @Router       /api/superadmin/companies [get]
func (h *SuperAdminHandler) ListCompanies(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.companies.List(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListPendingPayments godoc
// @Summary      Cola de pagos pendientes
// @Description  Pagos PENDING de todas las empresas, del más antiguo al más reciente
// @Tags         superadmin
// @Produce      json
// @Success      200 {array} dto.PaymentResponse
// @Security     BearerAuth
// @Router       /api/superadmin/payments/pending [get]
func (h *SuperAdminHandler) ListPendingPayments(c *fiber.Ctx) error {
	out, err := h.payments.ListPendingForReview()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ApprovePayment godoc
// @Summary      Aprobar pago
// @Description  Aprueba un pago PENDING y activa el plan PAID en la misma transacción; un pago ya decidido devuelve 409
// @Tags         superadmin
// @Produce      json
// @Param        id path string true "ID del pago"
// @Success      200 {object} dto.PaymentResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/superadmin/payments/{id}/approve [post]
func (h *SuperAdminHandler) ApprovePayment(c *fiber.Ctx) error {
	out, err := h.payments.Approve(c.Context(), c.Params("id"), GetUserID(c), time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().
		Str("payment_id", out.ID).
		Str("company_id", out.CompanyID).
		Str("operator_id", GetUserID(c)).
		Msg("pago aprobado")
	return c.JSON(out)
}

// RejectPayment godoc
// @Summary      Rechazar pago
// @Description  Rechaza un pago PENDING con motivo obligatorio; no toca el plan
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        id path string true "ID del pago"
// @Param        request body dto.RejectPaymentRequest true "Motivo"
// @Success      200 {object} dto.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/superadmin/payments/{id}/reject [post]
func (h *SuperAdminHandler) RejectPayment(c *fiber.Ctx) error {
	var req dto.RejectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.payments.Reject(c.Context(), c.Params("id"), GetUserID(c), req.Reason, time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().
		Str("payment_id", out.ID).
		Str("operator_id", GetUserID(c)).
		Msg("pago rechazado")
	return c.JSON(out)
}

// OverrideSubscription godoc
// @Summary      Asignar plan directamente
// @Description  Override administrativo: fija el plan sin pasar por la tabla de transiciones (PAST_DUE, SUSPENDED, correcciones manuales)
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        id path string true "ID de la empresa"
// @Param        request body dto.OverrideSubscriptionRequest true "Plan destino"
// @Success      200 {object} dto.CompanyResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/superadmin/companies/{id}/subscription [put]
func (h *SuperAdminHandler) OverrideSubscription(c *fiber.Ctx) error {
	var req dto.OverrideSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	company, err := h.plans.AdminOverride(c.Params("id"), req.Status, time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Warn().
		Str("company_id", company.ID).
		Str("plan_status", company.PlanStatus).
		Str("operator_id", GetUserID(c)).
		Msg("override de suscripción")
	return c.JSON(companyToResponse(company))
}
