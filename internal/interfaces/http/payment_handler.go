package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/payments"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// PaymentHandler endpoints del tenant para reportar pagos de suscripción.
type PaymentHandler struct {
	uc  *payments.IntakeUseCase
	log *logger.Logger
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(uc *payments.IntakeUseCase, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log}
}

// Submit godoc
// @Summary      Reportar pago
// @Description  Registra un pago manual (Zelle, Pago Móvil, transferencia); queda PENDING hasta la revisión del operador
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body dto.SubmitPaymentRequest true "Pago reportado"
// @Success      201 {object} dto.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payments [post]
func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.Submit(GetCompanyID(c), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().Str("payment_id", out.ID).Str("company_id", out.CompanyID).Msg("pago reportado")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Historial de pagos
// @Tags         payments
// @Produce      json
// @Param        limit  query int false "Límite" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200 {object} dto.PaymentListResponse
// @Security     BearerAuth
// @Router       /api/payments [get]
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListByCompany(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// SimulateSuccess godoc
// @Summary      Simular pago exitoso
// @Description  Atajo de desarrollo: activa el plan PAID sin pasar por la cola de revisión
// @Tags         payments
// @Produce      json
// @Success      201 {object} dto.PaymentResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payments/simulate-success [post]
func (h *PaymentHandler) SimulateSuccess(c *fiber.Ctx) error {
	out, err := h.uc.SimulateSuccess(c.Context(), GetCompanyID(c), time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
