package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/subscription"
	"github.com/mercavia/mercavia-api/internal/application/usecase"
	"github.com/mercavia/mercavia-api/internal/domain/entity"
	"github.com/mercavia/mercavia-api/internal/domain/plan"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// SubscriptionHandler endpoints del tenant sobre su propio plan.
type SubscriptionHandler struct {
	plans     *subscription.Manager
	companies *usecase.CompanyUseCase
	log       *logger.Logger
}

// NewSubscriptionHandler construye el handler de suscripción.
func NewSubscriptionHandler(plans *subscription.Manager, companies *usecase.CompanyUseCase, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{plans: plans, companies: companies, log: log}
}

// Me godoc
// @Summary      Mi empresa
// @Description  Empresa del solicitante con su estado de plan y vencimientos derivados
// @Tags         subscription
// @Produce      json
// @Success      200 {object} dto.CompanyResponse
// @Security     BearerAuth
// @Router       /api/subscription/me [get]
func (h *SubscriptionHandler) Me(c *fiber.Ctx) error {
	out, err := h.companies.GetByID(GetCompanyID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// StartTrial godoc
// @Summary      Iniciar trial
// @Description  FREE → TRIAL; cualquier otro estado origen es rechazado
// @Tags         subscription
// @Produce      json
// @Success      200 {object} dto.CompanyResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/subscription/trial [post]
func (h *SubscriptionHandler) StartTrial(c *fiber.Ctx) error {
	company, err := h.plans.StartTrial(GetCompanyID(c), time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().Str("company_id", company.ID).Msg("trial iniciado")
	return c.JSON(companyToResponse(company))
}

// Downgrade godoc
// @Summary      Bajar a FREE
// @Description  PAID → FREE a pedido del tenant; limpia la vigencia de la suscripción
// @Tags         subscription
// @Produce      json
// @Success      200 {object} dto.CompanyResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/subscription/downgrade [post]
func (h *SubscriptionHandler) Downgrade(c *fiber.Ctx) error {
	company, err := h.plans.Downgrade(GetCompanyID(c), time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().Str("company_id", company.ID).Msg("downgrade a FREE")
	return c.JSON(companyToResponse(company))
}

func companyToResponse(company *entity.Company) *dto.CompanyResponse {
	if company == nil {
		return nil
	}
	out := &dto.CompanyResponse{
		ID:              company.ID,
		Name:            company.Name,
		RIF:             company.RIF,
		Address:         company.Address,
		Phone:           company.Phone,
		Email:           company.Email,
		Status:          company.Status,
		PlanStatus:      company.PlanStatus,
		TrialStartedAt:  company.TrialStartedAt,
		SubscriptionEnd: company.SubscriptionEnd,
		CreatedAt:       company.CreatedAt,
		UpdatedAt:       company.UpdatedAt,
	}
	if end, ok := plan.TrialEndsAt(company); ok {
		out.TrialEndsAt = &end
	}
	return out
}
