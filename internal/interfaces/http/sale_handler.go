package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/application/sales"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// SaleHandler endpoints de ventas POS y órdenes del marketplace.
type SaleHandler struct {
	uc  *sales.FulfillmentUseCase
	log *logger.Logger
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(uc *sales.FulfillmentUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, log: log}
}

// CreatePOSSale godoc
// @Summary      Venta POS
// @Description  Registra una venta de mostrador: el pago se confirma en el momento y la venta nace PAID
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateSaleRequest true "Venta"
// @Success      201 {object} dto.SaleResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sales [post]
func (h *SaleHandler) CreatePOSSale(c *fiber.Ctx) error {
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.CreatePOSSale(c.Context(), GetCompanyID(c), GetUserID(c), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().
		Str("sale_id", out.ID).
		Str("company_id", out.CompanyID).
		Str("total", out.TotalAmount.String()).
		Msg("venta POS registrada")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PlaceOrder godoc
// @Summary      Crear orden
// @Description  Orden del marketplace: nace PENDING y avanza por la tabla de transiciones
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body dto.PlaceOrderRequest true "Orden"
// @Success      201 {object} dto.SaleResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders [post]
func (h *SaleHandler) PlaceOrder(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.PlaceOrder(c.Context(), GetCompanyID(c), req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar venta
// @Description  Aplica una transición de la tabla de estados; PAID exige método de pago del conjunto cerrado
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "ID de la venta"
// @Param        request body dto.UpdateSaleStatusRequest true "Estado destino"
// @Success      200 {object} dto.SaleResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sales/{id}/status [put]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "cuerpo JSON inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetCompanyID(c), c.Params("id"), req.Status, req.PaymentMethod)
	if err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().
		Str("sale_id", out.ID).
		Str("status", out.Status).
		Msg("venta transicionada")
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id path string true "ID de la venta"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        limit  query int false "Límite" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200 {object} dto.SaleListResponse
// @Security     BearerAuth
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
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
