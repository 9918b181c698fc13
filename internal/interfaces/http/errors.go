package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mercavia/mercavia-api/internal/application/dto"
	"github.com/mercavia/mercavia-api/internal/domain"
)

// respondDomainError traduce los errores sentinela del dominio al status HTTP
// y código estable que consume el frontend. Cualquier error no reconocido es
// un 500 con mensaje genérico (el detalle queda en el log, no en la respuesta).
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrPlanLimit):
		return respond(c, fiber.StatusForbidden, "PLAN_LIMIT", err)
	case errors.Is(err, domain.ErrPlanBlocked):
		return respond(c, fiber.StatusForbidden, "PLAN_BLOCKED", err)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", err)
	case errors.Is(err, domain.ErrIllegalTransition):
		return respond(c, fiber.StatusConflict, "ILLEGAL_TRANSITION", err)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "error interno del servidor",
		})
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
