package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	// ErrIllegalTransition transición no listada en la tabla de estados
	// o entidad ya en estado terminal.
	ErrIllegalTransition = errors.New("transición de estado no permitida")
	// ErrConflict el registro cambió entre la lectura y la escritura (concurrencia
	// optimista). El llamador debe releer y reintentar; el core no reintenta solo.
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrPlanLimit la empresa alcanzó el límite de su plan (ej. productos en FREE).
	ErrPlanLimit = errors.New("límite del plan alcanzado")
	// ErrPlanBlocked el plan de la empresa no permite la operación (trial vencido,
	// moroso o suspendida).
	ErrPlanBlocked = errors.New("plan bloqueado para esta operación")
)
