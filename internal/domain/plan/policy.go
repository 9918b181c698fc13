// Package plan centraliza las decisiones de acceso derivadas del plan de una
// empresa. Es la única fuente de verdad para "qué puede hacer este tenant":
// todos los bordes (usecases, handlers) consultan aquí en vez de comparar
// estados a mano. Funciones puras, sin efectos ni errores.
package plan

import (
	"time"

	"github.com/mercavia/mercavia-api/internal/domain/entity"
)

// CanCreateProduct decide si la empresa puede crear otro producto.
// PAID y TRIAL no tienen límite; FREE solo mientras currentCount < freeLimit;
// PAST_DUE y SUSPENDED nunca.
func CanCreateProduct(c *entity.Company, currentCount, freeLimit int) bool {
	switch c.PlanStatus {
	case entity.PlanPaid, entity.PlanTrial:
		return true
	case entity.PlanFree:
		return currentCount < freeLimit
	}
	return false
}

// CanOperatePOS decide si la empresa puede transaccionar en el punto de venta.
// Solo PAID o TRIAL; FREE exhibe catálogo pero no vende.
func CanOperatePOS(c *entity.Company) bool {
	return c.PlanStatus == entity.PlanPaid || c.PlanStatus == entity.PlanTrial
}

// IsBlocked decide si la empresa está bloqueada para operaciones que mutan
// estado: PAST_DUE, SUSPENDED, o TRIAL vencido. El vencimiento del trial se
// deriva de now en cada acceso; no hay job de expiración.
func IsBlocked(c *entity.Company, now time.Time) bool {
	switch c.PlanStatus {
	case entity.PlanPastDue, entity.PlanSuspended:
		return true
	case entity.PlanTrial:
		end, ok := TrialEndsAt(c)
		return ok && now.After(end)
	}
	return false
}

// TrialEndsAt devuelve el fin del período de prueba. ok es false si la
// empresa nunca inició un trial.
func TrialEndsAt(c *entity.Company) (time.Time, bool) {
	if c.TrialStartedAt == nil {
		return time.Time{}, false
	}
	return c.TrialStartedAt.AddDate(0, 0, c.TrialLengthDays), true
}
