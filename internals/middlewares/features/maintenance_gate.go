// file: internals/middlewares/features/maintenance_gate.go
package middleware

import (
	"github.com/gofiber/fiber/v2"

	mservice "edufam_backend/internals/features/school/settings/maintenance/service"
	helperAuth "edufam_backend/internals/helpers/auth"
)

// MaintenanceGate blocks school traffic while maintenance mode is on.
// Runs after auth + school scope so the active role is resolved. The verdict
// comes from the cached service state, no DB on the hot path.
func MaintenanceGate(svc *mservice.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := helperAuth.GetRolesGlobal(c)
		if r := helperAuth.GetActiveRole(c); r != "" {
			roles = append(roles, r)
		}

		acc := svc.CheckAccess(roles...)
		if acc.Allowed {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusServiceUnavailable, acc.Message)
	}
}
