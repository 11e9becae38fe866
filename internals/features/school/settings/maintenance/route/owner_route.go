// file: internals/features/school/settings/maintenance/route/owner_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	maintenancecontroller "edufam_backend/internals/features/school/settings/maintenance/controller"
	"edufam_backend/internals/features/school/settings/maintenance/service"
)

// MaintenanceOwnerRoutes wires the platform-admin surface (/api/o). Caller
// has already applied auth + the platform-admin guard.
func MaintenanceOwnerRoutes(r fiber.Router, db *gorm.DB, svc *service.Service) {
	ctl := maintenancecontroller.NewMaintenanceController(db, svc)

	settings := r.Group("/settings")
	settings.Get("/maintenance", ctl.Get)
	settings.Put("/maintenance", ctl.Set)
}

// MaintenancePublicRoutes exposes the unauthenticated status endpoint.
func MaintenancePublicRoutes(r fiber.Router, db *gorm.DB, svc *service.Service) {
	ctl := maintenancecontroller.NewMaintenanceController(db, svc)
	r.Get("/maintenance-status", ctl.Status)
}
