// file: internals/route/index.go
package route

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edufam_backend/internals/configs"
	graderoute "edufam_backend/internals/features/school/academics/grades/route"
	maintenanceroute "edufam_backend/internals/features/school/settings/maintenance/route"
	mservice "edufam_backend/internals/features/school/settings/maintenance/service"
	authmw "edufam_backend/internals/middlewares/auth"
	featureMw "edufam_backend/internals/middlewares/features"
)

// SetupRoutes mounts every API group.
//
//	/api/public : no auth (health banner, maintenance status)
//	/api/u      : authenticated school users (teachers, parents)
//	/api/a      : school admins & principals
//	/api/o      : platform admins (never gated by maintenance)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	// maintenance state is cached and polled; the gate reads the cache only
	maintenanceSvc := mservice.NewService(
		mservice.NewSettingStore(db),
		configs.GetEnvDuration("MAINTENANCE_POLL_SECONDS", 15*time.Second),
	)
	maintenanceSvc.StartPolling(context.Background())

	api := app.Group("/api")

	public := api.Group("/public")
	maintenanceroute.MaintenancePublicRoutes(public, db, maintenanceSvc)

	user := api.Group("/u",
		authmw.AuthMiddleware(),
		featureMw.UseSchoolScope(),
		featureMw.MaintenanceGate(maintenanceSvc),
	)
	graderoute.GradeUserRoutes(user, db)

	admin := api.Group("/a",
		authmw.AuthMiddleware(),
		featureMw.UseSchoolScope(),
		featureMw.MaintenanceGate(maintenanceSvc),
	)
	graderoute.GradeAdminRoutes(admin, db)

	owner := api.Group("/o",
		authmw.AuthMiddleware(),
		featureMw.IsPlatformAdminGlobal(),
	)
	maintenanceroute.MaintenanceOwnerRoutes(owner, db, maintenanceSvc)
	graderoute.GradeOwnerRoutes(owner, db)
}
