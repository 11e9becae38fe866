// file: internals/features/school/academics/grades/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradecontroller "edufam_backend/internals/features/school/academics/grades/controller"
	featureMw "edufam_backend/internals/middlewares/features"
)

// GradeAdminRoutes wires the /api/a review surface. Everything here is
// principal/school-admin territory.
func GradeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := gradecontroller.NewGradeAdminController(db)

	grades := r.Group("/grades", featureMw.IsPrincipalOrAdmin())

	grades.Get("/", ctl.List)

	grades.Patch("/:id/review", ctl.Review)
	grades.Patch("/:id/approve", ctl.Approve)
	grades.Patch("/:id/reject", ctl.Reject)
	grades.Patch("/:id/release", ctl.Release)

	grades.Post("/batch/approve", ctl.BatchApprove)
	grades.Post("/batch/reject", ctl.BatchReject)
	grades.Post("/batch/release", ctl.BatchRelease)

	grades.Post("/overrides", ctl.RequestOverride)
	grades.Get("/overrides/pending", ctl.ListPendingOverrides)
	grades.Patch("/overrides/:id/approve", ctl.ApproveOverride)
	grades.Patch("/overrides/:id/reject", ctl.RejectOverride)

	// keep the parameterized detail route after the static /overrides paths
	grades.Get("/:id", ctl.GetByID)
}

// GradeOwnerRoutes: platform-admin cross-school listing on /api/o.
func GradeOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := gradecontroller.NewGradeAdminController(db)
	r.Get("/grades", ctl.ListAllSchools)
}
