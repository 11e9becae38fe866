// file: internals/features/school/academics/grades/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradecontroller "edufam_backend/internals/features/school/academics/grades/controller"
	"edufam_backend/internals/middlewares"
	featureMw "edufam_backend/internals/middlewares/features"
)

// GradeUserRoutes wires the /api/u surface: teacher submission plus parent
// reads. The caller has already passed auth + school scope + the maintenance
// gate.
func GradeUserRoutes(r fiber.Router, db *gorm.DB) {
	teacherCtl := gradecontroller.NewGradeTeacherController(db)
	parentCtl := gradecontroller.NewGradeParentController(db)

	grades := r.Group("/grades")
	grades.Get("/", featureMw.IsSchoolStaff(), teacherCtl.List)
	grades.Post("/bulk-submit",
		featureMw.IsTeacher(),
		middlewares.BulkSubmissionRateLimiter(),
		teacherCtl.BulkSubmit,
	)
	grades.Post("/overrides", featureMw.IsSchoolStaff(), teacherCtl.RequestOverride)

	parent := r.Group("/parent", featureMw.IsParent())
	parent.Get("/children", parentCtl.ListChildren)
	parent.Get("/children/:student_id/grades", parentCtl.ListChildGrades)
}
