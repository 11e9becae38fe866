// file: internals/features/school/academics/grades/controller/grade_parent_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edufam_backend/internals/features/school/academics/grades/dto"
	gmodel "edufam_backend/internals/features/school/academics/grades/model"
	"edufam_backend/internals/features/school/academics/grades/service"
	helper "edufam_backend/internals/helpers"
	helperAuth "edufam_backend/internals/helpers/auth"
)

// GradeParentController serves guardians. The released-only and
// verified-link rules are enforced by ParentGradeService, this layer only
// translates HTTP.
type GradeParentController struct {
	DB     *gorm.DB
	Parent *service.ParentGradeService
}

func NewGradeParentController(db *gorm.DB) *GradeParentController {
	store := service.NewGormParentReadStore(db)
	return &GradeParentController{
		DB:     db,
		Parent: service.NewParentGradeService(store, store),
	}
}

/* =========================================================
   GET /api/u/parent/children
========================================================= */

func (ctl *GradeParentController) ListChildren(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	guardianID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var links []gmodel.GuardianStudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("guardian_student_school_id = ? AND guardian_student_guardian_user_id = ? AND guardian_student_is_verified = TRUE",
			schoolID, guardianID).
		Find(&links).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list children")
	}
	return helper.JsonOK(c, "Verified children", links)
}

/* =========================================================
   GET /api/u/parent/children/:student_id/grades
========================================================= */

func (ctl *GradeParentController) ListChildGrades(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	guardianID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	p := helper.ResolvePaging(c, 25, 100)

	rows, total, err := ctl.Parent.ListChildGrades(c.UserContext(), schoolID, guardianID, studentID,
		service.ParentGradeQuery{
			Term:     c.Query("term"),
			ExamType: c.Query("exam_type"),
			Limit:    p.Limit,
			Offset:   p.Offset,
		})
	if err != nil {
		if errors.Is(err, service.ErrNotGuardianOfStudent) {
			return helper.JsonError(c, fiber.StatusForbidden, "No verified link to this student")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list grades")
	}

	out := make([]dto.ReleasedGradeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromGradeModelReleased(&rows[i]))
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Released grades", out, &pg)
}
