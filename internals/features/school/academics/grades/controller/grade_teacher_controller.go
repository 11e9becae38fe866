// file: internals/features/school/academics/grades/controller/grade_teacher_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edufam_backend/internals/constants"
	"edufam_backend/internals/features/school/academics/grades/dto"
	"edufam_backend/internals/features/school/academics/grades/service"
	helper "edufam_backend/internals/helpers"
	helperAuth "edufam_backend/internals/helpers/auth"
)

type GradeTeacherController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Bulk      *service.BulkSubmissionService
	Overrides *service.OverrideService
}

func NewGradeTeacherController(db *gorm.DB) *GradeTeacherController {
	store := service.NewGormGradeStore(db)
	positions := service.NewSQLPositionCalculator(db)
	return &GradeTeacherController{
		DB:        db,
		Validate:  validator.New(),
		Bulk:      service.NewBulkSubmissionService(store, positions),
		Overrides: service.NewOverrideService(db),
	}
}

/* =========================================================
   POST /api/u/grades/bulk-submit
========================================================= */

func (ctl *GradeTeacherController) BulkSubmit(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkGradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	isTeacher := helperAuth.GetActiveRole(c) == constants.RoleTeacher
	in := req.ToInput(schoolID, actorID, isTeacher)

	res, err := ctl.Bulk.Submit(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingSelection),
			errors.Is(err, service.ErrNothingToSubmit),
			errors.Is(err, service.ErrScoreOutOfRange):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			// the whole batch failed, show the underlying error rather than
			// pretending part of it went through
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	status := "draft"
	if res.Submitted {
		status = "submitted"
	}
	return helper.JsonCreated(c, "Grades saved", dto.BulkSubmissionResponse{
		GradesWritten: res.GradesWritten,
		Status:        status,
	})
}

/* =========================================================
   GET /api/u/grades
========================================================= */

// List returns grades in the caller's school, filtered by query params.
// Staff see every status; the released-only restriction applies to parents
// on their own route.
func (ctl *GradeTeacherController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	return listGrades(c, ctl.DB, schoolID)
}

/* =========================================================
   POST /api/u/grades/overrides
========================================================= */

func (ctl *GradeTeacherController) RequestOverride(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.OverrideRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	ov, err := ctl.Overrides.Request(c.UserContext(), schoolID, req.GradeID, req.NewScore, req.Reason, actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGradeNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOverrideNotEligible),
			errors.Is(err, service.ErrOverrideSameScore),
			errors.Is(err, service.ErrScoreOutOfRange),
			errors.Is(err, service.ErrReasonRequired):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
	}
	return helper.JsonCreated(c, "Override requested", dto.FromOverrideModel(ov))
}

func applyGradeFilters(tx *gorm.DB, q *dto.ListGradeQuery) *gorm.DB {
	if q.StudentID != nil {
		tx = tx.Where("grade_student_id = ?", *q.StudentID)
	}
	if q.SubjectID != nil {
		tx = tx.Where("grade_subject_id = ?", *q.SubjectID)
	}
	if q.ClassID != nil {
		tx = tx.Where("grade_class_id = ?", *q.ClassID)
	}
	if q.Term != nil && *q.Term != "" {
		tx = tx.Where("grade_term = ?", *q.Term)
	}
	if q.ExamType != nil && *q.ExamType != "" {
		tx = tx.Where("grade_exam_type = ?", *q.ExamType)
	}
	if q.Status != nil && *q.Status != "" {
		tx = tx.Where("grade_status = ?", *q.Status)
	}
	return tx
}
