// file: internals/features/school/academics/grades/controller/grade_admin_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edufam_backend/internals/features/school/academics/grades/dto"
	"edufam_backend/internals/features/school/academics/grades/service"
	helper "edufam_backend/internals/helpers"
	helperAuth "edufam_backend/internals/helpers/auth"
)

// GradeAdminController serves the review side of the workflow: principals and
// school admins moving grades through review/approve/reject/release, plus
// override decisions.
type GradeAdminController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Workflow  *service.WorkflowService
	Overrides *service.OverrideService
	Positions service.PositionCalculator
}

func NewGradeAdminController(db *gorm.DB) *GradeAdminController {
	return &GradeAdminController{
		DB:        db,
		Validate:  validator.New(),
		Workflow:  service.NewWorkflowService(db),
		Overrides: service.NewOverrideService(db),
		Positions: service.NewSQLPositionCalculator(db),
	}
}

/* =========================================================
   Listing & detail
   GET /api/a/grades
   GET /api/a/grades/:id
========================================================= */

func (ctl *GradeAdminController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	return listGrades(c, ctl.DB, schoolID)
}

func (ctl *GradeAdminController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	return getGradeByID(c, ctl.DB, schoolID)
}

// ListAllSchools serves the platform owner: no tenant scope, optional
// school_id filter through the query. Mounted on /api/o only.
func (ctl *GradeAdminController) ListAllSchools(c *fiber.Ctx) error {
	if schoolQ := c.Query("school_id"); schoolQ != "" {
		schoolID, err := uuid.Parse(schoolQ)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
		}
		return listGrades(c, ctl.DB, schoolID)
	}
	return listGrades(c, ctl.DB, uuid.Nil)
}

/* =========================================================
   Single-grade transitions
   PATCH /api/a/grades/:id/{review,approve,reject,release}
========================================================= */

func (ctl *GradeAdminController) Review(c *fiber.Ctx) error {
	return ctl.applyEvent(c, service.EventReview, "Grade moved to review")
}

func (ctl *GradeAdminController) Approve(c *fiber.Ctx) error {
	return ctl.applyEvent(c, service.EventApprove, "Grade approved")
}

func (ctl *GradeAdminController) Reject(c *fiber.Ctx) error {
	return ctl.applyEvent(c, service.EventReject, "Grade rejected")
}

func (ctl *GradeAdminController) Release(c *fiber.Ctx) error {
	return ctl.applyEvent(c, service.EventRelease, "Grade released")
}

func (ctl *GradeAdminController) applyEvent(c *fiber.Ctx, ev service.Event, okMsg string) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	gradeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	var req dto.GradeDecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	g, err := ctl.Workflow.Apply(c.UserContext(), schoolID, gradeID, ev, actorID, req.Reason)
	if err != nil {
		return workflowErrToJson(c, err)
	}
	return helper.JsonUpdated(c, okMsg, dto.FromGradeModel(g))
}

/* =========================================================
   Batch transitions over one submission unit
   POST /api/a/grades/batch/{approve,reject,release}
========================================================= */

func (ctl *GradeAdminController) BatchApprove(c *fiber.Ctx) error {
	return ctl.applyBatchEvent(c, service.EventApprove, "Batch approved")
}

func (ctl *GradeAdminController) BatchReject(c *fiber.Ctx) error {
	return ctl.applyBatchEvent(c, service.EventReject, "Batch rejected")
}

func (ctl *GradeAdminController) BatchRelease(c *fiber.Ctx) error {
	return ctl.applyBatchEvent(c, service.EventRelease, "Batch released")
}

func (ctl *GradeAdminController) applyBatchEvent(c *fiber.Ctx, ev service.Event, okMsg string) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BatchDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	applied, err := ctl.Workflow.ApplyBatch(
		c.UserContext(),
		schoolID, req.ClassID, req.SubjectID,
		req.Term, req.ExamType,
		ev, actorID, req.Reason,
	)
	if err != nil {
		return workflowErrToJson(c, err)
	}

	// a release changes what parents see, keep ranks in step with it
	if ev == service.EventRelease && applied > 0 {
		ctl.Positions.TriggerRecalculation(schoolID, req.ClassID, req.Term, req.ExamType)
	}

	return helper.JsonUpdated(c, okMsg, fiber.Map{"grades_applied": applied})
}

/* =========================================================
   Override decisions
   POST /api/a/grades/overrides
   GET  /api/a/grades/overrides/pending
   PATCH /api/a/grades/overrides/:id/{approve,reject}
========================================================= */

// RequestOverride lets a principal/admin open the correction flow directly.
func (ctl *GradeAdminController) RequestOverride(c *fiber.Ctx) error {
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

func (ctl *GradeAdminController) ListPendingOverrides(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Overrides.ListPending(c.UserContext(), schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list override requests")
	}
	return helper.JsonOK(c, "Pending override requests", dto.FromOverrideModels(rows))
}

func (ctl *GradeAdminController) ApproveOverride(c *fiber.Ctx) error {
	return ctl.decideOverride(c, true)
}

func (ctl *GradeAdminController) RejectOverride(c *fiber.Ctx) error {
	return ctl.decideOverride(c, false)
}

func (ctl *GradeAdminController) decideOverride(c *fiber.Ctx, approve bool) error {
	schoolID, err := helperAuth.GetActiveSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	overrideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid override id")
	}

	var req dto.OverrideDecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	okMsg := "Override rejected"
	decide := ctl.Overrides.Reject
	if approve {
		okMsg = "Override approved, grade updated"
		decide = ctl.Overrides.Approve
	}

	m, err := decide(c.UserContext(), schoolID, overrideID, actorID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOverrideNotFound), errors.Is(err, service.ErrGradeNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOverrideNotPending):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decide override")
		}
	}
	return helper.JsonUpdated(c, okMsg, dto.FromOverrideModel(m))
}

func workflowErrToJson(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGradeNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrGradeImmutable):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReasonRequired):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update grade")
	}
}
