// file: internals/features/school/settings/maintenance/controller/maintenance_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edufam_backend/internals/features/school/settings/maintenance/service"
	helper "edufam_backend/internals/helpers"
	helperAuth "edufam_backend/internals/helpers/auth"
)

type MaintenanceController struct {
	Validate *validator.Validate
	Store    *service.SettingStore
	Svc      *service.Service
}

func NewMaintenanceController(db *gorm.DB, svc *service.Service) *MaintenanceController {
	return &MaintenanceController{
		Validate: validator.New(),
		Store:    service.NewSettingStore(db),
		Svc:      svc,
	}
}

type setMaintenanceRequest struct {
	Enabled      bool     `json:"enabled"`
	Message      string   `json:"message" validate:"omitempty,max=500"`
	AllowedRoles []string `json:"allowed_roles" validate:"omitempty,dive,min=1,max=32"`
}

/* =========================================================
   GET /api/public/maintenance-status
========================================================= */

// Status is unauthenticated so frontends can render the banner pre-login.
func (ctl *MaintenanceController) Status(c *fiber.Ctx) error {
	st := ctl.Svc.State()
	return helper.JsonOK(c, "Maintenance status", fiber.Map{
		"enabled": st.Enabled,
		"message": st.Message,
	})
}

/* =========================================================
   GET /api/o/settings/maintenance
   PUT /api/o/settings/maintenance
========================================================= */

func (ctl *MaintenanceController) Get(c *fiber.Ctx) error {
	st, err := ctl.Store.ReadMaintenanceState(c.UserContext())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read maintenance state")
	}
	return helper.JsonOK(c, "Maintenance state", fiber.Map{
		"enabled":       st.Enabled,
		"message":       st.Message,
		"allowed_roles": st.AllowedRoles,
	})
}

func (ctl *MaintenanceController) Set(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req setMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	st := service.MaintenanceState{
		Enabled:      req.Enabled,
		Message:      req.Message,
		AllowedRoles: req.AllowedRoles,
	}
	if err := ctl.Store.WriteMaintenanceState(c.UserContext(), st, actorID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to write maintenance state")
	}

	// take effect now, not on the next poll tick
	ctl.Svc.Refresh(c.UserContext())

	return helper.JsonUpdated(c, "Maintenance state updated", fiber.Map{
		"enabled":       req.Enabled,
		"message":       req.Message,
		"allowed_roles": req.AllowedRoles,
	})
}
