// file: internals/middlewares/features/maintenance_gate_test.go
package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"edufam_backend/internals/constants"
	mservice "edufam_backend/internals/features/school/settings/maintenance/service"
	helperAuth "edufam_backend/internals/helpers/auth"
)

type staticReader struct{ state mservice.MaintenanceState }

func (r staticReader) ReadMaintenanceState(ctx context.Context) (mservice.MaintenanceState, error) {
	return r.state, nil
}

func gateApp(state mservice.MaintenanceState, role string) *fiber.App {
	svc := mservice.NewService(staticReader{state: state}, time.Minute)
	svc.Refresh(context.Background())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocActiveRole, role)
		if role == constants.RoleEdufamAdmin {
			c.Locals(helperAuth.LocRolesGlobal, []string{role})
		}
		return c.Next()
	})
	app.Use(MaintenanceGate(svc))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func TestMaintenanceGate_OpenWhenOff(t *testing.T) {
	app := gateApp(mservice.MaintenanceState{Enabled: false}, constants.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMaintenanceGate_BlocksWhenOn(t *testing.T) {
	app := gateApp(mservice.MaintenanceState{
		Enabled: true,
		Message: "Upgrading the database",
	}, constants.RoleTeacher)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMaintenanceGate_PlatformAdminBypasses(t *testing.T) {
	app := gateApp(mservice.MaintenanceState{Enabled: true}, constants.RoleEdufamAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMaintenanceGate_ParentBlockedWhileOn(t *testing.T) {
	app := gateApp(mservice.MaintenanceState{Enabled: true}, constants.RoleParent)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
