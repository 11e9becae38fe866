// file: internals/features/school/settings/maintenance/service/maintenance_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"edufam_backend/internals/constants"
)

type fakeReader struct {
	state MaintenanceState
	err   error
	calls int
}

func (f *fakeReader) ReadMaintenanceState(ctx context.Context) (MaintenanceState, error) {
	f.calls++
	return f.state, f.err
}

func allRoles() []string {
	return []string{
		constants.RoleEdufamAdmin,
		constants.RoleSchoolAdmin,
		constants.RolePrincipal,
		constants.RoleTeacher,
		constants.RoleFinanceOfficer,
		constants.RoleParent,
		constants.RoleStudent,
	}
}

func TestCheckAccess_OffMeansEveryonePasses(t *testing.T) {
	svc := NewService(&fakeReader{state: MaintenanceState{Enabled: false}}, time.Minute)
	svc.Refresh(context.Background())

	for _, r := range allRoles() {
		acc := svc.CheckAccess(r)
		assert.True(t, acc.Allowed, "role=%s", r)
	}
}

func TestCheckAccess_OnBlocksAllButBypass(t *testing.T) {
	svc := NewService(&fakeReader{state: MaintenanceState{
		Enabled: true,
		Message: "Back at 06:00 EAT",
	}}, time.Minute)
	svc.Refresh(context.Background())

	for _, r := range allRoles() {
		acc := svc.CheckAccess(r)
		if r == constants.RoleEdufamAdmin {
			assert.True(t, acc.Allowed, "platform admin must bypass")
			continue
		}
		assert.False(t, acc.Allowed, "role=%s", r)
		assert.Equal(t, "Back at 06:00 EAT", acc.Message)
	}
}

func TestCheckAccess_ToggleOffRestoresAccess(t *testing.T) {
	reader := &fakeReader{state: MaintenanceState{Enabled: true}}
	svc := NewService(reader, time.Minute)
	svc.Refresh(context.Background())
	assert.False(t, svc.CheckAccess(constants.RoleTeacher).Allowed)

	reader.state = MaintenanceState{Enabled: false}
	svc.Refresh(context.Background())
	assert.True(t, svc.CheckAccess(constants.RoleTeacher).Allowed)
}

func TestCheckAccess_FailOpenOnReadError(t *testing.T) {
	svc := NewService(&fakeReader{err: errors.New("settings table gone")}, time.Minute)
	svc.Refresh(context.Background())

	for _, r := range allRoles() {
		assert.True(t, svc.CheckAccess(r).Allowed, "role=%s must pass when the read fails", r)
	}
}

func TestCheckAccess_UnrefreshedCacheIsOpen(t *testing.T) {
	svc := NewService(&fakeReader{state: MaintenanceState{Enabled: true}}, time.Minute)
	// no Refresh: the cache is empty, so the gate stays open
	assert.True(t, svc.CheckAccess(constants.RoleParent).Allowed)
}

func TestCheckAccess_ConfiguredAllowedRoles(t *testing.T) {
	svc := NewService(&fakeReader{state: MaintenanceState{
		Enabled:      true,
		AllowedRoles: []string{constants.RoleEdufamAdmin, constants.RoleSchoolAdmin},
	}}, time.Minute)
	svc.Refresh(context.Background())

	assert.True(t, svc.CheckAccess(constants.RoleSchoolAdmin).Allowed)
	assert.False(t, svc.CheckAccess(constants.RoleTeacher).Allowed)
}

func TestCheckAccess_AllowedRolesNeverRevokeAdminBypass(t *testing.T) {
	// a configured list that forgets the platform role must widen the bypass
	// set, not replace it
	svc := NewService(&fakeReader{state: MaintenanceState{
		Enabled:      true,
		AllowedRoles: []string{constants.RoleTeacher},
	}}, time.Minute)
	svc.Refresh(context.Background())

	assert.True(t, svc.CheckAccess(constants.RoleEdufamAdmin).Allowed)
	assert.True(t, svc.CheckAccess(constants.RoleTeacher).Allowed)
	assert.False(t, svc.CheckAccess(constants.RoleParent).Allowed)
}

func TestCheckAccess_DefaultMessage(t *testing.T) {
	svc := NewService(&fakeReader{state: MaintenanceState{Enabled: true}}, time.Minute)
	svc.Refresh(context.Background())

	acc := svc.CheckAccess(constants.RoleTeacher)
	assert.False(t, acc.Allowed)
	assert.NotEmpty(t, acc.Message)
}

func TestStartPolling_RefreshesOnInterval(t *testing.T) {
	reader := &fakeReader{state: MaintenanceState{Enabled: false}}
	svc := NewService(reader, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.StartPolling(ctx)

	assert.Eventually(t, func() bool { return reader.calls >= 3 },
		time.Second, 5*time.Millisecond)
}
