package constants

import "fmt"

// Global & school-scoped role names. Tokens carry lowercase role strings,
// comparisons are case-insensitive everywhere.
const (
	RoleEdufamAdmin    = "edufam_admin" // platform operator, bypasses maintenance mode
	RoleSchoolAdmin    = "school_admin"
	RolePrincipal      = "principal"
	RoleTeacher        = "teacher"
	RoleFinanceOfficer = "finance_officer"
	RoleParent         = "parent"
	RoleStudent        = "student"
)

// Error message templates for role guards.
const (
	ErrOnlyTeachersCanAccess   = "Only teachers may access %s."
	ErrOnlyPrincipalsCanAccess = "Only the principal or school admin may access %s."
	ErrOnlyParentsCanAccess    = "Only parents may access %s."
	ErrOnlyPlatformAdminAccess = "Only the platform admin may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorPrincipal(feature string) string {
	return fmt.Sprintf(ErrOnlyPrincipalsCanAccess, feature)
}

func RoleErrorParent(feature string) string {
	return fmt.Sprintf(ErrOnlyParentsCanAccess, feature)
}

func RoleErrorPlatformAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyPlatformAdminAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleEdufamAdmin,
		RoleSchoolAdmin,
		RolePrincipal,
		RoleTeacher,
		RoleFinanceOfficer,
		RoleParent,
		RoleStudent,
	}

	StaffRoles = []string{
		RoleSchoolAdmin,
		RolePrincipal,
		RoleTeacher,
		RoleFinanceOfficer,
	}

	// Roles allowed to approve/reject grades and overrides.
	PrincipalAndAbove = []string{
		RolePrincipal,
		RoleSchoolAdmin,
	}

	// Roles allowed to release approved grades to parents.
	ReleaseRoles = []string{
		RolePrincipal,
		RoleSchoolAdmin,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RolePrincipal,
		RoleSchoolAdmin,
	}

	PlatformAdminOnly = []string{
		RoleEdufamAdmin,
	}

	// Default bypass set while maintenance mode is enabled. Extra roles can be
	// granted per deployment through app_settings.setting_allowed_roles.
	MaintenanceBypassRoles = []string{
		RoleEdufamAdmin,
	}
)

func RoleIn(role string, set []string) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}
