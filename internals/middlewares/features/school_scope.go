package middleware

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edufam_backend/internals/constants"
	helperAuth "edufam_backend/internals/helpers/auth"
)

func trimLower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return ""
	}
}

/* ==========================
   school_id & role extraction from request
========================== */

func extractSchoolID(c *fiber.Ctx) string {
	// param (/:school_id) → query → header
	if v := strings.TrimSpace(c.Params("school_id")); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.Query("school_id")); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.Get("X-School-ID")); v != "" {
		return v
	}
	return ""
}

func extractRole(c *fiber.Ctx) string {
	if v := trimLower(c.Query("role")); v != "" {
		return v
	}
	if v := trimLower(c.Get("X-Role")); v != "" {
		return v
	}
	return ""
}

/* ==========================
   Role priority (auto-pick the strongest role)
========================== */

var rolePriority = map[string]int{
	constants.RoleEdufamAdmin:    100,
	constants.RoleSchoolAdmin:    90,
	constants.RolePrincipal:      80,
	constants.RoleTeacher:        70,
	constants.RoleFinanceOfficer: 60,
	constants.RoleParent:         40,
	constants.RoleStudent:        30,
}

func bestRoleFor(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	cands := make([]string, 0, len(roles))
	for _, r := range roles {
		if r = trimLower(r); r != "" {
			cands = append(cands, r)
		}
	}
	if len(cands) == 0 {
		return ""
	}
	sort.Slice(cands, func(i, j int) bool { return rolePriority[cands[i]] > rolePriority[cands[j]] })
	return cands[0]
}

/* ==========================
   STRICT SCOPE: by PATH + token fallback
========================== */

// UseSchoolScope:
// - take school_id from path/param/query/header (UUID), else fall back to the
//   token's active school (one session = one school),
// - non-platform-admins must actually hold a role at that school,
// - a caller-requested role must exist in the grant; otherwise the strongest
//   granted role is picked,
// - sets locals: active_school_id, active_role (+ legacy school_id, role).
func UseSchoolScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isPlatformAdmin := helperAuth.IsEdufamAdmin(c)

		reqSchool := strings.TrimSpace(extractSchoolID(c))
		if reqSchool == "" {
			if id, err := helperAuth.GetActiveSchoolIDFromToken(c); err == nil && id != uuid.Nil {
				reqSchool = id.String()
			} else if !isPlatformAdmin {
				return fiber.NewError(fiber.StatusBadRequest, "school_id is required in the path, parameters, or token")
			}
		}

		if reqSchool != "" {
			if _, err := uuid.Parse(reqSchool); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "school_id is not a valid UUID")
			}
		}

		reqRole := trimLower(extractRole(c))

		// platform admin bypasses membership checks
		if isPlatformAdmin {
			if reqRole == "" {
				reqRole = constants.RoleEdufamAdmin
			}
			c.Locals(helperAuth.LocActiveSchoolID, reqSchool)
			c.Locals(helperAuth.LocActiveRole, reqRole)
			c.Locals("school_id", reqSchool)
			c.Locals(helperAuth.LocRole, reqRole)
			return c.Next()
		}

		schoolID, _ := uuid.Parse(reqSchool)
		var rolesAtSchool []string
		for _, e := range helperAuth.GetSchoolRoles(c) {
			if e.SchoolID == schoolID {
				rolesAtSchool = e.Roles
				break
			}
		}
		if len(rolesAtSchool) == 0 {
			return fiber.NewError(fiber.StatusForbidden, "Not a member of the requested school")
		}

		activeRole := reqRole
		if activeRole != "" {
			if !helperAuth.HasRoleInSchool(c, schoolID, activeRole) {
				return fiber.NewError(fiber.StatusForbidden, "Role not granted at this school")
			}
		} else {
			activeRole = bestRoleFor(rolesAtSchool)
			if activeRole == "" {
				return fiber.NewError(fiber.StatusForbidden, "No role at the requested school")
			}
		}

		c.Locals(helperAuth.LocActiveSchoolID, reqSchool)
		c.Locals(helperAuth.LocActiveRole, activeRole)
		c.Locals("school_id", reqSchool)
		c.Locals(helperAuth.LocRole, activeRole)
		return c.Next()
	}
}

/* ==========================
   STRICT ROLE CHECKS
========================== */

func requireRole(feature string, allowed []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.IsEdufamAdmin(c) {
			return c.Next()
		}

		mid := strings.TrimSpace(asString(c.Locals(helperAuth.LocActiveSchoolID)))
		role := trimLower(asString(c.Locals(helperAuth.LocActiveRole)))
		if mid == "" || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "School scope/role not resolved")
		}
		if !constants.RoleIn(role, allowed) {
			return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("Role may not access %s", feature))
		}

		// hard verify the role really exists at this school
		schoolID, err := uuid.Parse(mid)
		if err != nil || !helperAuth.HasRoleInSchool(c, schoolID, role) {
			log.Printf("[WARN] role %q not granted at school %s for %s %s", role, mid, c.Method(), c.Path())
			return fiber.NewError(fiber.StatusForbidden, "Role not granted at this school")
		}
		return c.Next()
	}
}

// IsPrincipalOrAdmin: approve/reject/release surface.
func IsPrincipalOrAdmin() fiber.Handler {
	return requireRole("grade approval", constants.PrincipalAndAbove)
}

// IsSchoolStaff: teachers and above.
func IsSchoolStaff() fiber.Handler {
	return requireRole("staff features", constants.TeacherAndAbove)
}

// IsTeacher: bulk submission surface.
func IsTeacher() fiber.Handler {
	return requireRole("grade submission", []string{constants.RoleTeacher})
}

// IsParent: guardian read surface.
func IsParent() fiber.Handler {
	return requireRole("guardian features", []string{constants.RoleParent})
}

// IsPlatformAdminGlobal guards the /api/o group.
func IsPlatformAdminGlobal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.IsEdufamAdmin(c) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, "Platform admin only")
	}
}
