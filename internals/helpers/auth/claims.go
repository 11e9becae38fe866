// file: internals/helpers/auth/claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"edufam_backend/internals/constants"
)

/* ============================================
   Locals Keys (auth middleware sets these)
   ============================================ */

const (
	LocUserID   = "user_id"   // string UUID
	LocUserName = "user_name" // string
	LocRole     = "role"      // legacy single role (mirrors active_role)

	LocRolesGlobal    = "roles_global"     // []string
	LocSchoolRoles    = "school_roles"     // []SchoolRolesEntry | []map[string]any
	LocActiveSchoolID = "active_school_id" // string UUID
	LocActiveRole     = "active_role"      // string
)

/* ============================================
   Types for structured claims
   ============================================ */

type SchoolRolesEntry struct {
	SchoolID uuid.UUID `json:"school_id"`
	Roles    []string  `json:"roles"`
}

type RolesClaim struct {
	RolesGlobal []string           `json:"roles_global"`
	SchoolRoles []SchoolRolesEntry `json:"school_roles"`
}

/* ============================================
   Getters
   ============================================ */

func localString(c *fiber.Ctx, key string) string {
	switch t := c.Locals(key).(type) {
	case string:
		return strings.TrimSpace(t)
	case uuid.UUID:
		if t != uuid.Nil {
			return t.String()
		}
	}
	return ""
}

// GetUserIDFromToken returns the authenticated user's id.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := localString(c, LocUserID)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing user identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user identity")
	}
	return id, nil
}

// GetActiveSchoolIDFromToken returns the tenant the request is scoped to.
// One session works against one school at a time.
func GetActiveSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := localString(c, LocActiveSchoolID)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "School scope not resolved")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid school scope")
	}
	return id, nil
}

// GetActiveRole returns the role the caller is acting under for this request.
func GetActiveRole(c *fiber.Ctx) string {
	if r := strings.ToLower(localString(c, LocActiveRole)); r != "" {
		return r
	}
	return strings.ToLower(localString(c, LocRole))
}

func GetRolesGlobal(c *fiber.Ctx) []string {
	switch t := c.Locals(LocRolesGlobal).(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		return out
	}
	return nil
}

// GetSchoolRoles returns the per-school role grants carried by the token.
func GetSchoolRoles(c *fiber.Ctx) []SchoolRolesEntry {
	switch t := c.Locals(LocSchoolRoles).(type) {
	case []SchoolRolesEntry:
		return t
	case []map[string]any:
		out := make([]SchoolRolesEntry, 0, len(t))
		for _, m := range t {
			if e, ok := schoolRolesEntryFromMap(m); ok {
				out = append(out, e)
			}
		}
		return out
	case []interface{}:
		out := make([]SchoolRolesEntry, 0, len(t))
		for _, it := range t {
			if m, ok := it.(map[string]any); ok {
				if e, ok := schoolRolesEntryFromMap(m); ok {
					out = append(out, e)
				}
			}
		}
		return out
	}
	return nil
}

func schoolRolesEntryFromMap(m map[string]any) (SchoolRolesEntry, bool) {
	rawID, _ := m["school_id"].(string)
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return SchoolRolesEntry{}, false
	}
	var roles []string
	switch rr := m["roles"].(type) {
	case []string:
		roles = rr
	case []interface{}:
		for _, r := range rr {
			if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
				roles = append(roles, strings.ToLower(strings.TrimSpace(s)))
			}
		}
	}
	return SchoolRolesEntry{SchoolID: id, Roles: roles}, true
}

// IsEdufamAdmin reports whether the caller carries the global platform role.
func IsEdufamAdmin(c *fiber.Ctx) bool {
	for _, r := range GetRolesGlobal(c) {
		if strings.EqualFold(r, constants.RoleEdufamAdmin) {
			return true
		}
	}
	return false
}

// HasRoleInSchool checks a role grant against a specific school.
func HasRoleInSchool(c *fiber.Ctx, schoolID uuid.UUID, role string) bool {
	if schoolID == uuid.Nil || strings.TrimSpace(role) == "" {
		return false
	}
	for _, e := range GetSchoolRoles(c) {
		if e.SchoolID == schoolID {
			for _, r := range e.Roles {
				if strings.EqualFold(r, role) {
					return true
				}
			}
		}
	}
	return false
}
