// internals/middlewares/auth/claim_utils.go
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "edufam_backend/internals/helpers/auth"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// Authorization header, cookie fallback
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	// tolerate repeated spaces & case-insensitive scheme
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		n, err := strconv.ParseInt(fmt.Sprintf("%v", t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp type")
		}
		expUnix = n
	}

	if time.Now().Add(-skew).Unix() >= expUnix {
		return fmt.Errorf("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"user_id", "sub", "id"} {
		if raw, ok := claims[key]; ok {
			if s, ok := raw.(string); ok {
				if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
					return id, nil
				}
			}
		}
	}
	return uuid.Nil, fmt.Errorf("no parseable user id claim")
}

/* ======== Locals writers ======== */

func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["user_name"].(string); ok && strings.TrimSpace(v) != "" {
		c.Locals(helperAuth.LocUserName, strings.TrimSpace(v))
	}
	if rawRoles, ok := claims["roles_global"].([]interface{}); ok {
		roles := make([]string, 0, len(rawRoles))
		for _, r := range rawRoles {
			if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
				roles = append(roles, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		c.Locals(helperAuth.LocRolesGlobal, roles)
	}
}

// storeSchoolRolesToLocals copies the per-school role grants plus the active
// school the session was opened for. The scope middleware validates these
// against the requested path later.
func storeSchoolRolesToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if raw, ok := claims["school_roles"].([]interface{}); ok {
		entries := make([]helperAuth.SchoolRolesEntry, 0, len(raw))
		for _, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				continue
			}
			idStr, _ := m["school_id"].(string)
			id, err := uuid.Parse(strings.TrimSpace(idStr))
			if err != nil {
				continue
			}
			var roles []string
			if rr, ok := m["roles"].([]interface{}); ok {
				for _, r := range rr {
					if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
						roles = append(roles, strings.ToLower(strings.TrimSpace(s)))
					}
				}
			}
			entries = append(entries, helperAuth.SchoolRolesEntry{SchoolID: id, Roles: roles})
		}
		c.Locals(helperAuth.LocSchoolRoles, entries)
	}

	if v, ok := claims["active_school_id"].(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil {
			c.Locals(helperAuth.LocActiveSchoolID, id.String())
		}
	}
}
