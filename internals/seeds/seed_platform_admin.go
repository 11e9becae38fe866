// file: internals/seeds/seed_platform_admin.go
package seeds

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edufam_backend/internals/constants"
	umodel "edufam_backend/internals/features/users/model"
)

// SeedPlatformAdmin bootstraps the first edufam_admin account so a fresh
// deployment can reach the /api/o surface. Idempotent: an existing row with
// the email wins and is left untouched.
func SeedPlatformAdmin(db *gorm.DB) error {
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ℹ️  SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing umodel.UserModel
	err := db.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("ℹ️  platform admin %s already exists, skipping seed", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := umodel.UserModel{
		UserName:        "Platform Admin",
		UserEmail:       email,
		UserPassword:    string(hash),
		UserRolesGlobal: pq.StringArray{constants.RoleEdufamAdmin},
		UserIsActive:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ seeded platform admin %s", email)
	return nil
}
