// file: internals/features/school/academics/grades/model/guardian_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Link table between a guardian account and a student. Parent grade reads
// only ever join through verified links.
type GuardianStudentModel struct {
	GuardianStudentID       uuid.UUID `gorm:"column:guardian_student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"guardian_student_id"`
	GuardianStudentSchoolID uuid.UUID `gorm:"column:guardian_student_school_id;type:uuid;not null;index" json:"guardian_student_school_id"`

	GuardianStudentGuardianUserID uuid.UUID `gorm:"column:guardian_student_guardian_user_id;type:uuid;not null;index" json:"guardian_student_guardian_user_id"`
	GuardianStudentStudentID      uuid.UUID `gorm:"column:guardian_student_student_id;type:uuid;not null;index" json:"guardian_student_student_id"`

	GuardianStudentRelationship *string `gorm:"column:guardian_student_relationship;type:varchar(30)" json:"guardian_student_relationship,omitempty"`
	GuardianStudentIsVerified   bool    `gorm:"column:guardian_student_is_verified;not null;default:false" json:"guardian_student_is_verified"`

	GuardianStudentCreatedAt time.Time      `gorm:"column:guardian_student_created_at;not null;autoCreateTime" json:"guardian_student_created_at"`
	GuardianStudentUpdatedAt time.Time      `gorm:"column:guardian_student_updated_at;not null;autoUpdateTime" json:"guardian_student_updated_at"`
	GuardianStudentDeletedAt gorm.DeletedAt `gorm:"column:guardian_student_deleted_at;index" json:"guardian_student_deleted_at,omitempty"`
}

func (GuardianStudentModel) TableName() string { return "guardian_students" }
