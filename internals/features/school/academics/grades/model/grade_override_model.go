// file: internals/features/school/academics/grades/model/grade_override_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OverrideStatus string

const (
	OverrideStatusPending  OverrideStatus = "pending"
	OverrideStatusApproved OverrideStatus = "approved"
	OverrideStatusRejected OverrideStatus = "rejected"
)

// Audit trail for changing an immutable grade: who asked for what and why is
// recorded separately from who decided.
type GradeOverrideModel struct {
	OverrideID       uuid.UUID `gorm:"column:override_id;type:uuid;default:gen_random_uuid();primaryKey" json:"override_id"`
	OverrideSchoolID uuid.UUID `gorm:"column:override_school_id;type:uuid;not null;index" json:"override_school_id"`
	OverrideGradeID  uuid.UUID `gorm:"column:override_grade_id;type:uuid;not null;index" json:"override_grade_id"`

	OverrideOriginalScore float64 `gorm:"column:override_original_score;type:numeric(5,2);not null" json:"override_original_score"`
	OverrideNewScore      float64 `gorm:"column:override_new_score;type:numeric(5,2);not null" json:"override_new_score"`
	OverrideReason        string  `gorm:"column:override_reason;type:text;not null" json:"override_reason"`

	OverrideStatus OverrideStatus `gorm:"column:override_status;type:varchar(12);not null;default:'pending';index" json:"override_status"`

	OverrideRequestedBy uuid.UUID `gorm:"column:override_requested_by;type:uuid;not null" json:"override_requested_by"`
	OverrideRequestedAt time.Time `gorm:"column:override_requested_at;type:timestamptz;not null" json:"override_requested_at"`

	OverrideDecidedBy    *uuid.UUID `gorm:"column:override_decided_by;type:uuid" json:"override_decided_by,omitempty"`
	OverrideDecidedAt    *time.Time `gorm:"column:override_decided_at;type:timestamptz" json:"override_decided_at,omitempty"`
	OverrideDecisionNote *string    `gorm:"column:override_decision_note;type:text" json:"override_decision_note,omitempty"`

	OverrideCreatedAt time.Time      `gorm:"column:override_created_at;not null;autoCreateTime" json:"override_created_at"`
	OverrideUpdatedAt time.Time      `gorm:"column:override_updated_at;not null;autoUpdateTime" json:"override_updated_at"`
	OverrideDeletedAt gorm.DeletedAt `gorm:"column:override_deleted_at;index" json:"override_deleted_at,omitempty"`
}

func (GradeOverrideModel) TableName() string { return "grade_overrides" }
