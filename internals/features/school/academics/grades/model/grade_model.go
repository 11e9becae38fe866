// file: internals/features/school/academics/grades/model/grade_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Matches CHECK: 'draft','submitted','under_review','approved','rejected','released'
type GradeStatus string

const (
	GradeStatusDraft       GradeStatus = "draft"
	GradeStatusSubmitted   GradeStatus = "submitted"
	GradeStatusUnderReview GradeStatus = "under_review"
	GradeStatusApproved    GradeStatus = "approved"
	GradeStatusRejected    GradeStatus = "rejected"
	GradeStatusReleased    GradeStatus = "released"
)

func (s GradeStatus) Valid() bool {
	switch s {
	case GradeStatusDraft, GradeStatusSubmitted, GradeStatusUnderReview,
		GradeStatusApproved, GradeStatusRejected, GradeStatusReleased:
		return true
	}
	return false
}

// Immutable reports whether the row's score fields are locked. Approved and
// released grades can only change through an approved override.
func (s GradeStatus) Immutable() bool {
	return s == GradeStatusApproved || s == GradeStatusReleased
}

// One row per (school, student, subject, class, term, exam_type). Re-submission
// after rejection upserts over the same identity, it never creates a sibling.
type GradeModel struct {
	GradeID       uuid.UUID `gorm:"column:grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_id"`
	GradeSchoolID uuid.UUID `gorm:"column:grade_school_id;type:uuid;not null;index;uniqueIndex:uq_grades_identity" json:"grade_school_id"`

	GradeStudentID uuid.UUID `gorm:"column:grade_student_id;type:uuid;not null;index;uniqueIndex:uq_grades_identity" json:"grade_student_id"`
	GradeSubjectID uuid.UUID `gorm:"column:grade_subject_id;type:uuid;not null;uniqueIndex:uq_grades_identity" json:"grade_subject_id"`
	GradeClassID   uuid.UUID `gorm:"column:grade_class_id;type:uuid;not null;index;uniqueIndex:uq_grades_identity" json:"grade_class_id"`

	GradeTerm     string `gorm:"column:grade_term;type:varchar(20);not null;uniqueIndex:uq_grades_identity" json:"grade_term"`
	GradeExamType string `gorm:"column:grade_exam_type;type:varchar(30);not null;uniqueIndex:uq_grades_identity" json:"grade_exam_type"`

	GradeScore      float64 `gorm:"column:grade_score;type:numeric(5,2);not null" json:"grade_score"`
	GradeMaxScore   float64 `gorm:"column:grade_max_score;type:numeric(5,2);not null;default:100" json:"grade_max_score"`
	GradePercentage float64 `gorm:"column:grade_percentage;type:numeric(5,2);not null" json:"grade_percentage"`

	GradeLetter           *string `gorm:"column:grade_letter;type:varchar(4)" json:"grade_letter,omitempty"`
	GradePerformanceLevel *string `gorm:"column:grade_performance_level;type:varchar(30)" json:"grade_performance_level,omitempty"`

	GradeStatus          GradeStatus `gorm:"column:grade_status;type:varchar(16);not null;default:'draft';index" json:"grade_status"`
	GradeRejectionReason *string     `gorm:"column:grade_rejection_reason;type:text" json:"grade_rejection_reason,omitempty"`

	// class rank, filled by the position calculator after submission
	GradePosition *int `gorm:"column:grade_position;type:smallint" json:"grade_position,omitempty"`

	GradeSubmittedBy *uuid.UUID `gorm:"column:grade_submitted_by;type:uuid" json:"grade_submitted_by,omitempty"`
	GradeSubmittedAt *time.Time `gorm:"column:grade_submitted_at;type:timestamptz" json:"grade_submitted_at,omitempty"`

	GradeReviewedBy *uuid.UUID `gorm:"column:grade_reviewed_by;type:uuid" json:"grade_reviewed_by,omitempty"`
	GradeReviewedAt *time.Time `gorm:"column:grade_reviewed_at;type:timestamptz" json:"grade_reviewed_at,omitempty"`

	GradeReleasedBy *uuid.UUID `gorm:"column:grade_released_by;type:uuid" json:"grade_released_by,omitempty"`
	GradeReleasedAt *time.Time `gorm:"column:grade_released_at;type:timestamptz" json:"grade_released_at,omitempty"`

	// per-component breakdown (CATs, quizzes) when the frontend sends one
	GradeMeta datatypes.JSONMap `gorm:"column:grade_meta;type:jsonb" json:"grade_meta,omitempty"`

	GradeCreatedAt time.Time      `gorm:"column:grade_created_at;not null;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"column:grade_updated_at;not null;autoUpdateTime" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"grade_deleted_at,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }
