// file: internals/features/school/academics/grades/dto/grade_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

/* =========================================================
   RESPONSES
========================================================= */

type GradeResponse struct {
	GradeID       uuid.UUID `json:"grade_id"`
	GradeSchoolID uuid.UUID `json:"grade_school_id"`

	GradeStudentID uuid.UUID `json:"grade_student_id"`
	GradeSubjectID uuid.UUID `json:"grade_subject_id"`
	GradeClassID   uuid.UUID `json:"grade_class_id"`

	GradeTerm     string `json:"grade_term"`
	GradeExamType string `json:"grade_exam_type"`

	GradeScore      float64 `json:"grade_score"`
	GradeMaxScore   float64 `json:"grade_max_score"`
	GradePercentage float64 `json:"grade_percentage"`

	GradeLetter           *string `json:"grade_letter,omitempty"`
	GradePerformanceLevel *string `json:"grade_performance_level,omitempty"`

	GradeStatus          string  `json:"grade_status"`
	GradeRejectionReason *string `json:"grade_rejection_reason,omitempty"`
	GradePosition        *int    `json:"grade_position,omitempty"`

	GradeSubmittedAt *time.Time `json:"grade_submitted_at,omitempty"`
	GradeReviewedAt  *time.Time `json:"grade_reviewed_at,omitempty"`
	GradeReleasedAt  *time.Time `json:"grade_released_at,omitempty"`

	GradeCreatedAt time.Time `json:"grade_created_at"`
	GradeUpdatedAt time.Time `json:"grade_updated_at"`
}

func FromGradeModel(m *gmodel.GradeModel) GradeResponse {
	return GradeResponse{
		GradeID:               m.GradeID,
		GradeSchoolID:         m.GradeSchoolID,
		GradeStudentID:        m.GradeStudentID,
		GradeSubjectID:        m.GradeSubjectID,
		GradeClassID:          m.GradeClassID,
		GradeTerm:             m.GradeTerm,
		GradeExamType:         m.GradeExamType,
		GradeScore:            m.GradeScore,
		GradeMaxScore:         m.GradeMaxScore,
		GradePercentage:       m.GradePercentage,
		GradeLetter:           m.GradeLetter,
		GradePerformanceLevel: m.GradePerformanceLevel,
		GradeStatus:           string(m.GradeStatus),
		GradeRejectionReason:  m.GradeRejectionReason,
		GradePosition:         m.GradePosition,
		GradeSubmittedAt:      m.GradeSubmittedAt,
		GradeReviewedAt:       m.GradeReviewedAt,
		GradeReleasedAt:       m.GradeReleasedAt,
		GradeCreatedAt:        m.GradeCreatedAt,
		GradeUpdatedAt:        m.GradeUpdatedAt,
	}
}

func FromGradeModels(ms []gmodel.GradeModel) []GradeResponse {
	out := make([]GradeResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromGradeModel(&ms[i]))
	}
	return out
}

// ReleasedGradeResponse is the parent-facing shape: no workflow internals,
// no rejection reason, only what a report card shows.
type ReleasedGradeResponse struct {
	GradeID        uuid.UUID `json:"grade_id"`
	GradeStudentID uuid.UUID `json:"grade_student_id"`
	GradeSubjectID uuid.UUID `json:"grade_subject_id"`
	GradeClassID   uuid.UUID `json:"grade_class_id"`

	GradeTerm     string `json:"grade_term"`
	GradeExamType string `json:"grade_exam_type"`

	GradeScore      float64 `json:"grade_score"`
	GradeMaxScore   float64 `json:"grade_max_score"`
	GradePercentage float64 `json:"grade_percentage"`

	GradeLetter           *string `json:"grade_letter,omitempty"`
	GradePerformanceLevel *string `json:"grade_performance_level,omitempty"`
	GradePosition         *int    `json:"grade_position,omitempty"`

	GradeReleasedAt *time.Time `json:"grade_released_at,omitempty"`
}

func FromGradeModelReleased(m *gmodel.GradeModel) ReleasedGradeResponse {
	return ReleasedGradeResponse{
		GradeID:               m.GradeID,
		GradeStudentID:        m.GradeStudentID,
		GradeSubjectID:        m.GradeSubjectID,
		GradeClassID:          m.GradeClassID,
		GradeTerm:             m.GradeTerm,
		GradeExamType:         m.GradeExamType,
		GradeScore:            m.GradeScore,
		GradeMaxScore:         m.GradeMaxScore,
		GradePercentage:       m.GradePercentage,
		GradeLetter:           m.GradeLetter,
		GradePerformanceLevel: m.GradePerformanceLevel,
		GradePosition:         m.GradePosition,
		GradeReleasedAt:       m.GradeReleasedAt,
	}
}

/* =========================================================
   REQUESTS
========================================================= */

// ListGradeQuery filters grade listings. All fields are optional; school
// scoping always comes from the token, never from the query.
type ListGradeQuery struct {
	StudentID *uuid.UUID `query:"student_id"`
	SubjectID *uuid.UUID `query:"subject_id"`
	ClassID   *uuid.UUID `query:"class_id"`
	Term      *string    `query:"term"`
	ExamType  *string    `query:"exam_type"`
	Status    *string    `query:"status"`
}

// GradeDecisionRequest covers approve/reject/release on a single grade.
type GradeDecisionRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// BatchDecisionRequest targets one submission unit.
type BatchDecisionRequest struct {
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Term      string    `json:"term" validate:"required,max=20"`
	ExamType  string    `json:"exam_type" validate:"required,max=30"`
	Reason    string    `json:"reason" validate:"omitempty,max=1000"`
}
