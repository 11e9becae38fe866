// file: internals/features/school/academics/grades/dto/grade_override_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

type OverrideRequestRequest struct {
	GradeID  uuid.UUID `json:"grade_id" validate:"required"`
	NewScore float64   `json:"new_score" validate:"gte=0"`
	Reason   string    `json:"reason" validate:"required,min=3,max=1000"`
}

type OverrideDecisionRequest struct {
	Note string `json:"note" validate:"omitempty,max=1000"`
}

type GradeOverrideResponse struct {
	OverrideID      uuid.UUID `json:"override_id"`
	OverrideGradeID uuid.UUID `json:"override_grade_id"`

	OverrideOriginalScore float64 `json:"override_original_score"`
	OverrideNewScore      float64 `json:"override_new_score"`
	OverrideReason        string  `json:"override_reason"`
	OverrideStatus        string  `json:"override_status"`

	OverrideRequestedBy uuid.UUID `json:"override_requested_by"`
	OverrideRequestedAt time.Time `json:"override_requested_at"`

	OverrideDecidedBy    *uuid.UUID `json:"override_decided_by,omitempty"`
	OverrideDecidedAt    *time.Time `json:"override_decided_at,omitempty"`
	OverrideDecisionNote *string    `json:"override_decision_note,omitempty"`
}

func FromOverrideModel(m *gmodel.GradeOverrideModel) GradeOverrideResponse {
	return GradeOverrideResponse{
		OverrideID:            m.OverrideID,
		OverrideGradeID:       m.OverrideGradeID,
		OverrideOriginalScore: m.OverrideOriginalScore,
		OverrideNewScore:      m.OverrideNewScore,
		OverrideReason:        m.OverrideReason,
		OverrideStatus:        string(m.OverrideStatus),
		OverrideRequestedBy:   m.OverrideRequestedBy,
		OverrideRequestedAt:   m.OverrideRequestedAt,
		OverrideDecidedBy:     m.OverrideDecidedBy,
		OverrideDecidedAt:     m.OverrideDecidedAt,
		OverrideDecisionNote:  m.OverrideDecisionNote,
	}
}

func FromOverrideModels(ms []gmodel.GradeOverrideModel) []GradeOverrideResponse {
	out := make([]GradeOverrideResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromOverrideModel(&ms[i]))
	}
	return out
}
