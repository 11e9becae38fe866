// file: internals/features/school/academics/grades/dto/bulk_submission_dto.go
package dto

import (
	"github.com/google/uuid"

	"edufam_backend/internals/features/school/academics/grades/service"
)

// ScoreCellRequest mirrors one cell of the frontend's entry grid. Score may be
// null for cells the teacher skipped. Components carries the optional
// per-assessment breakdown and is stored verbatim alongside the total.
type ScoreCellRequest struct {
	Score            *float64               `json:"score" validate:"omitempty,gte=0"`
	MaxScore         *float64               `json:"max_score" validate:"omitempty,gt=0"`
	LetterGrade      *string                `json:"letter_grade" validate:"omitempty,max=4"`
	PerformanceLevel *string                `json:"performance_level" validate:"omitempty,max=30"`
	Components       map[string]interface{} `json:"components" validate:"omitempty,max=20"`
}

// BulkGradeSubmissionRequest carries the whole matrix for one
// class/term/exam_type selection. Keys are student and subject UUIDs as
// strings; Normalize turns them into typed input and drops malformed keys.
type BulkGradeSubmissionRequest struct {
	ClassID  uuid.UUID                              `json:"class_id" validate:"required"`
	Term     string                                 `json:"term" validate:"required,max=20"`
	ExamType string                                 `json:"exam_type" validate:"required,max=30"`
	Scores   map[string]map[string]ScoreCellRequest `json:"scores" validate:"required,min=1"`
	IsDraft  bool                                   `json:"is_draft"`
}

// ToInput converts the request to service input. Unparseable student or
// subject keys are skipped rather than failing the whole matrix; the service
// rejects the submission anyway if nothing valid remains.
func (r *BulkGradeSubmissionRequest) ToInput(schoolID, actorID uuid.UUID, isTeacher bool) service.BulkSubmissionInput {
	in := service.BulkSubmissionInput{
		SchoolID:  schoolID,
		ClassID:   r.ClassID,
		Term:      r.Term,
		ExamType:  r.ExamType,
		ActorID:   actorID,
		IsTeacher: isTeacher && !r.IsDraft,
		Scores:    make(map[uuid.UUID]map[uuid.UUID]service.ScoreCell, len(r.Scores)),
	}

	for studentKey, bySubject := range r.Scores {
		studentID, err := uuid.Parse(studentKey)
		if err != nil {
			continue
		}
		cells := make(map[uuid.UUID]service.ScoreCell, len(bySubject))
		for subjectKey, cell := range bySubject {
			subjectID, err := uuid.Parse(subjectKey)
			if err != nil {
				continue
			}
			cells[subjectID] = service.ScoreCell{
				Score:            cell.Score,
				MaxScore:         cell.MaxScore,
				LetterGrade:      cell.LetterGrade,
				PerformanceLevel: cell.PerformanceLevel,
				Components:       cell.Components,
			}
		}
		if len(cells) > 0 {
			in.Scores[studentID] = cells
		}
	}
	return in
}

type BulkSubmissionResponse struct {
	GradesWritten int    `json:"grades_written"`
	Status        string `json:"status"` // "submitted" or "draft"
}
