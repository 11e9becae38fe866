// file: internals/features/school/academics/grades/service/bulk_submission.go
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

var (
	ErrMissingSelection = errors.New("class, term and exam type must be selected")
	ErrNothingToSubmit  = errors.New("no valid scores to submit")
	ErrScoreOutOfRange  = errors.New("score is outside 0..max_score")
)

// GradeStore is the write side of the grade table. The gorm implementation
// runs the whole batch in one transaction; tests use an in-memory fake.
type GradeStore interface {
	UpsertBatch(ctx context.Context, rows []gmodel.GradeModel) (int, error)
}

// PositionCalculator recomputes class ranks for one (class, term, exam_type)
// tuple. Best-effort by contract: implementations must not block the caller
// and must not surface failure as a submission failure.
type PositionCalculator interface {
	TriggerRecalculation(schoolID, classID uuid.UUID, term, examType string)
}

// One cell of the teacher's score matrix. A nil Score means the teacher left
// the cell blank; blank cells are filtered out before any write. Components
// is the optional per-assessment breakdown (CATs, quizzes) behind the total.
type ScoreCell struct {
	Score            *float64
	MaxScore         *float64
	LetterGrade      *string
	PerformanceLevel *string
	Components       map[string]interface{}
}

// BulkSubmissionInput carries the matrix plus its context. IsTeacher decides
// whether the write is a real submission or a draft save.
type BulkSubmissionInput struct {
	SchoolID  uuid.UUID
	ClassID   uuid.UUID
	Term      string
	ExamType  string
	ActorID   uuid.UUID
	IsTeacher bool

	// student → subject → cell
	Scores map[uuid.UUID]map[uuid.UUID]ScoreCell
}

type BulkSubmissionResult struct {
	GradesWritten int
	Submitted     bool // false = draft save
}

type BulkSubmissionService struct {
	Store     GradeStore
	Positions PositionCalculator
}

func NewBulkSubmissionService(store GradeStore, positions PositionCalculator) *BulkSubmissionService {
	return &BulkSubmissionService{Store: store, Positions: positions}
}

// Submit validates, filters, upserts and triggers recalculation.
//
// Failure semantics: validation errors and store errors leave nothing half
// done (the store contract is all-or-nothing); a recalculation failure is the
// calculator's problem and never rolls grades back.
func (s *BulkSubmissionService) Submit(ctx context.Context, in BulkSubmissionInput) (BulkSubmissionResult, error) {
	res := BulkSubmissionResult{Submitted: in.IsTeacher}

	if in.SchoolID == uuid.Nil || in.ClassID == uuid.Nil || in.Term == "" || in.ExamType == "" {
		return res, ErrMissingSelection
	}

	rows, err := buildGradeRows(in, time.Now().UTC())
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, ErrNothingToSubmit
	}

	written, err := s.Store.UpsertBatch(ctx, rows)
	if err != nil {
		return res, err
	}
	res.GradesWritten = written

	// one submission can shift everyone's rank, so recalc covers the whole
	// class, not just the rows written here
	s.Positions.TriggerRecalculation(in.SchoolID, in.ClassID, in.Term, in.ExamType)

	return res, nil
}

func buildGradeRows(in BulkSubmissionInput, now time.Time) ([]gmodel.GradeModel, error) {
	rows := make([]gmodel.GradeModel, 0, len(in.Scores))

	for studentID, bySubject := range in.Scores {
		if studentID == uuid.Nil {
			continue
		}
		for subjectID, cell := range bySubject {
			if subjectID == uuid.Nil || cell.Score == nil {
				continue
			}

			maxScore := 100.0
			if cell.MaxScore != nil && *cell.MaxScore > 0 {
				maxScore = *cell.MaxScore
			}
			if *cell.Score < 0 || *cell.Score > maxScore {
				return nil, ErrScoreOutOfRange
			}

			g := gmodel.GradeModel{
				GradeSchoolID:         in.SchoolID,
				GradeStudentID:        studentID,
				GradeSubjectID:        subjectID,
				GradeClassID:          in.ClassID,
				GradeTerm:             in.Term,
				GradeExamType:         in.ExamType,
				GradeScore:            *cell.Score,
				GradeMaxScore:         maxScore,
				GradePercentage:       Percentage(*cell.Score, maxScore),
				GradeLetter:           cell.LetterGrade,
				GradePerformanceLevel: cell.PerformanceLevel,
				GradeStatus:           gmodel.GradeStatusDraft,
			}
			if len(cell.Components) > 0 {
				g.GradeMeta = datatypes.JSONMap(cell.Components)
			}
			if in.IsTeacher {
				g.GradeStatus = gmodel.GradeStatusSubmitted
				actor := in.ActorID
				t := now
				g.GradeSubmittedBy = &actor
				g.GradeSubmittedAt = &t
			}
			rows = append(rows, g)
		}
	}
	return rows, nil
}

// Percentage rounds to 2 decimals, matching the numeric(5,2) column.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return math.Round(score/maxScore*10000) / 100
}
