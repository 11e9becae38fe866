// file: internals/features/school/academics/grades/service/workflow_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

var ErrGradeNotFound = errors.New("grade not found")

// WorkflowService persists status transitions. All reads/writes are scoped by
// school id; a grade from another tenant behaves as if it did not exist.
type WorkflowService struct {
	DB *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{DB: db}
}

func (s *WorkflowService) Apply(
	ctx context.Context,
	schoolID, gradeID uuid.UUID,
	ev Event,
	actorID uuid.UUID,
	reason string,
) (*gmodel.GradeModel, error) {
	var out gmodel.GradeModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g gmodel.GradeModel
		if err := tx.
			Where("grade_id = ? AND grade_school_id = ?", gradeID, schoolID).
			First(&g).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGradeNotFound
			}
			return err
		}

		if err := ApplyTransition(&g, ev, actorID, reason, time.Now().UTC()); err != nil {
			return err
		}

		patch := map[string]interface{}{
			"grade_status":           g.GradeStatus,
			"grade_rejection_reason": g.GradeRejectionReason,
			"grade_submitted_by":     g.GradeSubmittedBy,
			"grade_submitted_at":     g.GradeSubmittedAt,
			"grade_reviewed_by":      g.GradeReviewedBy,
			"grade_reviewed_at":      g.GradeReviewedAt,
			"grade_released_by":      g.GradeReleasedBy,
			"grade_released_at":      g.GradeReleasedAt,
			"grade_updated_at":       time.Now().UTC(),
		}
		if err := tx.Model(&gmodel.GradeModel{}).
			Where("grade_id = ?", g.GradeID).
			Updates(patch).Error; err != nil {
			return err
		}

		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplyBatch moves every grade of one submission unit
// (class × subject × term × exam_type) through the same event. Rows already
// past the event are skipped, not failed, so a principal approving a batch
// twice is a no-op for the rows approved the first time.
func (s *WorkflowService) ApplyBatch(
	ctx context.Context,
	schoolID, classID, subjectID uuid.UUID,
	term, examType string,
	ev Event,
	actorID uuid.UUID,
	reason string,
) (int, error) {
	applied := 0

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []gmodel.GradeModel
		if err := tx.
			Where(`
				grade_school_id = ?
				AND grade_class_id = ?
				AND grade_subject_id = ?
				AND grade_term = ?
				AND grade_exam_type = ?
			`, schoolID, classID, subjectID, term, examType).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrGradeNotFound
		}

		now := time.Now().UTC()
		for i := range rows {
			g := &rows[i]
			if err := ApplyTransition(g, ev, actorID, reason, now); err != nil {
				if errors.Is(err, ErrIllegalTransition) || errors.Is(err, ErrGradeImmutable) {
					continue
				}
				return err
			}
			patch := map[string]interface{}{
				"grade_status":           g.GradeStatus,
				"grade_rejection_reason": g.GradeRejectionReason,
				"grade_submitted_by":     g.GradeSubmittedBy,
				"grade_submitted_at":     g.GradeSubmittedAt,
				"grade_reviewed_by":      g.GradeReviewedBy,
				"grade_reviewed_at":      g.GradeReviewedAt,
				"grade_released_by":      g.GradeReleasedBy,
				"grade_released_at":      g.GradeReleasedAt,
				"grade_updated_at":       now,
			}
			if err := tx.Model(&gmodel.GradeModel{}).
				Where("grade_id = ?", g.GradeID).
				Updates(patch).Error; err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}
