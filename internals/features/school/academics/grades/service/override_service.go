// file: internals/features/school/academics/grades/service/override_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

var (
	ErrOverrideNotFound    = errors.New("override request not found")
	ErrOverrideNotPending  = errors.New("override request already decided")
	ErrOverrideSameScore   = errors.New("new score equals the current score")
	ErrOverrideNotEligible = errors.New("only approved or released grades can be overridden")
)

// ValidateOverrideRequest checks a proposed correction against the grade it
// targets. Kept pure so the rules are testable without a database.
func ValidateOverrideRequest(g *gmodel.GradeModel, newScore float64, reason string) error {
	if !g.GradeStatus.Immutable() {
		return ErrOverrideNotEligible
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if newScore < 0 || newScore > g.GradeMaxScore {
		return ErrScoreOutOfRange
	}
	if newScore == g.GradeScore {
		return ErrOverrideSameScore
	}
	return nil
}

// OverrideService is the only write path that touches the score of an
// approved or released grade. Request records intent, Approve applies it.
type OverrideService struct {
	DB *gorm.DB
}

func NewOverrideService(db *gorm.DB) *OverrideService {
	return &OverrideService{DB: db}
}

func (s *OverrideService) Request(
	ctx context.Context,
	schoolID, gradeID uuid.UUID,
	newScore float64,
	reason string,
	requestedBy uuid.UUID,
) (*gmodel.GradeOverrideModel, error) {
	var out gmodel.GradeOverrideModel

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

		if err := ValidateOverrideRequest(&g, newScore, reason); err != nil {
			return err
		}

		// one pending request per grade at a time
		var pending int64
		if err := tx.Model(&gmodel.GradeOverrideModel{}).
			Where("override_grade_id = ? AND override_status = ?", gradeID, gmodel.OverrideStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return errors.New("a pending override already exists for this grade")
		}

		out = gmodel.GradeOverrideModel{
			OverrideSchoolID:      schoolID,
			OverrideGradeID:       gradeID,
			OverrideOriginalScore: g.GradeScore,
			OverrideNewScore:      newScore,
			OverrideReason:        strings.TrimSpace(reason),
			OverrideStatus:        gmodel.OverrideStatusPending,
			OverrideRequestedBy:   requestedBy,
			OverrideRequestedAt:   time.Now().UTC(),
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve applies the requested score to the grade and closes the request,
// both inside one transaction so the audit row and the new score cannot
// diverge.
func (s *OverrideService) Approve(
	ctx context.Context,
	schoolID, overrideID uuid.UUID,
	decidedBy uuid.UUID,
	note string,
) (*gmodel.GradeOverrideModel, error) {
	return s.decide(ctx, schoolID, overrideID, decidedBy, note, true)
}

func (s *OverrideService) Reject(
	ctx context.Context,
	schoolID, overrideID uuid.UUID,
	decidedBy uuid.UUID,
	note string,
) (*gmodel.GradeOverrideModel, error) {
	return s.decide(ctx, schoolID, overrideID, decidedBy, note, false)
}

func (s *OverrideService) decide(
	ctx context.Context,
	schoolID, overrideID uuid.UUID,
	decidedBy uuid.UUID,
	note string,
	approve bool,
) (*gmodel.GradeOverrideModel, error) {
	var out gmodel.GradeOverrideModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ov gmodel.GradeOverrideModel
		if err := tx.
			Where("override_id = ? AND override_school_id = ?", overrideID, schoolID).
			First(&ov).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOverrideNotFound
			}
			return err
		}
		if ov.OverrideStatus != gmodel.OverrideStatusPending {
			return ErrOverrideNotPending
		}

		now := time.Now().UTC()
		status := gmodel.OverrideStatusRejected
		if approve {
			status = gmodel.OverrideStatusApproved
		}

		patch := map[string]interface{}{
			"override_status":     status,
			"override_decided_by": decidedBy,
			"override_decided_at": now,
			"override_updated_at": now,
		}
		if n := strings.TrimSpace(note); n != "" {
			patch["override_decision_note"] = n
		}
		if err := tx.Model(&gmodel.GradeOverrideModel{}).
			Where("override_id = ?", ov.OverrideID).
			Updates(patch).Error; err != nil {
			return err
		}

		if approve {
			var g gmodel.GradeModel
			if err := tx.
				Where("grade_id = ? AND grade_school_id = ?", ov.OverrideGradeID, schoolID).
				First(&g).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrGradeNotFound
				}
				return err
			}
			if err := tx.Model(&gmodel.GradeModel{}).
				Where("grade_id = ?", g.GradeID).
				Updates(overrideGradePatch(&ov, &g, now)).Error; err != nil {
				return err
			}
		}

		ov.OverrideStatus = status
		ov.OverrideDecidedBy = &decidedBy
		ov.OverrideDecidedAt = &now
		out = ov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// overrideGradePatch builds the column updates an approved override applies.
// Letter and performance level were derived from the old score, so they are
// cleared rather than shipped stale alongside the corrected one.
func overrideGradePatch(ov *gmodel.GradeOverrideModel, g *gmodel.GradeModel, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"grade_score":             ov.OverrideNewScore,
		"grade_percentage":        Percentage(ov.OverrideNewScore, g.GradeMaxScore),
		"grade_letter":            nil,
		"grade_performance_level": nil,
		"grade_updated_at":        now,
	}
}

// ListPending feeds the principal's review queue.
func (s *OverrideService) ListPending(ctx context.Context, schoolID uuid.UUID) ([]gmodel.GradeOverrideModel, error) {
	var rows []gmodel.GradeOverrideModel
	err := s.DB.WithContext(ctx).
		Where("override_school_id = ? AND override_status = ?", schoolID, gmodel.OverrideStatusPending).
		Order("override_requested_at ASC").
		Find(&rows).Error
	return rows, err
}
