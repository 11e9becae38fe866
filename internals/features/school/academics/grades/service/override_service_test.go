// file: internals/features/school/academics/grades/service/override_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

func approvedGrade(score, max float64) *gmodel.GradeModel {
	return &gmodel.GradeModel{
		GradeStatus:   gmodel.GradeStatusApproved,
		GradeScore:    score,
		GradeMaxScore: max,
	}
}

func TestValidateOverrideRequest_OK(t *testing.T) {
	g := approvedGrade(70, 100)
	assert.NoError(t, ValidateOverrideRequest(g, 75, "marking error on question 4"))

	g.GradeStatus = gmodel.GradeStatusReleased
	assert.NoError(t, ValidateOverrideRequest(g, 75, "marking error on question 4"))
}

func TestValidateOverrideRequest_OnlyImmutableGrades(t *testing.T) {
	for _, st := range []gmodel.GradeStatus{
		gmodel.GradeStatusDraft,
		gmodel.GradeStatusSubmitted,
		gmodel.GradeStatusUnderReview,
		gmodel.GradeStatusRejected,
	} {
		g := approvedGrade(70, 100)
		g.GradeStatus = st
		err := ValidateOverrideRequest(g, 75, "reason")
		assert.ErrorIs(t, err, ErrOverrideNotEligible, "status=%s", st)
	}
}

func TestValidateOverrideRequest_ReasonRequired(t *testing.T) {
	g := approvedGrade(70, 100)
	assert.ErrorIs(t, ValidateOverrideRequest(g, 75, ""), ErrReasonRequired)
	assert.ErrorIs(t, ValidateOverrideRequest(g, 75, "   "), ErrReasonRequired)
}

func TestValidateOverrideRequest_ScoreBounds(t *testing.T) {
	g := approvedGrade(70, 100)
	assert.ErrorIs(t, ValidateOverrideRequest(g, -1, "reason"), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateOverrideRequest(g, 101, "reason"), ErrScoreOutOfRange)
	assert.NoError(t, ValidateOverrideRequest(g, 100, "reason"))
	assert.NoError(t, ValidateOverrideRequest(g, 0, "reason"))
}

func TestValidateOverrideRequest_SameScoreIsNoop(t *testing.T) {
	g := approvedGrade(70, 100)
	assert.ErrorIs(t, ValidateOverrideRequest(g, 70, "reason"), ErrOverrideSameScore)
}

func TestOverrideGradePatch_ClearsDerivedFields(t *testing.T) {
	letter := "B"
	level := "meeting_expectations"
	g := approvedGrade(70, 100)
	g.GradeLetter = &letter
	g.GradePerformanceLevel = &level

	ov := &gmodel.GradeOverrideModel{
		OverrideOriginalScore: 70,
		OverrideNewScore:      82,
	}
	now := time.Now().UTC()

	patch := overrideGradePatch(ov, g, now)
	assert.Equal(t, 82.0, patch["grade_score"])
	assert.Equal(t, 82.0, patch["grade_percentage"])
	assert.Nil(t, patch["grade_letter"], "letter derived from the old score must not survive")
	assert.Nil(t, patch["grade_performance_level"])
	assert.Equal(t, now, patch["grade_updated_at"])
}
