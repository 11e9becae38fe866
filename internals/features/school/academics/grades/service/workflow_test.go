// file: internals/features/school/academics/grades/service/workflow_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

func TestNextStatus_LegalMoves(t *testing.T) {
	cases := []struct {
		from gmodel.GradeStatus
		ev   Event
		want gmodel.GradeStatus
	}{
		{gmodel.GradeStatusDraft, EventSubmit, gmodel.GradeStatusSubmitted},
		{gmodel.GradeStatusRejected, EventSubmit, gmodel.GradeStatusSubmitted},
		{gmodel.GradeStatusSubmitted, EventReview, gmodel.GradeStatusUnderReview},
		{gmodel.GradeStatusSubmitted, EventApprove, gmodel.GradeStatusApproved},
		{gmodel.GradeStatusSubmitted, EventReject, gmodel.GradeStatusRejected},
		{gmodel.GradeStatusUnderReview, EventApprove, gmodel.GradeStatusApproved},
		{gmodel.GradeStatusUnderReview, EventReject, gmodel.GradeStatusRejected},
		{gmodel.GradeStatusApproved, EventRelease, gmodel.GradeStatusReleased},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.ev)
		assert.NoError(t, err, "from=%s ev=%s", tc.from, tc.ev)
		assert.Equal(t, tc.want, got, "from=%s ev=%s", tc.from, tc.ev)
	}
}

func TestNextStatus_IllegalMoves(t *testing.T) {
	illegal := []struct {
		from gmodel.GradeStatus
		ev   Event
	}{
		{gmodel.GradeStatusDraft, EventApprove},
		{gmodel.GradeStatusDraft, EventReject},
		{gmodel.GradeStatusDraft, EventRelease},
		{gmodel.GradeStatusSubmitted, EventSubmit},
		{gmodel.GradeStatusSubmitted, EventRelease},
		{gmodel.GradeStatusUnderReview, EventSubmit},
		{gmodel.GradeStatusUnderReview, EventRelease},
	}
	for _, tc := range illegal {
		_, err := NextStatus(tc.from, tc.ev)
		assert.ErrorIs(t, err, ErrIllegalTransition, "from=%s ev=%s", tc.from, tc.ev)
	}
}

func TestNextStatus_ImmutableStates(t *testing.T) {
	// approved only accepts release, released accepts nothing
	for _, ev := range []Event{EventSubmit, EventReview, EventApprove, EventReject} {
		_, err := NextStatus(gmodel.GradeStatusApproved, ev)
		assert.ErrorIs(t, err, ErrGradeImmutable, "approved ev=%s", ev)
	}
	for _, ev := range []Event{EventSubmit, EventReview, EventApprove, EventReject} {
		_, err := NextStatus(gmodel.GradeStatusReleased, ev)
		assert.ErrorIs(t, err, ErrGradeImmutable, "released ev=%s", ev)
	}
	_, err := NextStatus(gmodel.GradeStatusReleased, EventRelease)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApplyTransition_RejectRequiresReason(t *testing.T) {
	g := &gmodel.GradeModel{GradeStatus: gmodel.GradeStatusSubmitted}
	err := ApplyTransition(g, EventReject, uuid.New(), "   ", time.Now())
	assert.ErrorIs(t, err, ErrReasonRequired)
	assert.Equal(t, gmodel.GradeStatusSubmitted, g.GradeStatus, "status must not change on failure")
}

func TestApplyTransition_RejectStoresReason(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()
	g := &gmodel.GradeModel{GradeStatus: gmodel.GradeStatusSubmitted}

	err := ApplyTransition(g, EventReject, actor, "  wrong exam sheet  ", now)
	assert.NoError(t, err)
	assert.Equal(t, gmodel.GradeStatusRejected, g.GradeStatus)
	if assert.NotNil(t, g.GradeRejectionReason) {
		assert.Equal(t, "wrong exam sheet", *g.GradeRejectionReason)
	}
	assert.Equal(t, &actor, g.GradeReviewedBy)
}

func TestApplyTransition_ResubmitClearsRejection(t *testing.T) {
	actor := uuid.New()
	reason := "bad total"
	g := &gmodel.GradeModel{
		GradeStatus:          gmodel.GradeStatusRejected,
		GradeRejectionReason: &reason,
	}

	err := ApplyTransition(g, EventSubmit, actor, "", time.Now().UTC())
	assert.NoError(t, err)
	assert.Equal(t, gmodel.GradeStatusSubmitted, g.GradeStatus)
	assert.Nil(t, g.GradeRejectionReason)
	assert.Equal(t, &actor, g.GradeSubmittedBy)
}

func TestApplyTransition_ReleaseStampsReleaser(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()
	g := &gmodel.GradeModel{GradeStatus: gmodel.GradeStatusApproved}

	err := ApplyTransition(g, EventRelease, actor, "", now)
	assert.NoError(t, err)
	assert.Equal(t, gmodel.GradeStatusReleased, g.GradeStatus)
	assert.Equal(t, &actor, g.GradeReleasedBy)
	if assert.NotNil(t, g.GradeReleasedAt) {
		assert.Equal(t, now, *g.GradeReleasedAt)
	}
}
