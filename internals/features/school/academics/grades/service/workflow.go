// file: internals/features/school/academics/grades/service/workflow.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

// Workflow events. The status column is never written except through
// ApplyTransition, so illegal moves cannot reach the database.
type Event string

const (
	EventSubmit  Event = "submit"
	EventReview  Event = "review"
	EventApprove Event = "approve"
	EventReject  Event = "reject"
	EventRelease Event = "release"
)

var (
	ErrIllegalTransition = errors.New("illegal grade status transition")
	ErrGradeImmutable    = errors.New("grade is approved/released and can only change through an approved override")
	ErrReasonRequired    = errors.New("rejection requires a reason")
)

// transitions holds the legal (from, event) → to pairs.
var transitions = map[gmodel.GradeStatus]map[Event]gmodel.GradeStatus{
	gmodel.GradeStatusDraft: {
		EventSubmit: gmodel.GradeStatusSubmitted,
	},
	// a rejected grade re-enters the flow by being resubmitted on the same row
	gmodel.GradeStatusRejected: {
		EventSubmit: gmodel.GradeStatusSubmitted,
	},
	gmodel.GradeStatusSubmitted: {
		EventReview:  gmodel.GradeStatusUnderReview,
		EventApprove: gmodel.GradeStatusApproved,
		EventReject:  gmodel.GradeStatusRejected,
	},
	gmodel.GradeStatusUnderReview: {
		EventApprove: gmodel.GradeStatusApproved,
		EventReject:  gmodel.GradeStatusRejected,
	},
	gmodel.GradeStatusApproved: {
		EventRelease: gmodel.GradeStatusReleased,
	},
}

// NextStatus resolves the target status for an event, or ErrIllegalTransition.
func NextStatus(cur gmodel.GradeStatus, ev Event) (gmodel.GradeStatus, error) {
	if evs, ok := transitions[cur]; ok {
		if to, ok := evs[ev]; ok {
			return to, nil
		}
	}
	// make the immutability violation distinguishable from a plain bad move
	if cur.Immutable() && ev != EventRelease {
		return "", ErrGradeImmutable
	}
	return "", ErrIllegalTransition
}

// ApplyTransition mutates the row in memory: status plus the audit fields the
// event carries. Persisting is the caller's job.
func ApplyTransition(g *gmodel.GradeModel, ev Event, actorID uuid.UUID, reason string, now time.Time) error {
	next, err := NextStatus(g.GradeStatus, ev)
	if err != nil {
		return err
	}

	switch ev {
	case EventSubmit:
		g.GradeSubmittedBy = &actorID
		g.GradeSubmittedAt = &now
		g.GradeRejectionReason = nil
	case EventReview:
		g.GradeReviewedBy = &actorID
		g.GradeReviewedAt = &now
	case EventApprove:
		g.GradeReviewedBy = &actorID
		g.GradeReviewedAt = &now
		g.GradeRejectionReason = nil
	case EventReject:
		if strings.TrimSpace(reason) == "" {
			return ErrReasonRequired
		}
		r := strings.TrimSpace(reason)
		g.GradeRejectionReason = &r
		g.GradeReviewedBy = &actorID
		g.GradeReviewedAt = &now
	case EventRelease:
		g.GradeReleasedBy = &actorID
		g.GradeReleasedAt = &now
	}

	g.GradeStatus = next
	return nil
}
