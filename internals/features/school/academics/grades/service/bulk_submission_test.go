// file: internals/features/school/academics/grades/service/bulk_submission_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

type fakeGradeStore struct {
	rows []gmodel.GradeModel
	err  error
}

func (f *fakeGradeStore) UpsertBatch(ctx context.Context, rows []gmodel.GradeModel) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.rows = append(f.rows, rows...)
	return len(rows), nil
}

type fakeCalculator struct {
	calls int
	class uuid.UUID
	term  string
	exam  string
}

func (f *fakeCalculator) TriggerRecalculation(schoolID, classID uuid.UUID, term, examType string) {
	f.calls++
	f.class = classID
	f.term = term
	f.exam = examType
}

func f64(v float64) *float64 { return &v }

func validInput() BulkSubmissionInput {
	return BulkSubmissionInput{
		SchoolID:  uuid.New(),
		ClassID:   uuid.New(),
		Term:      "term_1",
		ExamType:  "midterm",
		ActorID:   uuid.New(),
		IsTeacher: true,
		Scores:    map[uuid.UUID]map[uuid.UUID]ScoreCell{},
	}
}

func TestSubmit_SkipsEmptyCellsAndTriggersOnce(t *testing.T) {
	store := &fakeGradeStore{}
	calc := &fakeCalculator{}
	svc := NewBulkSubmissionService(store, calc)

	subject := uuid.New()
	in := validInput()
	// three students in the matrix, one with a blank cell
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{subject: {Score: f64(85)}}
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{subject: {Score: f64(60.5)}}
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{subject: {Score: nil}}

	res, err := svc.Submit(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.GradesWritten)
	assert.True(t, res.Submitted)
	assert.Len(t, store.rows, 2)

	assert.Equal(t, 1, calc.calls, "recalculation fires exactly once per submission")
	assert.Equal(t, in.ClassID, calc.class)
	assert.Equal(t, "term_1", calc.term)
	assert.Equal(t, "midterm", calc.exam)
}

func TestSubmit_TeacherRowsAreSubmittedAndStamped(t *testing.T) {
	store := &fakeGradeStore{}
	svc := NewBulkSubmissionService(store, &fakeCalculator{})

	in := validInput()
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{uuid.New(): {Score: f64(72)}}

	_, err := svc.Submit(context.Background(), in)
	assert.NoError(t, err)

	g := store.rows[0]
	assert.Equal(t, gmodel.GradeStatusSubmitted, g.GradeStatus)
	assert.Equal(t, 72.0, g.GradeScore)
	assert.Equal(t, 100.0, g.GradeMaxScore)
	assert.Equal(t, 72.0, g.GradePercentage)
	if assert.NotNil(t, g.GradeSubmittedBy) {
		assert.Equal(t, in.ActorID, *g.GradeSubmittedBy)
	}
	assert.NotNil(t, g.GradeSubmittedAt)
}

func TestSubmit_NonTeacherSavesDraft(t *testing.T) {
	store := &fakeGradeStore{}
	svc := NewBulkSubmissionService(store, &fakeCalculator{})

	in := validInput()
	in.IsTeacher = false
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{uuid.New(): {Score: f64(40)}}

	res, err := svc.Submit(context.Background(), in)
	assert.NoError(t, err)
	assert.False(t, res.Submitted)
	assert.Equal(t, gmodel.GradeStatusDraft, store.rows[0].GradeStatus)
	assert.Nil(t, store.rows[0].GradeSubmittedBy)
}

func TestSubmit_MissingSelection(t *testing.T) {
	svc := NewBulkSubmissionService(&fakeGradeStore{}, &fakeCalculator{})

	in := validInput()
	in.Term = ""
	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingSelection)

	in = validInput()
	in.ClassID = uuid.Nil
	_, err = svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingSelection)
}

func TestSubmit_NothingToSubmit(t *testing.T) {
	calc := &fakeCalculator{}
	svc := NewBulkSubmissionService(&fakeGradeStore{}, calc)

	in := validInput()
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{uuid.New(): {Score: nil}}

	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrNothingToSubmit)
	assert.Equal(t, 0, calc.calls, "no recalculation without a write")
}

func TestSubmit_ScoreOutOfRange(t *testing.T) {
	calc := &fakeCalculator{}
	store := &fakeGradeStore{}
	svc := NewBulkSubmissionService(store, calc)

	in := validInput()
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{
		uuid.New(): {Score: f64(105)}, // default max is 100
	}

	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)
	assert.Empty(t, store.rows, "nothing is written when any cell is invalid")
	assert.Equal(t, 0, calc.calls)
}

func TestSubmit_ComponentsLandInMeta(t *testing.T) {
	store := &fakeGradeStore{}
	svc := NewBulkSubmissionService(store, &fakeCalculator{})

	in := validInput()
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{
		uuid.New(): {
			Score:      f64(80),
			Components: map[string]interface{}{"cat_1": 18.0, "cat_2": 20.0, "exam": 42.0},
		},
		uuid.New(): {Score: f64(55)},
	}

	_, err := svc.Submit(context.Background(), in)
	assert.NoError(t, err)

	var withMeta, withoutMeta int
	for _, g := range store.rows {
		if g.GradeMeta != nil {
			withMeta++
			assert.Equal(t, 18.0, g.GradeMeta["cat_1"])
		} else {
			withoutMeta++
		}
	}
	assert.Equal(t, 1, withMeta)
	assert.Equal(t, 1, withoutMeta, "cells without a breakdown stay null")
}

func TestSubmit_CustomMaxScore(t *testing.T) {
	store := &fakeGradeStore{}
	svc := NewBulkSubmissionService(store, &fakeCalculator{})

	in := validInput()
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{
		uuid.New(): {Score: f64(45), MaxScore: f64(50)},
	}

	_, err := svc.Submit(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, store.rows[0].GradeMaxScore)
	assert.Equal(t, 90.0, store.rows[0].GradePercentage)
}

func TestSubmit_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	calc := &fakeCalculator{}
	svc := NewBulkSubmissionService(&fakeGradeStore{err: boom}, calc)

	in := validInput()
	in.Scores[uuid.New()] = map[uuid.UUID]ScoreCell{uuid.New(): {Score: f64(10)}}

	_, err := svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, calc.calls, "failed writes must not trigger recalculation")
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 85.0, Percentage(85, 100))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 0.0, Percentage(5, 0))
}
