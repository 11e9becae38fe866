// file: internals/features/school/academics/grades/service/parent_grades_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

type guardianPair struct{ guardian, student uuid.UUID }

type fakeLinkStore struct {
	verified map[guardianPair]bool
	err      error
}

func (f *fakeLinkStore) HasVerifiedLink(ctx context.Context, schoolID, guardianID, studentID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.verified[guardianPair{guardianID, studentID}], nil
}

type fakeGradeReader struct {
	rows []gmodel.GradeModel

	calls       int
	gotStudent  uuid.UUID
	gotStatus   gmodel.GradeStatus
	gotTerm     string
	gotExamType string
}

func (f *fakeGradeReader) ListByStudentStatus(
	ctx context.Context,
	schoolID, studentID uuid.UUID,
	status gmodel.GradeStatus,
	term, examType string,
	limit, offset int,
) ([]gmodel.GradeModel, int64, error) {
	f.calls++
	f.gotStudent = studentID
	f.gotStatus = status
	f.gotTerm = term
	f.gotExamType = examType
	return f.rows, int64(len(f.rows)), nil
}

func TestListChildGrades_RequiresVerifiedLink(t *testing.T) {
	guardian := uuid.New()
	student := uuid.New()
	links := &fakeLinkStore{verified: map[guardianPair]bool{}}
	reader := &fakeGradeReader{}
	svc := NewParentGradeService(links, reader)

	_, _, err := svc.ListChildGrades(context.Background(), uuid.New(), guardian, student, ParentGradeQuery{})
	assert.ErrorIs(t, err, ErrNotGuardianOfStudent)
	assert.Equal(t, 0, reader.calls, "no grade read without a verified link")
}

func TestListChildGrades_AnotherGuardiansChildIsInvisible(t *testing.T) {
	guardianA := uuid.New()
	guardianB := uuid.New()
	student := uuid.New()

	// the link belongs to guardian A only
	links := &fakeLinkStore{verified: map[guardianPair]bool{
		{guardianA, student}: true,
	}}
	reader := &fakeGradeReader{}
	svc := NewParentGradeService(links, reader)

	_, _, err := svc.ListChildGrades(context.Background(), uuid.New(), guardianB, student, ParentGradeQuery{})
	assert.ErrorIs(t, err, ErrNotGuardianOfStudent)
	assert.Equal(t, 0, reader.calls)
}

func TestListChildGrades_ReadsReleasedOnly(t *testing.T) {
	guardian := uuid.New()
	student := uuid.New()
	links := &fakeLinkStore{verified: map[guardianPair]bool{
		{guardian, student}: true,
	}}
	reader := &fakeGradeReader{rows: []gmodel.GradeModel{
		{GradeStudentID: student, GradeStatus: gmodel.GradeStatusReleased},
	}}
	svc := NewParentGradeService(links, reader)

	rows, total, err := svc.ListChildGrades(context.Background(), uuid.New(), guardian, student,
		ParentGradeQuery{Term: "term_1", ExamType: "midterm", Limit: 25})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, rows, 1)

	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, student, reader.gotStudent)
	assert.Equal(t, gmodel.GradeStatusReleased, reader.gotStatus,
		"guardian reads must only ever ask for released grades")
	assert.Equal(t, "term_1", reader.gotTerm)
	assert.Equal(t, "midterm", reader.gotExamType)
}

func TestListChildGrades_LinkStoreErrorPropagates(t *testing.T) {
	boom := errors.New("link table unavailable")
	links := &fakeLinkStore{err: boom}
	reader := &fakeGradeReader{}
	svc := NewParentGradeService(links, reader)

	_, _, err := svc.ListChildGrades(context.Background(), uuid.New(), uuid.New(), uuid.New(), ParentGradeQuery{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, reader.calls)
}
