// file: internals/features/school/academics/grades/dto/bulk_submission_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func score(v float64) *float64 { return &v }

func TestToInput_ParsesKeysAndDropsMalformed(t *testing.T) {
	student := uuid.New()
	subject := uuid.New()
	schoolID := uuid.New()
	actorID := uuid.New()

	req := BulkGradeSubmissionRequest{
		ClassID:  uuid.New(),
		Term:     "term_2",
		ExamType: "endterm",
		Scores: map[string]map[string]ScoreCellRequest{
			student.String(): {
				subject.String(): {Score: score(88)},
				"not-a-uuid":     {Score: score(50)},
			},
			"also-not-a-uuid": {
				subject.String(): {Score: score(30)},
			},
		},
	}

	in := req.ToInput(schoolID, actorID, true)

	assert.Equal(t, schoolID, in.SchoolID)
	assert.Equal(t, req.ClassID, in.ClassID)
	assert.True(t, in.IsTeacher)
	assert.Len(t, in.Scores, 1, "malformed student key dropped")
	assert.Len(t, in.Scores[student], 1, "malformed subject key dropped")
	assert.Equal(t, 88.0, *in.Scores[student][subject].Score)
}

func TestToInput_DraftFlagOverridesTeacherRole(t *testing.T) {
	req := BulkGradeSubmissionRequest{
		ClassID:  uuid.New(),
		Term:     "term_1",
		ExamType: "cat_1",
		IsDraft:  true,
		Scores: map[string]map[string]ScoreCellRequest{
			uuid.New().String(): {uuid.New().String(): {Score: score(10)}},
		},
	}

	in := req.ToInput(uuid.New(), uuid.New(), true)
	assert.False(t, in.IsTeacher, "explicit draft saves must not auto-submit")
}

func TestToInput_NonTeacherNeverSubmits(t *testing.T) {
	req := BulkGradeSubmissionRequest{
		ClassID:  uuid.New(),
		Term:     "term_1",
		ExamType: "cat_1",
		Scores: map[string]map[string]ScoreCellRequest{
			uuid.New().String(): {uuid.New().String(): {Score: score(10)}},
		},
	}

	in := req.ToInput(uuid.New(), uuid.New(), false)
	assert.False(t, in.IsTeacher)
}
