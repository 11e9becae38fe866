// file: internals/features/school/academics/grades/service/grade_store.go
package service

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

// GormGradeStore writes the grade table. Conflict resolution rides on the
// composite identity index; approved/released rows are excluded from the
// update so the immutability invariant holds even against a racing upsert.
type GormGradeStore struct {
	DB *gorm.DB
}

func NewGormGradeStore(db *gorm.DB) *GormGradeStore {
	return &GormGradeStore{DB: db}
}

func (s *GormGradeStore) UpsertBatch(ctx context.Context, rows []gmodel.GradeModel) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var affected int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "grade_school_id"},
				{Name: "grade_student_id"},
				{Name: "grade_subject_id"},
				{Name: "grade_class_id"},
				{Name: "grade_term"},
				{Name: "grade_exam_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"grade_score",
				"grade_max_score",
				"grade_percentage",
				"grade_letter",
				"grade_performance_level",
				"grade_status",
				"grade_rejection_reason",
				"grade_submitted_by",
				"grade_submitted_at",
				"grade_meta",
				"grade_updated_at",
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "grades.grade_status NOT IN ('approved','released')"},
			}},
		}).CreateInBatches(rows, 200)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
