// file: internals/features/school/academics/grades/service/parent_grades.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gmodel "edufam_backend/internals/features/school/academics/grades/model"
)

var ErrNotGuardianOfStudent = errors.New("no verified guardian link to this student")

// GuardianLinkStore answers whether a guardian holds a verified link to a
// student within one school.
type GuardianLinkStore interface {
	HasVerifiedLink(ctx context.Context, schoolID, guardianID, studentID uuid.UUID) (bool, error)
}

// StudentGradeReader lists one student's grades filtered by status. The
// parent service only ever asks for released rows; the status parameter keeps
// that choice visible at the call boundary.
type StudentGradeReader interface {
	ListByStudentStatus(
		ctx context.Context,
		schoolID, studentID uuid.UUID,
		status gmodel.GradeStatus,
		term, examType string,
		limit, offset int,
	) ([]gmodel.GradeModel, int64, error)
}

// ParentGradeQuery carries the optional filters plus paging.
type ParentGradeQuery struct {
	Term     string
	ExamType string
	Limit    int
	Offset   int
}

// ParentGradeService enforces the two guardian read rules: a verified link is
// required, and only released grades ever come back. Both live here, not in
// the handler, so they hold for any transport.
type ParentGradeService struct {
	Links  GuardianLinkStore
	Grades StudentGradeReader
}

func NewParentGradeService(links GuardianLinkStore, grades StudentGradeReader) *ParentGradeService {
	return &ParentGradeService{Links: links, Grades: grades}
}

func (s *ParentGradeService) ListChildGrades(
	ctx context.Context,
	schoolID, guardianID, studentID uuid.UUID,
	q ParentGradeQuery,
) ([]gmodel.GradeModel, int64, error) {
	ok, err := s.Links.HasVerifiedLink(ctx, schoolID, guardianID, studentID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, ErrNotGuardianOfStudent
	}
	return s.Grades.ListByStudentStatus(
		ctx, schoolID, studentID,
		gmodel.GradeStatusReleased,
		q.Term, q.ExamType,
		q.Limit, q.Offset,
	)
}

/* =========================================================
   gorm implementations
========================================================= */

type GormParentReadStore struct {
	DB *gorm.DB
}

func NewGormParentReadStore(db *gorm.DB) *GormParentReadStore {
	return &GormParentReadStore{DB: db}
}

func (s *GormParentReadStore) HasVerifiedLink(
	ctx context.Context,
	schoolID, guardianID, studentID uuid.UUID,
) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&gmodel.GuardianStudentModel{}).
		Where(`guardian_student_school_id = ?
			AND guardian_student_guardian_user_id = ?
			AND guardian_student_student_id = ?
			AND guardian_student_is_verified = TRUE`,
			schoolID, guardianID, studentID).
		Count(&n).Error
	return n > 0, err
}

func (s *GormParentReadStore) ListByStudentStatus(
	ctx context.Context,
	schoolID, studentID uuid.UUID,
	status gmodel.GradeStatus,
	term, examType string,
	limit, offset int,
) ([]gmodel.GradeModel, int64, error) {
	tx := s.DB.WithContext(ctx).
		Model(&gmodel.GradeModel{}).
		Where("grade_school_id = ? AND grade_student_id = ? AND grade_status = ?",
			schoolID, studentID, status)
	if term != "" {
		tx = tx.Where("grade_term = ?", term)
	}
	if examType != "" {
		tx = tx.Where("grade_exam_type = ?", examType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []gmodel.GradeModel
	if err := tx.
		Order("grade_released_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
