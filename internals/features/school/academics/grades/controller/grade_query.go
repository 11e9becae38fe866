// file: internals/features/school/academics/grades/controller/grade_query.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edufam_backend/internals/features/school/academics/grades/dto"
	gmodel "edufam_backend/internals/features/school/academics/grades/model"
	helper "edufam_backend/internals/helpers"
)

// listGrades runs the filtered, paginated listing shared by the staff and
// admin surfaces. scopeSchool == uuid.Nil lists across schools (owner only).
func listGrades(c *fiber.Ctx, db *gorm.DB, scopeSchool uuid.UUID) error {
	var q dto.ListGradeQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}

	p := helper.ResolvePaging(c, 25, 200)

	tx := db.WithContext(c.UserContext()).Model(&gmodel.GradeModel{})
	if scopeSchool != uuid.Nil {
		tx = tx.Where("grade_school_id = ?", scopeSchool)
	}
	tx = applyGradeFilters(tx, &q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count grades")
	}

	var rows []gmodel.GradeModel
	if err := tx.
		Order("grade_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list grades")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Grades", dto.FromGradeModels(rows), &pg)
}

func getGradeByID(c *fiber.Ctx, db *gorm.DB, scopeSchool uuid.UUID) error {
	gradeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	var g gmodel.GradeModel
	if err := db.WithContext(c.UserContext()).
		Where("grade_id = ? AND grade_school_id = ?", gradeID, scopeSchool).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load grade")
	}
	return helper.JsonOK(c, "Grade", dto.FromGradeModel(&g))
}
