// file: internals/features/school/academics/grades/service/position_calculator.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLPositionCalculator invokes the calculate_class_positions stored function
// (dense rank over mean percentage per student within the class/term/exam).
// It runs detached: the submission reply goes out before ranks land, and a
// failed recalculation only logs. The grades/positions gap closes on the
// next successful trigger.
type SQLPositionCalculator struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewSQLPositionCalculator(db *gorm.DB) *SQLPositionCalculator {
	return &SQLPositionCalculator{DB: db, Timeout: 6 * time.Second}
}

func (p *SQLPositionCalculator) TriggerRecalculation(schoolID, classID uuid.UUID, term, examType string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
		defer cancel()

		if err := p.DB.WithContext(ctx).Exec(
			`SELECT calculate_class_positions(?, ?, ?, ?)`,
			schoolID, classID, term, examType,
		).Error; err != nil {
			log.Printf("[ERROR] position recalculation failed: school=%s class=%s term=%s exam=%s err=%v",
				schoolID, classID, term, examType, err)
			return
		}
		log.Printf("[INFO] positions recalculated: class=%s term=%s exam=%s", classID, term, examType)
	}()
}
