package storage

import (
	"context"
	"fmt"
	"internhub/models"

	"gorm.io/gorm"
)

// GormRepository stores one row per enrollment with tasks in a JSON column.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (g *GormRepository) LoadAll(ctx context.Context) ([]models.Enrollment, error) {
	var rows []models.EnrollmentRecord
	if err := g.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}

	enrollments := make([]models.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, row.ToEnrollment())
	}
	return enrollments, nil
}

// SaveAll replaces the table contents inside one transaction.
func (g *GormRepository) SaveAll(ctx context.Context, enrollments []models.Enrollment) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.EnrollmentRecord{}).Error; err != nil {
			return fmt.Errorf("clear enrollments: %w", err)
		}
		if len(enrollments) == 0 {
			return nil
		}

		rows := make([]models.EnrollmentRecord, 0, len(enrollments))
		for _, e := range enrollments {
			rows = append(rows, models.NewEnrollmentRecord(e))
		}
		if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
			return fmt.Errorf("insert enrollments: %w", err)
		}
		return nil
	})
}
