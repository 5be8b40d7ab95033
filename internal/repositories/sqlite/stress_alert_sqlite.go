package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
)

type StressAlertSQLite struct {
	db *gorm.DB
}

func NewStressAlertSQLite(db *gorm.DB) repositories.StressAlertRepository {
	return &StressAlertSQLite{db: db}
}

func (s *StressAlertSQLite) Create(ctx context.Context, alert *models.StressAlert) error {
	return s.db.WithContext(ctx).Create(alert).Error
}

func (s *StressAlertSQLite) ListByStudent(ctx context.Context, studentID uint, limit int) ([]*models.StressAlert, error) {
	var alerts []*models.StressAlert
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
