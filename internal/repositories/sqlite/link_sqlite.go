package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
)

type LinkSQLite struct {
	db *gorm.DB
}

func NewLinkSQLite(db *gorm.DB) repositories.LinkRepository {
	return &LinkSQLite{db: db}
}

func (l *LinkSQLite) Create(ctx context.Context, link *models.LinkedAccount) error {
	return l.db.WithContext(ctx).Create(link).Error
}

func (l *LinkSQLite) Exists(ctx context.Context, parentID, studentID uint) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&models.LinkedAccount{}).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *LinkSQLite) ListStudents(ctx context.Context, parentID uint) ([]models.LinkedStudent, error) {
	var students []models.LinkedStudent
	err := l.db.WithContext(ctx).
		Model(&models.LinkedAccount{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN users ON users.id = linked_accounts.student_id").
		Where("linked_accounts.parent_id = ?", parentID).
		Order("users.name ASC").
		Scan(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (l *LinkSQLite) Delete(ctx context.Context, parentID, studentID uint) (int64, error) {
	result := l.db.WithContext(ctx).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Delete(&models.LinkedAccount{})
	return result.RowsAffected, result.Error
}
