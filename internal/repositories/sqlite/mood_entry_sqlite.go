package sqlite

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
)

type MoodEntrySQLite struct {
	db *gorm.DB
}

func NewMoodEntrySQLite(db *gorm.DB) repositories.MoodEntryRepository {
	return &MoodEntrySQLite{db: db}
}

func (m *MoodEntrySQLite) GetByUserAndDate(ctx context.Context, userID uint, date string) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (m *MoodEntrySQLite) Upsert(ctx context.Context, entry *models.MoodEntry) error {
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"mood", "stress", "energy", "journal"}),
		}).
		Create(entry).Error
}

func (m *MoodEntrySQLite) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *MoodEntrySQLite) ListSince(ctx context.Context, userID uint, since string) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *MoodEntrySQLite) DistinctDates(ctx context.Context, userID uint) ([]string, error) {
	var dates []string
	err := m.db.WithContext(ctx).
		Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Distinct("date").
		Order("date DESC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}
