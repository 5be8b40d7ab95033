package repositories

import (
	"context"

	"github.com/SAP-F-2025/wellness-service/internal/models"
)

// ===== ENTITY REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLanguage(ctx context.Context, id uint, language string) error
}

type MoodEntryRepository interface {
	// GetByUserAndDate returns gorm.ErrRecordNotFound when the user has no
	// entry for that date.
	GetByUserAndDate(ctx context.Context, userID uint, date string) (*models.MoodEntry, error)

	// Upsert inserts the entry, or overwrites mood/stress/energy/journal when
	// a row for (user, date) already exists. The unique index makes a racing
	// insert land on the update path (last write wins), never a duplicate.
	Upsert(ctx context.Context, entry *models.MoodEntry) error

	// ListByUser returns full entries (journal included) newest-first,
	// capped at limit.
	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error)

	// ListSince returns entries with date >= since, oldest-first. Charts plot
	// left-to-right chronologically, so ascending order is part of the
	// contract.
	ListSince(ctx context.Context, userID uint, since string) ([]*models.MoodEntry, error)

	// DistinctDates returns the distinct check-in dates for the user,
	// newest-first.
	DistinctDates(ctx context.Context, userID uint) ([]string, error)
}

type LinkRepository interface {
	Create(ctx context.Context, link *models.LinkedAccount) error
	Exists(ctx context.Context, parentID, studentID uint) (bool, error)
	ListStudents(ctx context.Context, parentID uint) ([]models.LinkedStudent, error)

	// Delete reports how many rows were removed so callers can distinguish
	// "unlinked" from "no such link".
	Delete(ctx context.Context, parentID, studentID uint) (int64, error)
}

type StressAlertRepository interface {
	Create(ctx context.Context, alert *models.StressAlert) error
	ListByStudent(ctx context.Context, studentID uint, limit int) ([]*models.StressAlert, error)
}
