package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/wellness-service/internal/auth"
	"github.com/SAP-F-2025/wellness-service/internal/cache"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
	sqliterepo "github.com/SAP-F-2025/wellness-service/internal/repositories/sqlite"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// newTestRepo opens a per-test in-memory database. The named shared-cache DSN
// keeps every pooled connection on the same database.
func newTestRepo(t *testing.T) repositories.Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.MoodEntry{}, &models.LinkedAccount{}, &models.StressAlert{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqliterepo.NewSQLiteRepository(sqliterepo.RepositoryConfig{DB: db})
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testValidator() *validator.BusinessValidator {
	return validator.NewBusinessValidator()
}

func testTokens() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", time.Hour)
}

func testCache() *cache.CacheManager {
	return cache.NewCacheManager(nil)
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func seedUser(t *testing.T, repo repositories.Repository, name, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		Language: models.LanguageEnglish,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// dateOffset returns the calendar date daysAgo days before today.
func dateOffset(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).Format(models.EntryDateLayout)
}

func seedEntry(t *testing.T, repo repositories.Repository, userID uint, date string, mood models.Mood, stress, energy int) {
	t.Helper()

	entry := &models.MoodEntry{
		UserID: userID,
		Mood:   mood,
		Stress: stress,
		Energy: energy,
		Date:   date,
	}
	if err := repo.MoodEntry().Upsert(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
}
