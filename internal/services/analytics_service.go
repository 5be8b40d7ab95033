package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/wellness-service/internal/cache"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// High-stress alert tuning: a run of highStressRunLength or more days at
// stress >= highStressThreshold within the recentEntriesWindow newest entries
// raises the alert.
const (
	highStressThreshold = 4
	highStressRunLength = 3
	recentEntriesWindow = 7
)

// ===== RESPONSE DTOs =====

type StudentDashboardResponse struct {
	Entries       []models.TrendPoint `json:"entries"`
	WellnessScore int                 `json:"wellnessScore"`
	Streak        int                 `json:"streak"`
	TotalEntries  int                 `json:"totalEntries"`
}

type ParentSummary struct {
	Mood      string  `json:"mood"`
	AvgStress float64 `json:"avgStress"`
	AvgEnergy float64 `json:"avgEnergy"`
}

type ParentDashboardResponse struct {
	Student                   models.LinkedStudent `json:"student"`
	Entries                   []models.TrendPoint  `json:"entries"`
	Summary                   ParentSummary        `json:"summary"`
	HighStressAlert           bool                 `json:"highStressAlert"`
	ConsecutiveHighStressDays int                  `json:"consecutiveHighStressDays"`
}

// ===== SERVICE INTERFACE =====

type AnalyticsService interface {
	GetStudentDashboard(ctx context.Context, userID uint, period string) (*StudentDashboardResponse, error)

	// GetParentDashboard verifies the parent->student link before touching any
	// student data: an unlinked parent gets ErrForbidden even when the student
	// exists, so the endpoint cannot confirm which accounts are real.
	GetParentDashboard(ctx context.Context, parentID, studentID uint, period string) (*ParentDashboardResponse, error)

	// GetAlertHistory returns the persisted stress-alert audit rows for a
	// linked student, newest-first.
	GetAlertHistory(ctx context.Context, parentID, studentID uint, limit int) ([]*models.StressAlert, error)
}

// ===== SERVICE IMPLEMENTATION =====

type analyticsService struct {
	repo         repositories.Repository
	cacheManager *cache.CacheManager
	logger       *slog.Logger
	validator    *validator.BusinessValidator
}

func NewAnalyticsService(repo repositories.Repository, cacheManager *cache.CacheManager, logger *slog.Logger, v *validator.BusinessValidator) AnalyticsService {
	return &analyticsService{
		repo:         repo,
		cacheManager: cacheManager,
		logger:       logger,
		validator:    v,
	}
}

func (s *analyticsService) GetStudentDashboard(ctx context.Context, userID uint, period string) (*StudentDashboardResponse, error) {
	s.logger.Info("Getting student dashboard", "user_id", userID, "period", period)

	period, errs := s.validator.ValidatePeriod(period)
	if errs.HasErrors() {
		return nil, errs
	}

	cacheKey := fmt.Sprintf("student:%d:%s", userID, period)
	var resp StudentDashboardResponse
	err := s.cacheManager.Dashboard.CacheOrExecute(ctx, cacheKey, &resp, cache.DashboardCacheConfig.TTL, func() (interface{}, error) {
		return s.buildStudentDashboard(ctx, userID, period)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *analyticsService) buildStudentDashboard(ctx context.Context, userID uint, period string) (*StudentDashboardResponse, error) {
	entries, err := s.entriesInWindow(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	dates, err := s.repo.MoodEntry().DistinctDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in dates: %w", err)
	}

	return &StudentDashboardResponse{
		Entries:       trendPoints(entries),
		WellnessScore: wellnessScore(entries),
		Streak:        currentStreak(dates, todayDate()),
		TotalEntries:  len(dates),
	}, nil
}

func (s *analyticsService) GetParentDashboard(ctx context.Context, parentID, studentID uint, period string) (*ParentDashboardResponse, error) {
	s.logger.Info("Getting parent dashboard", "parent_id", parentID, "student_id", studentID, "period", period)

	period, errs := s.validator.ValidatePeriod(period)
	if errs.HasErrors() {
		return nil, errs
	}

	// Link check comes first.
	linked, err := s.repo.Link().Exists(ctx, parentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}
	if !linked {
		return nil, fmt.Errorf("%w: student not linked to this account", ErrForbidden)
	}

	cacheKey := fmt.Sprintf("parent:%d:%s:%d", studentID, period, parentID)
	var resp ParentDashboardResponse
	err = s.cacheManager.Dashboard.CacheOrExecute(ctx, cacheKey, &resp, cache.DashboardCacheConfig.TTL, func() (interface{}, error) {
		return s.buildParentDashboard(ctx, studentID, period)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *analyticsService) buildParentDashboard(ctx context.Context, studentID uint, period string) (*ParentDashboardResponse, error) {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: student not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	entries, err := s.entriesInWindow(ctx, studentID, period)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.MoodEntry().ListByUser(ctx, studentID, recentEntriesWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent entries: %w", err)
	}
	run := consecutiveHighStress(recent)

	return &ParentDashboardResponse{
		Student: models.LinkedStudent{
			ID:    student.ID,
			Name:  student.Name,
			Email: student.Email,
		},
		Entries:                   trendPoints(entries),
		Summary:                   summarize(entries),
		HighStressAlert:           run >= highStressRunLength,
		ConsecutiveHighStressDays: run,
	}, nil
}

func (s *analyticsService) GetAlertHistory(ctx context.Context, parentID, studentID uint, limit int) ([]*models.StressAlert, error) {
	s.logger.Info("Getting alert history", "parent_id", parentID, "student_id", studentID)

	linked, err := s.repo.Link().Exists(ctx, parentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}
	if !linked {
		return nil, fmt.Errorf("%w: student not linked to this account", ErrForbidden)
	}

	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}

	alerts, err := s.repo.StressAlert().ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (s *analyticsService) entriesInWindow(ctx context.Context, userID uint, period string) ([]*models.MoodEntry, error) {
	days := validator.PeriodDays[period]
	since := time.Now().AddDate(0, 0, -days).Format(models.EntryDateLayout)

	entries, err := s.repo.MoodEntry().ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	return entries, nil
}

// ===== ANALYTICS HELPERS =====

func todayDate() string {
	return time.Now().Format(models.EntryDateLayout)
}

func trendPoints(entries []*models.MoodEntry) []models.TrendPoint {
	points := make([]models.TrendPoint, len(entries))
	for i, e := range entries {
		points[i] = e.TrendPoint()
	}
	return points
}

func moodValue(m models.Mood) float64 {
	if v, ok := models.MoodValue[m]; ok {
		return v
	}
	return 3
}

// wellnessScore folds mood, inverted stress and energy into a 0-100 score.
// An empty window scores 0 rather than erroring.
func wellnessScore(entries []*models.MoodEntry) int {
	if len(entries) == 0 {
		return 0
	}

	var moodSum, stressSum, energySum float64
	for _, e := range entries {
		moodSum += moodValue(e.Mood)
		stressSum += float64(e.Stress)
		energySum += float64(e.Energy)
	}

	n := float64(len(entries))
	avgMood := moodSum / n
	avgStress := stressSum / n
	avgEnergy := energySum / n

	return int(math.Round((avgMood + (6 - avgStress) + avgEnergy) / 15 * 100))
}

// currentStreak counts how many consecutive calendar days ending today have a
// check-in. dates must be distinct and newest-first; any gap, including no
// entry today, ends the streak.
func currentStreak(dates []string, today string) int {
	day, err := time.Parse(models.EntryDateLayout, today)
	if err != nil {
		return 0
	}

	streak := 0
	for i, d := range dates {
		expected := day.AddDate(0, 0, -i).Format(models.EntryDateLayout)
		if d != expected {
			break
		}
		streak++
	}
	return streak
}

// consecutiveHighStress counts the run of entries at or above the stress
// threshold, starting from the newest entry and stopping at the first calm
// one. entries must be newest-first.
func consecutiveHighStress(entries []*models.MoodEntry) int {
	run := 0
	for _, e := range entries {
		if e.Stress < highStressThreshold {
			break
		}
		run++
	}
	return run
}

// summarize produces the journal-free aggregate a parent sees. The modal mood
// breaks ties in favor of the mood that reached the winning count first in
// date-ascending order.
func summarize(entries []*models.MoodEntry) ParentSummary {
	if len(entries) == 0 {
		return ParentSummary{Mood: "N/A"}
	}

	counts := make(map[models.Mood]int)
	var modal models.Mood
	best := 0
	var stressSum, energySum float64
	for _, e := range entries {
		counts[e.Mood]++
		if counts[e.Mood] > best {
			best = counts[e.Mood]
			modal = e.Mood
		}
		stressSum += float64(e.Stress)
		energySum += float64(e.Energy)
	}

	n := float64(len(entries))
	return ParentSummary{
		Mood:      string(modal),
		AvgStress: round1(stressSum / n),
		AvgEnergy: round1(energySum / n),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
