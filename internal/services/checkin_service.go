package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/wellness-service/internal/cache"
	"github.com/SAP-F-2025/wellness-service/internal/events"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// DefaultHistoryLimit caps how many entries a history listing returns.
const DefaultHistoryLimit = 30

// ===== RESPONSE DTOs =====

type CheckInResponse struct {
	Entry   *models.MoodEntry `json:"entry"`
	Message string            `json:"message"`

	// Created distinguishes a first check-in (201) from a same-day revision
	// (200). Not serialized; the handler folds it into the status code.
	Created bool `json:"-"`
}

// ===== SERVICE INTERFACE =====

type CheckInService interface {
	// Submit records today's check-in, overwriting an earlier one for the same
	// calendar day. A successful write re-evaluates the high-stress condition
	// and publishes an alert event when it holds.
	Submit(ctx context.Context, userID uint, req *validator.CheckInRequest) (*CheckInResponse, error)

	// GetToday returns today's entry, or nil without error when the user has
	// not checked in yet.
	GetToday(ctx context.Context, userID uint) (*models.MoodEntry, error)

	// List returns the user's history newest-first, journal included. The
	// route is owner-only; parents never reach this path.
	List(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error)
}

// ===== SERVICE IMPLEMENTATION =====

type checkInService struct {
	repo         repositories.Repository
	cacheManager *cache.CacheManager
	publisher    events.EventPublisher
	logger       *slog.Logger
	validator    *validator.BusinessValidator
}

func NewCheckInService(repo repositories.Repository, cacheManager *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.BusinessValidator) CheckInService {
	return &checkInService{
		repo:         repo,
		cacheManager: cacheManager,
		publisher:    publisher,
		logger:       logger,
		validator:    v,
	}
}

func (s *checkInService) Submit(ctx context.Context, userID uint, req *validator.CheckInRequest) (*CheckInResponse, error) {
	s.logger.Info("Submitting check-in", "user_id", userID, "mood", req.Mood)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	today := time.Now().Format(models.EntryDateLayout)

	// The pre-read only picks the created vs updated label. Two racing
	// first submits can both see no row and both report 201, but the upsert
	// on the (user_id, date) unique index still yields a single entry.
	_, err := s.repo.MoodEntry().GetByUserAndDate(ctx, userID, today)
	created := false
	if err != nil {
		if !repositories.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check existing entry: %w", err)
		}
		created = true
	}

	entry := &models.MoodEntry{
		UserID: userID,
		Mood:   models.Mood(req.Mood),
		Stress: req.Stress,
		Energy: req.Energy,
		Date:   today,
	}
	if req.Journal != "" {
		journal := req.Journal
		entry.Journal = &journal
	}

	if err := s.repo.MoodEntry().Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	s.evaluateStressAlert(ctx, userID, today)
	cache.InvalidateUserDashboards(ctx, s.cacheManager, userID)

	message := "Check-in recorded"
	if !created {
		message = "Check-in updated for today"
	}

	s.logger.Info("Check-in saved", "user_id", userID, "date", today, "created", created)
	return &CheckInResponse{Entry: entry, Message: message, Created: created}, nil
}

// evaluateStressAlert publishes a high-stress event when today's write puts
// the user at or past the alert run length. Failures are logged, never
// surfaced: the check-in itself already committed.
func (s *checkInService) evaluateStressAlert(ctx context.Context, userID uint, today string) {
	recent, err := s.repo.MoodEntry().ListByUser(ctx, userID, recentEntriesWindow)
	if err != nil {
		s.logger.Error("Failed to load recent entries for alert check", "error", err, "user_id", userID)
		return
	}

	run := consecutiveHighStress(recent)
	if run < highStressRunLength {
		return
	}

	event := &events.Event{
		Type: events.EventTypeHighStress,
		Data: events.HighStressEvent{
			StudentID:       userID,
			ConsecutiveDays: run,
			Date:            today,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish stress alert", "error", err, "user_id", userID)
		return
	}

	s.logger.Warn("High-stress alert raised", "user_id", userID, "consecutive_days", run)
}

func (s *checkInService) GetToday(ctx context.Context, userID uint) (*models.MoodEntry, error) {
	today := time.Now().Format(models.EntryDateLayout)

	entry, err := s.repo.MoodEntry().GetByUserAndDate(ctx, userID, today)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's entry: %w", err)
	}
	return entry, nil
}

func (s *checkInService) List(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}

	entries, err := s.repo.MoodEntry().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
