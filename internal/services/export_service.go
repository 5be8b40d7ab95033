package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// ===== RESPONSE DTOs =====

type ExportResult struct {
	Filename string
	Content  *bytes.Buffer
}

// ===== SERVICE INTERFACE =====

type ExportService interface {
	// ExportHistory builds an .xlsx workbook of the user's check-ins in the
	// report window plus a summary row. Owner-only; the journal column is
	// included because the student exports their own data.
	ExportHistory(ctx context.Context, userID uint, period string) (*ExportResult, error)
}

// ===== SERVICE IMPLEMENTATION =====

type exportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, v *validator.BusinessValidator) ExportService {
	return &exportService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

const historySheet = "History"

func (s *exportService) ExportHistory(ctx context.Context, userID uint, period string) (*ExportResult, error) {
	s.logger.Info("Exporting history", "user_id", userID, "period", period)

	period, errs := s.validator.ValidatePeriod(period)
	if errs.HasErrors() {
		return nil, errs
	}

	days := validator.PeriodDays[period]
	since := time.Now().AddDate(0, 0, -days).Format(models.EntryDateLayout)

	entries, err := s.repo.MoodEntry().ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	dates, err := s.repo.MoodEntry().DistinctDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in dates: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	headers := []string{"Date", "Mood", "Stress", "Energy", "Journal"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(historySheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range entries {
		journal := ""
		if entry.Journal != nil {
			journal = *entry.Journal
		}
		values := []interface{}{entry.Date, string(entry.Mood), entry.Stress, entry.Energy, journal}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(historySheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	// Summary block two rows under the table.
	summaryRow := len(entries) + 3
	summary := [][]interface{}{
		{"Wellness score", wellnessScore(entries)},
		{"Current streak", currentStreak(dates, todayDate())},
	}
	for i, pair := range summary {
		for col, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, summaryRow+i)
			if err := f.SetCellValue(historySheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("wellness-%s-%s.xlsx", period, todayDate())
	return &ExportResult{Filename: filename, Content: buf}, nil
}
