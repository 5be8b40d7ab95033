package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/wellness-service/internal/models"
)

func entry(mood models.Mood, stress, energy int, date string) *models.MoodEntry {
	return &models.MoodEntry{Mood: mood, Stress: stress, Energy: energy, Date: date}
}

func TestWellnessScore(t *testing.T) {
	tests := []struct {
		name    string
		entries []*models.MoodEntry
		want    int
	}{
		{name: "empty window scores zero", entries: nil, want: 0},
		{
			name:    "best possible day",
			entries: []*models.MoodEntry{entry(models.MoodHappy, 1, 5, "2026-08-30")},
			want:    100,
		},
		{
			name:    "all neutral lands at 60",
			entries: []*models.MoodEntry{entry(models.MoodNeutral, 3, 3, "2026-08-30")},
			want:    60,
		},
		{
			name:    "worst possible day",
			entries: []*models.MoodEntry{entry(models.MoodAngry, 5, 1, "2026-08-30")},
			want:    20,
		},
		{
			name: "averages across the window",
			entries: []*models.MoodEntry{
				entry(models.MoodHappy, 1, 5, "2026-08-29"),
				entry(models.MoodAngry, 5, 1, "2026-08-30"),
			},
			want: 60,
		},
		{
			name:    "unknown mood counts as neutral",
			entries: []*models.MoodEntry{entry(models.Mood("confused"), 3, 3, "2026-08-30")},
			want:    60,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wellnessScore(tt.entries); got != tt.want {
				t.Fatalf("wellnessScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{name: "no entries", dates: nil, want: 0},
		{name: "no entry today breaks immediately", dates: []string{dateOffset(1), dateOffset(2)}, want: 0},
		{name: "single day", dates: []string{dateOffset(0)}, want: 1},
		{name: "three unbroken days", dates: []string{dateOffset(0), dateOffset(1), dateOffset(2)}, want: 3},
		{name: "gap ends the streak", dates: []string{dateOffset(0), dateOffset(1), dateOffset(3)}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := currentStreak(tt.dates, dateOffset(0)); got != tt.want {
				t.Fatalf("currentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConsecutiveHighStress(t *testing.T) {
	tests := []struct {
		name   string
		stress []int
		want   int
	}{
		{name: "empty", stress: nil, want: 0},
		{name: "calm newest entry stops at zero", stress: []int{2, 5, 5, 5}, want: 0},
		{name: "run stops at first calm day", stress: []int{5, 4, 4, 2, 5}, want: 3},
		{name: "run keeps counting past the alert threshold", stress: []int{5, 5, 4, 4, 5}, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]*models.MoodEntry, len(tt.stress))
			for i, s := range tt.stress {
				entries[i] = entry(models.MoodNeutral, s, 3, dateOffset(i))
			}
			if got := consecutiveHighStress(entries); got != tt.want {
				t.Fatalf("consecutiveHighStress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty window", func(t *testing.T) {
		got := summarize(nil)
		if got.Mood != "N/A" || got.AvgStress != 0 || got.AvgEnergy != 0 {
			t.Fatalf("unexpected summary: %+v", got)
		}
	})

	t.Run("modal mood with averages", func(t *testing.T) {
		entries := []*models.MoodEntry{
			entry(models.MoodHappy, 2, 4, dateOffset(3)),
			entry(models.MoodSad, 4, 2, dateOffset(2)),
			entry(models.MoodSad, 5, 1, dateOffset(1)),
			entry(models.MoodHappy, 1, 5, dateOffset(0)),
		}
		got := summarize(entries)
		if got.Mood != "sad" {
			t.Fatalf("expected sad to win the tie (reached max count first), got %q", got.Mood)
		}
		if got.AvgStress != 3.0 {
			t.Fatalf("expected avgStress 3.0, got %v", got.AvgStress)
		}
		if got.AvgEnergy != 3.0 {
			t.Fatalf("expected avgEnergy 3.0, got %v", got.AvgEnergy)
		}
	})

	t.Run("averages round to one decimal", func(t *testing.T) {
		entries := []*models.MoodEntry{
			entry(models.MoodGood, 2, 5, dateOffset(2)),
			entry(models.MoodGood, 3, 4, dateOffset(1)),
			entry(models.MoodGood, 3, 4, dateOffset(0)),
		}
		got := summarize(entries)
		if got.AvgStress != 2.7 {
			t.Fatalf("expected avgStress 2.7, got %v", got.AvgStress)
		}
		if got.AvgEnergy != 4.3 {
			t.Fatalf("expected avgEnergy 4.3, got %v", got.AvgEnergy)
		}
	})
}

func TestGetStudentDashboard(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAnalyticsService(repo, testCache(), testLogger(), testValidator())

	student := seedUser(t, repo, "Asha", "asha@example.com", models.RoleStudent)
	seedEntry(t, repo, student.ID, dateOffset(1), models.MoodNeutral, 3, 3)
	seedEntry(t, repo, student.ID, dateOffset(0), models.MoodNeutral, 3, 3)

	resp, err := svc.GetStudentDashboard(context.Background(), student.ID, "weekly")
	if err != nil {
		t.Fatalf("dashboard error: %v", err)
	}

	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries in window, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Date != dateOffset(1) {
		t.Fatalf("expected ascending entries, got first date %s", resp.Entries[0].Date)
	}
	if resp.WellnessScore != 60 {
		t.Fatalf("expected score 60, got %d", resp.WellnessScore)
	}
	if resp.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", resp.Streak)
	}
	if resp.TotalEntries != 2 {
		t.Fatalf("expected 2 total entries, got %d", resp.TotalEntries)
	}
}

func TestGetStudentDashboardRejectsUnknownPeriod(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAnalyticsService(repo, testCache(), testLogger(), testValidator())

	if _, err := svc.GetStudentDashboard(context.Background(), 1, "yearly"); err == nil {
		t.Fatal("expected period validation to fail")
	}
}

func TestGetParentDashboard(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAnalyticsService(repo, testCache(), testLogger(), testValidator())
	ctx := context.Background()

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)
	student := seedUser(t, repo, "Asha", "asha@example.com", models.RoleStudent)

	// Unlinked parent is rejected before any student data is touched.
	_, err := svc.GetParentDashboard(ctx, parent.ID, student.ID, "weekly")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unlinked parent, got %v", err)
	}

	err = repo.Link().Create(ctx, &models.LinkedAccount{ParentID: parent.ID, StudentID: student.ID})
	if err != nil {
		t.Fatalf("failed to link: %v", err)
	}

	seedEntry(t, repo, student.ID, dateOffset(2), models.MoodSad, 5, 2)
	seedEntry(t, repo, student.ID, dateOffset(1), models.MoodSad, 4, 2)
	seedEntry(t, repo, student.ID, dateOffset(0), models.MoodTired, 5, 1)

	resp, err := svc.GetParentDashboard(ctx, parent.ID, student.ID, "weekly")
	if err != nil {
		t.Fatalf("dashboard error: %v", err)
	}

	if resp.Student.ID != student.ID || resp.Student.Email != student.Email {
		t.Fatalf("unexpected student card: %+v", resp.Student)
	}
	if resp.Summary.Mood != "sad" {
		t.Fatalf("expected modal mood sad, got %q", resp.Summary.Mood)
	}
	if !resp.HighStressAlert || resp.ConsecutiveHighStressDays != 3 {
		t.Fatalf("expected alert after 3 high-stress days, got alert=%v days=%d",
			resp.HighStressAlert, resp.ConsecutiveHighStressDays)
	}
	for _, e := range resp.Entries {
		if e.Stress == 0 {
			t.Fatalf("expected trend data in entries: %+v", e)
		}
	}
}

func TestGetAlertHistory(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewAnalyticsService(repo, testCache(), testLogger(), testValidator())
	ctx := context.Background()

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)
	student := seedUser(t, repo, "Asha", "asha@example.com", models.RoleStudent)

	_, err := svc.GetAlertHistory(ctx, parent.ID, student.ID, 10)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unlinked parent, got %v", err)
	}

	err = repo.Link().Create(ctx, &models.LinkedAccount{ParentID: parent.ID, StudentID: student.ID})
	if err != nil {
		t.Fatalf("failed to link: %v", err)
	}

	err = repo.StressAlert().Create(ctx, &models.StressAlert{StudentID: student.ID, ConsecutiveDays: 3})
	if err != nil {
		t.Fatalf("failed to seed alert: %v", err)
	}

	alerts, err := svc.GetAlertHistory(ctx, parent.ID, student.ID, 10)
	if err != nil {
		t.Fatalf("alert history error: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ConsecutiveDays != 3 {
		t.Fatalf("unexpected alerts: %+v", alerts)
	}
}
