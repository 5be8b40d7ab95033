package models

import (
	"time"
)

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodTired   Mood = "tired"
)

// MoodValue maps each mood to its 1-5 contribution in the wellness score.
// Tired scores low on purpose: it usually signals depletion, not contentment.
var MoodValue = map[Mood]float64{
	MoodHappy:   5,
	MoodGood:    4,
	MoodNeutral: 3,
	MoodSad:     2,
	MoodAngry:   1,
	MoodTired:   2,
}

func IsValidMood(m Mood) bool {
	_, ok := MoodValue[m]
	return ok
}

// EntryDateLayout is the day-granularity date format stored in mood_entries.
// ISO dates compare lexically in chronological order, so string comparison
// in SQL does the right thing for windows and sorting.
const EntryDateLayout = "2006-01-02"

// MoodEntry is one day's self-reported check-in. The composite unique index
// on (user_id, date) is what enforces at-most-one-entry-per-day; a racing
// second submit for the same day lands on the update path.
type MoodEntry struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	UserID  uint    `json:"-" gorm:"not null;uniqueIndex:idx_mood_user_date;index:idx_mood_user"`
	Mood    Mood    `json:"mood" gorm:"not null;size:20"`
	Stress  int     `json:"stress" gorm:"not null"` // 1..5
	Energy  int     `json:"energy" gorm:"not null"` // 1..5
	Journal *string `json:"journal,omitempty" gorm:"size:10000"`
	Date    string  `json:"date" gorm:"not null;size:10;uniqueIndex:idx_mood_user_date"`

	CreatedAt time.Time `json:"created_at"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

// TrendPoint is the journal-free projection used by dashboards. Parents only
// ever see this shape.
type TrendPoint struct {
	Mood   Mood   `json:"mood"`
	Stress int    `json:"stress"`
	Energy int    `json:"energy"`
	Date   string `json:"date"`
}

func (e *MoodEntry) TrendPoint() TrendPoint {
	return TrendPoint{
		Mood:   e.Mood,
		Stress: e.Stress,
		Energy: e.Energy,
		Date:   e.Date,
	}
}
