package events

import (
	"time"
)

// Topic all wellness events are published on.
const TopicWellnessEvents = "wellness.events"

// Event source identifier.
const SourceWellnessService = "wellness-service"

// Event types.
const (
	EventTypeHighStress = "wellness.high_stress"
)

// Event is the envelope published on the bus.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Source     string      `json:"source"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// HighStressEvent is raised when a check-in pushes a student to three or more
// consecutive high-stress days.
type HighStressEvent struct {
	StudentID       uint   `json:"student_id"`
	ConsecutiveDays int    `json:"consecutive_days"`
	Date            string `json:"date"`
}
