package models

import (
	"time"

	"gorm.io/datatypes"
)

// StressAlert is the persisted audit row for a raised high-stress alert.
// Rows are written by the event subscriber when a check-in pushes a student
// to three or more consecutive high-stress days, so dashboard reads stay
// side-effect free.
type StressAlert struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	StudentID       uint           `json:"student_id" gorm:"not null;index:idx_alert_student"`
	ConsecutiveDays int            `json:"consecutive_days" gorm:"not null"`
	Payload         datatypes.JSON `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

func (StressAlert) TableName() string {
	return "stress_alerts"
}
