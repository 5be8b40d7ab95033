package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
)

// AlertRecorder consumes wellness events and persists high-stress alerts as
// audit rows. Keeping the write on the subscriber side keeps dashboard reads
// free of side effects.
type AlertRecorder struct {
	alerts repositories.StressAlertRepository
	logger *slog.Logger
}

func NewAlertRecorder(alerts repositories.StressAlertRepository, logger *slog.Logger) *AlertRecorder {
	return &AlertRecorder{
		alerts: alerts,
		logger: logger,
	}
}

// Run subscribes to the wellness topic and processes events until the context
// is cancelled. Call it from its own goroutine.
func (r *AlertRecorder) Run(ctx context.Context, subscriber message.Subscriber) error {
	messages, err := subscriber.Subscribe(ctx, TopicWellnessEvents)
	if err != nil {
		return err
	}

	for msg := range messages {
		r.handle(ctx, msg)
		msg.Ack()
	}
	return nil
}

func (r *AlertRecorder) handle(ctx context.Context, msg *message.Message) {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		r.logger.Error("Failed to decode event", "error", err, "message_id", msg.UUID)
		return
	}

	if event.Type != EventTypeHighStress {
		return
	}

	// Data round-trips through interface{} during envelope decode.
	raw, err := json.Marshal(event.Data)
	if err != nil {
		r.logger.Error("Failed to re-encode event data", "error", err, "event_id", event.ID)
		return
	}

	var data HighStressEvent
	if err := json.Unmarshal(raw, &data); err != nil {
		r.logger.Error("Failed to decode high-stress event", "error", err, "event_id", event.ID)
		return
	}

	alert := &models.StressAlert{
		StudentID:       data.StudentID,
		ConsecutiveDays: data.ConsecutiveDays,
		Payload:         raw,
	}
	if err := r.alerts.Create(ctx, alert); err != nil {
		r.logger.Error("Failed to persist stress alert", "error", err, "student_id", data.StudentID)
		return
	}

	r.logger.Info("Recorded stress alert",
		"student_id", data.StudentID,
		"consecutive_days", data.ConsecutiveDays)
}
