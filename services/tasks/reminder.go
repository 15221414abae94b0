package tasks

import (
	"encoding/json"
	"errors"
	"time"

	"bcal/config"
	"bcal/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how long before the booking start the reminder fires.
const reminderLead = 15 * time.Minute

// NewReminderTask builds the asynq task for one reminder payload.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	// One task per booking: re-enqueuing the same reminder is a no-op.
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
	}

	return task, opts, nil
}

// Scheduler enqueues booking reminders on the reminder queue.
type Scheduler struct {
	Client *asynq.Client
}

// NewScheduler connects an asynq client to the reminder queue database.
func NewScheduler() *Scheduler {
	return &Scheduler{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleBookingReminder enqueues a reminder 15 minutes before the booking
// starts. Bookings starting sooner than that get no reminder.
func (s *Scheduler) ScheduleBookingReminder(b models.Booking) error {
	fireAt := b.StartTime.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}
	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID: b.ID,
		HostID:    b.HostID,
		Title:     b.Title,
		FireAt:    fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}
