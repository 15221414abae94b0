package models

// ReminderPayload is the asynq task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	HostID    string `json:"host_id"`
	Title     string `json:"title"`
	FireAt    string `json:"fire_at"`
}
