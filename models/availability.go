package models

import "time"

// DefaultSlotDurationMinutes is used when an availability row carries no
// explicit slot duration.
const DefaultSlotDurationMinutes = 30

// DefaultMeetingType tags availability windows with no specific meeting type.
const DefaultMeetingType = "general"

// WeeklyAvailability is one recurring weekly window during which its owner can
// host bookings. DayOfWeek is 0=Monday through 6=Sunday; StartTime/EndTime are
// wall-clock "HH:MM" strings with minute resolution.
type WeeklyAvailability struct {
	ID        string `bson:"id" json:"id"`
	UserID    string `bson:"user_id" json:"user_id"`
	DayOfWeek int    `bson:"day_of_week" json:"day_of_week"`
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
	IsActive  bool   `bson:"is_active" json:"is_active"`

	// Booking rules.
	BufferBeforeMinutes int `bson:"buffer_before_minutes" json:"buffer_before_minutes"`
	BufferAfterMinutes  int `bson:"buffer_after_minutes" json:"buffer_after_minutes"`
	MinNoticeHours      int `bson:"min_notice_hours" json:"min_notice_hours"`
	MaxBookingDays      int `bson:"max_booking_days" json:"max_booking_days"`
	SlotDurationMinutes int `bson:"slot_duration_minutes" json:"slot_duration_minutes"`

	// Meeting settings.
	MeetingType        string `bson:"meeting_type" json:"meeting_type"`
	MeetingDescription string `bson:"meeting_description,omitempty" json:"meeting_description,omitempty"`
	MeetingLocation    string `bson:"meeting_location,omitempty" json:"meeting_location,omitempty"`
	MeetingURL         string `bson:"meeting_url,omitempty" json:"meeting_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SlotDuration returns the effective slot duration for this window.
func (a WeeklyAvailability) SlotDuration() int {
	if a.SlotDurationMinutes <= 0 {
		return DefaultSlotDurationMinutes
	}
	return a.SlotDurationMinutes
}
