package models

import "time"

// BookingStatus is the lifecycle state of a booking. Pending and confirmed
// bookings block the host's calendar; cancelled and completed are terminal.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BlockingStatuses are the statuses counted by every conflict and load query.
var BlockingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// Booking represents one scheduled meeting between a host and a guest.
// StartTime/EndTime are stored in UTC; the open interval [StartTime, EndTime)
// is what all overlap tests operate on.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	OrganizationID string        `bson:"organization_id" json:"organization_id"`
	HostID         string        `bson:"host_id" json:"host_id"`
	GuestID        string        `bson:"guest_id" json:"guest_id"`
	Title          string        `bson:"title" json:"title"`
	Description    string        `bson:"description,omitempty" json:"description,omitempty"`
	StartTime      time.Time     `bson:"start_time" json:"start_time"`
	EndTime        time.Time     `bson:"end_time" json:"end_time"`
	Status         BookingStatus `bson:"status" json:"status"`
	GuestEmail     string        `bson:"guest_email" json:"guest_email"`
	GuestName      string        `bson:"guest_name" json:"guest_name"`
	MeetingType    string        `bson:"meeting_type,omitempty" json:"meeting_type,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// Overlaps reports whether the booking's open interval overlaps [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// Blocks reports whether the booking occupies the host's calendar.
func (b Booking) Blocks() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
