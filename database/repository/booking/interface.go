package bookingRepo

import (
	"context"
	"errors"
	"time"

	"bcal/models"
)

// ErrSlotTaken is returned by CreateIfFree when a blocking booking already
// occupies any part of the requested interval. Callers may retry with a
// different host or slot.
var ErrSlotTaken = errors.New("slot already booked")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// CreateIfFree inserts the booking only if no pending or confirmed booking
	// for the same host overlaps its interval. The check and insert run in one
	// transaction; ErrSlotTaken is returned on conflict.
	CreateIfFree(ctx context.Context, b *models.Booking) error
	// OverlappingCount counts the host's blocking bookings that overlap
	// the open interval [start, end).
	OverlappingCount(hostID string, start, end time.Time) (int64, error)
	// ListOverlapping returns the host's blocking bookings overlapping
	// [start, end), sorted by start time.
	ListOverlapping(hostID string, start, end time.Time) ([]models.Booking, error)
	// ListOverlappingForHosts returns blocking bookings for any of the hosts
	// overlapping [start, end), in a single query.
	ListOverlappingForHosts(hostIDs []string, start, end time.Time) ([]models.Booking, error)
	// CountStartingBetween counts the host's blocking bookings whose start time
	// falls in [start, end). Used as the assignment load metric.
	CountStartingBetween(hostID string, start, end time.Time) (int64, error)
	// ListForHost returns the host's bookings, newest first.
	ListForHost(hostID string, limit int64) ([]models.Booking, error)
	// ListForGuest returns the guest's bookings, newest first.
	ListForGuest(guestID string, limit int64) ([]models.Booking, error)
	// ListStartingBetween returns all blocking bookings starting in
	// [start, end), across all hosts. Used to reschedule reminders at startup.
	ListStartingBetween(start, end time.Time) ([]models.Booking, error)
	// UpdateStatus transitions a booking to the given status.
	UpdateStatus(id string, status models.BookingStatus) error
	// UpdateDetails replaces the booking's title and description.
	UpdateDetails(id, title, description string) error
	// CountByOrgSince counts bookings created in an organization since the
	// given time. Used for usage metering.
	CountByOrgSince(orgID string, since time.Time) (int64, error)
}
