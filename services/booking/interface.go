package booking

import (
	"context"
	"time"

	"bcal/models"
)

// AssignAndBookRequest is a public booking request against a team. The engine
// picks the agent; the guest account is created on the fly if unseen.
type AssignAndBookRequest struct {
	OrganizationID   string
	TeamID           string
	Start            time.Time
	End              time.Time
	Title            string
	Description      string
	MeetingType      string
	GuestName        string
	GuestEmail       string
	PreferredAgentID string
}

// BookingResult pairs a persisted booking with its assigned host and the
// calendar invite payload.
type BookingResult struct {
	Booking models.Booking `json:"booking"`
	Host    models.User    `json:"host"`
	Invite  string         `json:"invite,omitempty"`
}

// BookingService orchestrates booking creation and lifecycle transitions.
type BookingService interface {
	// AssignAndBook assigns the best available agent on the team and books
	// the slot atomically. Returns ErrNoAgentAvailable when the team is
	// fully booked for the interval.
	AssignAndBook(ctx context.Context, req AssignAndBookRequest) (*BookingResult, error)
	// BookWithHost books a slot directly against a known host, guarding
	// against double booking.
	BookWithHost(ctx context.Context, hostID string, req AssignAndBookRequest) (*BookingResult, error)
	// Cancel transitions a booking to cancelled. Only the host, the guest or
	// an admin may cancel; the handler enforces that, the service validates
	// the transition.
	Cancel(bookingID string) error
	// Update replaces the booking's title and description. Host only; the
	// handler enforces ownership.
	Update(bookingID, title, description string) (*models.Booking, error)
	// OverrideStatus forces a booking into the given status. Admin only.
	OverrideStatus(bookingID string, status models.BookingStatus) error
	// Get returns one booking.
	Get(bookingID string) (*models.Booking, error)
	// ListForHost returns the host's bookings, newest first.
	ListForHost(hostID string, limit int64) ([]models.Booking, error)
	// ListForGuest returns the guest's bookings, newest first.
	ListForGuest(guestID string, limit int64) ([]models.Booking, error)
}
