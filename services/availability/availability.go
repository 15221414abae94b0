package availability

import (
	"errors"
	"fmt"
	"time"

	availabilityRepo "bcal/database/repository/availability"
	"bcal/models"
	"bcal/services/scheduling"

	"github.com/google/uuid"
)

// ErrActiveWindowExists is returned when a user already has an active window
// on the requested weekday. This uniqueness is enforced only on the per-user
// availability API; the team-assignment path tolerates multiple rows per day.
var ErrActiveWindowExists = errors.New("an active availability window already exists for this day")

// BookingReader is the booking lookup the single-user listing needs.
type BookingReader interface {
	ListOverlapping(hostID string, start, end time.Time) ([]models.Booking, error)
}

// AvailabilityService manages a user's weekly availability windows.
type AvailabilityService interface {
	ListForUser(userID string) ([]models.WeeklyAvailability, error)
	// UserSlots expands the user's active windows for one day into slots,
	// each carrying an availability flag. Booked slots are included, unlike
	// the team listing which omits them.
	UserSlots(userID string, day time.Time) ([]models.Slot, error)
	Create(av *models.WeeklyAvailability) error
	Update(av *models.WeeklyAvailability) error
	Delete(userID, id string) error
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo     availabilityRepo.AvailabilityRepository
	Bookings BookingReader
}

// ListForUser returns all of the user's windows, active or not.
func (s *DefaultAvailabilityService) ListForUser(userID string) ([]models.WeeklyAvailability, error) {
	return s.Repo.GetByUser(userID)
}

// UserSlots expands the user's active windows on the given day.
func (s *DefaultAvailabilityService) UserSlots(userID string, day time.Time) ([]models.Slot, error) {
	windows, err := s.Repo.GetActiveByUserAndDay(userID, scheduling.WeekdayIndex(day))
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	bookings, err := s.Bookings.ListOverlapping(userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	slots := []models.Slot{}
	for _, w := range windows {
		generated, err := scheduling.GenerateSlots(w, day, bookings)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.ID, err)
		}
		slots = append(slots, generated...)
	}
	return slots, nil
}

// Create validates and inserts a new window. At most one active window per
// weekday is allowed per user.
func (s *DefaultAvailabilityService) Create(av *models.WeeklyAvailability) error {
	if err := validateWindow(av); err != nil {
		return err
	}
	if av.IsActive {
		existing, err := s.Repo.GetActiveByUserAndDay(av.UserID, av.DayOfWeek)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrActiveWindowExists
		}
	}
	if av.ID == "" {
		av.ID = uuid.New().String()
	}
	if av.MeetingType == "" {
		av.MeetingType = models.DefaultMeetingType
	}
	return s.Repo.Create(av)
}

// Update validates and persists changes to an existing window. Ownership is
// checked so a user cannot modify another user's window.
func (s *DefaultAvailabilityService) Update(av *models.WeeklyAvailability) error {
	if err := validateWindow(av); err != nil {
		return err
	}
	current, err := s.Repo.GetByID(av.ID)
	if err != nil {
		return err
	}
	if current.UserID != av.UserID {
		return fmt.Errorf("availability %s does not belong to user %s", av.ID, av.UserID)
	}
	if av.IsActive {
		existing, err := s.Repo.GetActiveByUserAndDay(av.UserID, av.DayOfWeek)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.ID != av.ID {
				return ErrActiveWindowExists
			}
		}
	}
	return s.Repo.Update(av)
}

// Delete removes a window after an ownership check.
func (s *DefaultAvailabilityService) Delete(userID, id string) error {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return fmt.Errorf("availability %s does not belong to user %s", id, userID)
	}
	return s.Repo.Delete(id)
}

func validateWindow(av *models.WeeklyAvailability) error {
	if av.DayOfWeek < 0 || av.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 (Monday) and 6 (Sunday), got %d", av.DayOfWeek)
	}
	start, err := scheduling.ParseClock(av.StartTime)
	if err != nil {
		return err
	}
	end, err := scheduling.ParseClock(av.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("start_time %s must be before end_time %s", av.StartTime, av.EndTime)
	}
	if av.SlotDurationMinutes < 0 {
		return fmt.Errorf("slot_duration_minutes must not be negative")
	}
	return nil
}
