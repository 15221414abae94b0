package scheduling

import (
	"fmt"
	"time"

	"bcal/models"
)

// WeekdayIndex converts a time.Time weekday to the 0=Monday..6=Sunday
// convention used by availability rows.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseClock parses a wall-clock "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid clock value %q: out of range", s)
	}
	return hh*60 + mm, nil
}

// ClockOn anchors a wall-clock "HH:MM" string onto the given calendar day,
// in that day's location.
func ClockOn(day time.Time, clock string) (time.Time, error) {
	mins, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, day.Location()), nil
}

// GenerateSlots expands one availability window into fixed-duration slots on
// the given day and marks each against the existing bookings. Slots are walked
// from the window start; a final partial interval that would cross the window
// end is never emitted. A slot is available when it overlaps no pending or
// confirmed booking on the open interval [start, end).
func GenerateSlots(window models.WeeklyAvailability, day time.Time, existing []models.Booking) ([]models.Slot, error) {
	start, err := ClockOn(day, window.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ClockOn(day, window.EndTime)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("window start %s is not before end %s", window.StartTime, window.EndTime)
	}

	duration := time.Duration(window.SlotDuration()) * time.Minute
	var slots []models.Slot
	for current := start; !current.Add(duration).After(end); current = current.Add(duration) {
		slotEnd := current.Add(duration)
		slots = append(slots, models.Slot{
			Start:     current,
			End:       slotEnd,
			Available: !anyOverlap(existing, current, slotEnd),
		})
	}
	return slots, nil
}

// anyOverlap reports whether any blocking booking overlaps [start, end).
func anyOverlap(bookings []models.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Blocks() && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// WindowHours returns the length of an availability window in fractional
// hours. Malformed windows count as zero.
func WindowHours(window models.WeeklyAvailability) float64 {
	start, err := ParseClock(window.StartTime)
	if err != nil {
		return 0
	}
	end, err := ParseClock(window.EndTime)
	if err != nil || end <= start {
		return 0
	}
	return float64(end-start) / 60
}
