package scheduling

import (
	"testing"
	"time"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func window(start, end string, duration int) models.WeeklyAvailability {
	return models.WeeklyAvailability{
		ID:                  "av-1",
		UserID:              "user-1",
		StartTime:           start,
		EndTime:             end,
		IsActive:            true,
		SlotDurationMinutes: duration,
	}
}

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, mins)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("bogus")
	assert.Error(t, err)
}

func TestWeekdayIndex(t *testing.T) {
	// 2026-08-24 is a Monday.
	assert.Equal(t, 0, WeekdayIndex(day(t, "2026-08-24")))
	assert.Equal(t, 5, WeekdayIndex(day(t, "2026-08-29")))
	assert.Equal(t, 6, WeekdayIndex(day(t, "2026-08-30")))
}

func TestGenerateSlotsCount(t *testing.T) {
	// Three hours at 30 minutes yields exactly six slots.
	slots, err := GenerateSlots(window("09:00", "12:00", 30), day(t, "2026-08-24"), nil)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.Equal(t, "09:00", slots[0].Start.Format("15:04"))
	assert.Equal(t, "09:30", slots[0].End.Format("15:04"))
	assert.Equal(t, "11:30", slots[5].Start.Format("15:04"))
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	// 09:00 to 10:45 holds three full 30-minute slots; the trailing quarter
	// hour is silently dropped.
	slots, err := GenerateSlots(window("09:00", "10:45", 30), day(t, "2026-08-24"), nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "10:30", slots[2].End.Format("15:04"))
}

func TestGenerateSlotsMarksConflicts(t *testing.T) {
	d := day(t, "2026-08-24")
	booked := []models.Booking{
		{
			HostID:    "user-1",
			StartTime: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
			Status:    models.BookingConfirmed,
		},
	}

	slots, err := GenerateSlots(window("09:00", "12:00", 30), d, booked)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for _, s := range slots {
		if s.Start.Format("15:04") == "10:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, "slot at %s", s.Start.Format("15:04"))
		}
	}
}

func TestGenerateSlotsOpenIntervalBoundaries(t *testing.T) {
	// A booking ending exactly at a slot's start does not conflict with it.
	d := day(t, "2026-08-24")
	booked := []models.Booking{
		{
			HostID:    "user-1",
			StartTime: time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
			Status:    models.BookingPending,
		},
	}

	slots, err := GenerateSlots(window("09:00", "11:00", 30), d, booked)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.True(t, slots[0].Available)  // 09:00-09:30
	assert.False(t, slots[1].Available) // 09:30-10:00
	assert.True(t, slots[2].Available)  // 10:00-10:30
}

func TestGenerateSlotsIgnoresNonBlockingBookings(t *testing.T) {
	d := day(t, "2026-08-24")
	booked := []models.Booking{
		{
			HostID:    "user-1",
			StartTime: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
			Status:    models.BookingCancelled,
		},
	}

	slots, err := GenerateSlots(window("09:00", "12:00", 30), d, booked)
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlotsRejectsInvertedWindow(t *testing.T) {
	_, err := GenerateSlots(window("12:00", "09:00", 30), day(t, "2026-08-24"), nil)
	assert.Error(t, err)

	_, err = GenerateSlots(window("09:00", "09:00", 30), day(t, "2026-08-24"), nil)
	assert.Error(t, err)
}

func TestGenerateSlotsDefaultDuration(t *testing.T) {
	// Zero duration falls back to the 30-minute default.
	slots, err := GenerateSlots(window("09:00", "10:00", 0), day(t, "2026-08-24"), nil)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestWindowHours(t *testing.T) {
	assert.InDelta(t, 3.0, WindowHours(window("09:00", "12:00", 30)), 1e-9)
	assert.InDelta(t, 7.5, WindowHours(window("09:00", "16:30", 30)), 1e-9)
	assert.Zero(t, WindowHours(window("bogus", "12:00", 30)))
}
