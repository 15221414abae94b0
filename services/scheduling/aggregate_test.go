package scheduling

import (
	"testing"
	"time"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamAvailabilityEmitsOnlyAvailableSlots(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	agents := new(mockAgents)
	overlaps := new(mockOverlaps)

	w := fullDayWindow("a")
	w.StartTime = "09:00"
	w.EndTime = "11:00"

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a"}, 0).
		Return([]models.WeeklyAvailability{w}, nil)
	agents.On("GetManyByIDs", []string{"a"}).
		Return([]models.User{agent("a", "Agent A")}, nil)
	overlaps.On("ListOverlappingForHosts", []string{"a"}, mock.Anything, mock.Anything).
		Return([]models.Booking{
			{
				HostID:    "a",
				StartTime: time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
				Status:    models.BookingConfirmed,
			},
		}, nil)

	agg := &Aggregator{Members: members, Windows: windows, Agents: agents, Bookings: overlaps}
	slots, err := agg.TeamAvailability("team-1", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Four 30-minute slots in the window; the booked one is omitted entirely
	// rather than flagged.
	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.NotEqual(t, "09:30", s.Start.Format("15:04"))
		assert.Equal(t, "a", s.AgentID)
		assert.Equal(t, "Agent A", s.AgentName)
		assert.Equal(t, 30, s.SlotDuration)
	}
}

func TestTeamAvailabilityMergesAcrossAgents(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	agents := new(mockAgents)
	overlaps := new(mockOverlaps)

	wa := fullDayWindow("a")
	wa.StartTime = "09:00"
	wa.EndTime = "10:00"
	wb := fullDayWindow("b")
	wb.StartTime = "09:00"
	wb.EndTime = "10:00"

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{wa, wb}, nil)
	agents.On("GetManyByIDs", []string{"a", "b"}).
		Return([]models.User{agent("a", "Agent A"), agent("b", "Agent B")}, nil)
	overlaps.On("ListOverlappingForHosts", []string{"a", "b"}, mock.Anything, mock.Anything).
		Return([]models.Booking{}, nil)

	agg := &Aggregator{Members: members, Windows: windows, Agents: agents, Bookings: overlaps}
	slots, err := agg.TeamAvailability("team-1", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, "a", slots[0].AgentID)
	assert.Equal(t, "a", slots[1].AgentID)
	assert.Equal(t, "b", slots[2].AgentID)
	assert.Equal(t, "b", slots[3].AgentID)
}

func TestTeamAvailabilitySkipsInactiveAgents(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	agents := new(mockAgents)
	overlaps := new(mockOverlaps)

	w := fullDayWindow("a")
	w.StartTime = "09:00"
	w.EndTime = "10:00"

	inactive := agent("a", "Agent A")
	inactive.IsActive = false

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a"}, 0).
		Return([]models.WeeklyAvailability{w}, nil)
	agents.On("GetManyByIDs", []string{"a"}).
		Return([]models.User{inactive}, nil)
	overlaps.On("ListOverlappingForHosts", []string{"a"}, mock.Anything, mock.Anything).
		Return([]models.Booking{}, nil)

	agg := &Aggregator{Members: members, Windows: windows, Agents: agents, Bookings: overlaps}
	slots, err := agg.TeamAvailability("team-1", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestTeamAvailabilityEmptyTeam(t *testing.T) {
	members := new(mockMembers)
	members.On("GetActiveMemberIDs", "team-1").Return([]string{}, nil)

	agg := &Aggregator{Members: members}
	slots, err := agg.TeamAvailability("team-1", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, slots)
}
