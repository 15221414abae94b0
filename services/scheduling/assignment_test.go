package scheduling

import (
	"testing"
	"time"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPolicy() ScorePolicy {
	return ScorePolicy{
		AvailabilityHourBonus:  0.1,
		MeetingTypeBonus:       0.5,
		PreferredLoadThreshold: 5,
	}
}

func fullDayWindow(userID string) models.WeeklyAvailability {
	return models.WeeklyAvailability{
		ID:        "av-" + userID,
		UserID:    userID,
		DayOfWeek: 0,
		StartTime: "09:00",
		EndTime:   "17:00",
		IsActive:  true,
	}
}

func agent(id, name string) models.User {
	return models.User{ID: id, FullName: name, Email: id + "@acme.test", IsActive: true}
}

// slotRequest builds a Monday 10:00-10:30 request.
func slotRequest(teamID string) AssignRequest {
	return AssignRequest{
		TeamID: teamID,
		Start:  time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
	}
}

func newEngine(members *mockMembers, windows *mockWindows, load *mockLoad, agents *mockAgents) *Engine {
	return &Engine{
		Members: members,
		Windows: windows,
		Load:    load,
		Agents:  agents,
		Policy:  testPolicy(),
	}
}

func TestAssignAgentPicksLowerLoad(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{fullDayWindow("a"), fullDayWindow("b")}, nil)
	agents.On("GetManyByIDs", []string{"a", "b"}).
		Return([]models.User{agent("a", "Agent A"), agent("b", "Agent B")}, nil)
	load.On("OverlappingCount", "a", mock.Anything, mock.Anything).Return(0, nil)
	load.On("OverlappingCount", "b", mock.Anything, mock.Anything).Return(0, nil)
	load.On("CountStartingBetween", "a", mock.Anything, mock.Anything).Return(3, nil)
	load.On("CountStartingBetween", "b", mock.Anything, mock.Anything).Return(1, nil)

	got, err := newEngine(members, windows, load, agents).AssignAgent(slotRequest("team-1"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestAssignAgentNeverReturnsConflicted(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{fullDayWindow("a"), fullDayWindow("b")}, nil)
	agents.On("GetManyByIDs", []string{"a", "b"}).
		Return([]models.User{agent("a", "Agent A"), agent("b", "Agent B")}, nil)
	// Agent a is idle but conflicted; b must win despite higher load.
	load.On("OverlappingCount", "a", mock.Anything, mock.Anything).Return(1, nil)
	load.On("OverlappingCount", "b", mock.Anything, mock.Anything).Return(0, nil)
	load.On("CountStartingBetween", "b", mock.Anything, mock.Anything).Return(4, nil)

	got, err := newEngine(members, windows, load, agents).AssignAgent(slotRequest("team-1"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestAssignAgentExcludesPartialWindowCoverage(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	// Agent a's window ends at 10:15, mid-slot; only b covers the request.
	short := fullDayWindow("a")
	short.EndTime = "10:15"
	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{short, fullDayWindow("b")}, nil)
	agents.On("GetManyByIDs", []string{"b"}).
		Return([]models.User{agent("b", "Agent B")}, nil)
	load.On("OverlappingCount", "b", mock.Anything, mock.Anything).Return(0, nil)
	load.On("CountStartingBetween", "b", mock.Anything, mock.Anything).Return(0, nil)

	got, err := newEngine(members, windows, load, agents).AssignAgent(slotRequest("team-1"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestAssignAgentPreferredOverride(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{fullDayWindow("a"), fullDayWindow("b")}, nil)
	agents.On("GetManyByIDs", []string{"a", "b"}).
		Return([]models.User{agent("a", "Agent A"), agent("b", "Agent B")}, nil)
	load.On("OverlappingCount", "a", mock.Anything, mock.Anything).Return(0, nil)
	load.On("OverlappingCount", "b", mock.Anything, mock.Anything).Return(0, nil)
	// Preferred agent a carries more load but stays under the threshold.
	load.On("CountStartingBetween", "a", mock.Anything, mock.Anything).Return(4, nil)
	load.On("CountStartingBetween", "b", mock.Anything, mock.Anything).Return(0, nil)

	req := slotRequest("team-1")
	req.PreferredAgentID = "a"
	got, err := newEngine(members, windows, load, agents).AssignAgent(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

func TestAssignAgentPreferredIgnoredWhenOverloaded(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{fullDayWindow("a"), fullDayWindow("b")}, nil)
	agents.On("GetManyByIDs", []string{"a", "b"}).
		Return([]models.User{agent("a", "Agent A"), agent("b", "Agent B")}, nil)
	load.On("OverlappingCount", "a", mock.Anything, mock.Anything).Return(0, nil)
	load.On("OverlappingCount", "b", mock.Anything, mock.Anything).Return(0, nil)
	load.On("CountStartingBetween", "a", mock.Anything, mock.Anything).Return(5, nil)
	load.On("CountStartingBetween", "b", mock.Anything, mock.Anything).Return(2, nil)

	req := slotRequest("team-1")
	req.PreferredAgentID = "a"
	got, err := newEngine(members, windows, load, agents).AssignAgent(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestAssignAgentMeetingTypeFilter(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	demo := fullDayWindow("a")
	demo.MeetingType = "demo"
	general := fullDayWindow("b")
	general.MeetingType = models.DefaultMeetingType

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a", "b"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a", "b"}, 0).
		Return([]models.WeeklyAvailability{demo, general}, nil)
	agents.On("GetManyByIDs", []string{"a"}).
		Return([]models.User{agent("a", "Agent A")}, nil)
	load.On("OverlappingCount", "a", mock.Anything, mock.Anything).Return(0, nil)
	load.On("CountStartingBetween", "a", mock.Anything, mock.Anything).Return(0, nil)

	req := slotRequest("team-1")
	req.MeetingType = "demo"
	got, err := newEngine(members, windows, load, agents).AssignAgent(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

func TestAssignAgentFullyBooked(t *testing.T) {
	members := new(mockMembers)
	windows := new(mockWindows)
	load := new(mockLoad)
	agents := new(mockAgents)

	members.On("GetActiveMemberIDs", "team-1").Return([]string{"a"}, nil)
	windows.On("GetActiveByUsersAndDay", []string{"a"}, 0).
		Return([]models.WeeklyAvailability{fullDayWindow("a")}, nil)
	agents.On("GetManyByIDs", []string{"a"}).
		Return([]models.User{agent("a", "Agent A")}, nil)
	load.On("OverlappingCount", "a", mock.Anything, mock.Anything).Return(2, nil)

	got, err := newEngine(members, windows, load, agents).AssignAgent(slotRequest("team-1"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssignAgentEmptyTeam(t *testing.T) {
	members := new(mockMembers)
	members.On("GetActiveMemberIDs", "team-1").Return([]string{}, nil)

	e := &Engine{Members: members, Policy: testPolicy()}
	got, err := e.AssignAgent(slotRequest("team-1"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScoreRewardsLongWindowsAndSpecialTypes(t *testing.T) {
	e := &Engine{Policy: testPolicy()}

	long := fullDayWindow("a") // 8 hours
	short := fullDayWindow("b")
	short.EndTime = "11:00" // 2 hours

	// Same load, longer window scores lower (better).
	assert.Less(t, e.score(2, long), e.score(2, short))

	typed := fullDayWindow("c")
	typed.MeetingType = "demo"
	assert.InDelta(t, e.score(2, long)-0.5, e.score(2, typed), 1e-9)
}
