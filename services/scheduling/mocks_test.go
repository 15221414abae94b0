package scheduling

import (
	"time"

	"bcal/models"

	"github.com/stretchr/testify/mock"
)

type mockMembers struct {
	mock.Mock
}

func (m *mockMembers) GetActiveMemberIDs(teamID string) ([]string, error) {
	args := m.Called(teamID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockWindows struct {
	mock.Mock
}

func (m *mockWindows) GetActiveByUsersAndDay(userIDs []string, dayOfWeek int) ([]models.WeeklyAvailability, error) {
	args := m.Called(userIDs, dayOfWeek)
	ws, _ := args.Get(0).([]models.WeeklyAvailability)
	return ws, args.Error(1)
}

type mockLoad struct {
	mock.Mock
}

func (m *mockLoad) OverlappingCount(hostID string, start, end time.Time) (int64, error) {
	args := m.Called(hostID, start, end)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockLoad) CountStartingBetween(hostID string, start, end time.Time) (int64, error) {
	args := m.Called(hostID, start, end)
	return int64(args.Int(0)), args.Error(1)
}

type mockAgents struct {
	mock.Mock
}

func (m *mockAgents) GetManyByIDs(ids []string) ([]models.User, error) {
	args := m.Called(ids)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

type mockOverlaps struct {
	mock.Mock
}

func (m *mockOverlaps) ListOverlappingForHosts(hostIDs []string, start, end time.Time) ([]models.Booking, error) {
	args := m.Called(hostIDs, start, end)
	bs, _ := args.Get(0).([]models.Booking)
	return bs, args.Error(1)
}
