package usage

import (
	"testing"
	"time"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrgs struct {
	mock.Mock
}

func (m *mockOrgs) GetByID(id string) (*models.Organization, error) {
	args := m.Called(id)
	org, _ := args.Get(0).(*models.Organization)
	return org, args.Error(1)
}

type mockCounters struct {
	mock.Mock
}

func (m *mockCounters) CountUsersByOrg(orgID string) (int64, error) {
	args := m.Called(orgID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockCounters) CountTeamsByOrg(orgID string) (int64, error) {
	args := m.Called(orgID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockCounters) CountBookingsByOrgSince(orgID string, since time.Time) (int64, error) {
	args := m.Called(orgID, since)
	return int64(args.Int(0)), args.Error(1)
}

func TestCheckUserLimit(t *testing.T) {
	orgs := new(mockOrgs)
	counts := new(mockCounters)
	orgs.On("GetByID", "org-1").Return(&models.Organization{ID: "org-1", MaxUsers: 5}, nil)
	counts.On("CountUsersByOrg", "org-1").Return(5, nil)

	tracker := &Tracker{Orgs: orgs, Counts: counts}
	err := tracker.CheckUserLimit("org-1")
	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, "user", limitErr.Resource)
}

func TestCheckUserLimitUnlimited(t *testing.T) {
	orgs := new(mockOrgs)
	orgs.On("GetByID", "org-1").Return(&models.Organization{ID: "org-1", MaxUsers: 0}, nil)

	tracker := &Tracker{Orgs: orgs, Counts: new(mockCounters)}
	assert.NoError(t, tracker.CheckUserLimit("org-1"))
}

func TestCheckBookingQuotaByTier(t *testing.T) {
	orgs := new(mockOrgs)
	counts := new(mockCounters)
	orgs.On("GetByID", "org-1").Return(&models.Organization{ID: "org-1", PlanTier: "trial"}, nil)
	counts.On("CountBookingsByOrgSince", "org-1", mock.Anything).Return(50, nil)

	tracker := &Tracker{Orgs: orgs, Counts: counts}
	err := tracker.CheckBookingQuota("org-1")
	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, int64(50), limitErr.Limit)
}

func TestCheckBookingQuotaBusinessUnmetered(t *testing.T) {
	orgs := new(mockOrgs)
	orgs.On("GetByID", "org-1").Return(&models.Organization{ID: "org-1", PlanTier: "business"}, nil)

	tracker := &Tracker{Orgs: orgs, Counts: new(mockCounters)}
	assert.NoError(t, tracker.CheckBookingQuota("org-1"))
}
