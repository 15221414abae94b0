package team

import (
	"testing"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) GetByID(id string) (*models.Team, error) {
	args := m.Called(id)
	t, _ := args.Get(0).(*models.Team)
	return t, args.Error(1)
}

func (m *mockTeamRepo) GetAllByOrg(orgID string) ([]models.Team, error) {
	args := m.Called(orgID)
	ts, _ := args.Get(0).([]models.Team)
	return ts, args.Error(1)
}

func (m *mockTeamRepo) CountByOrg(orgID string) (int64, error) {
	args := m.Called(orgID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockTeamRepo) Create(team *models.Team) error {
	return m.Called(team).Error(0)
}

func (m *mockTeamRepo) Update(team *models.Team) error {
	return m.Called(team).Error(0)
}

func (m *mockTeamRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockTeamRepo) AddMember(member *models.TeamMember) error {
	return m.Called(member).Error(0)
}

func (m *mockTeamRepo) UpdateMemberRole(teamID, userID, role string) error {
	return m.Called(teamID, userID, role).Error(0)
}

func (m *mockTeamRepo) RemoveMember(teamID, userID string) error {
	return m.Called(teamID, userID).Error(0)
}

func (m *mockTeamRepo) GetMembers(teamID string) ([]models.TeamMember, error) {
	args := m.Called(teamID)
	ms, _ := args.Get(0).([]models.TeamMember)
	return ms, args.Error(1)
}

func (m *mockTeamRepo) GetActiveMemberIDs(teamID string) ([]string, error) {
	args := m.Called(teamID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockTeamRepo) IsMember(teamID, userID string) (bool, error) {
	args := m.Called(teamID, userID)
	return args.Bool(0), args.Error(1)
}

type mockLimits struct {
	mock.Mock
}

func (m *mockLimits) CheckTeamLimit(orgID string) error {
	return m.Called(orgID).Error(0)
}

func TestCreateAssignsIDAndActivates(t *testing.T) {
	repo := new(mockTeamRepo)
	repo.On("Create", mock.Anything).Return(nil)

	svc := &DefaultTeamService{Repo: repo}
	team := &models.Team{OrganizationID: "org-1", Name: "Sales"}
	require.NoError(t, svc.Create("actor-1", team))

	assert.NotEmpty(t, team.ID)
	assert.True(t, team.IsActive)
}

func TestCreateHonorsPlanLimit(t *testing.T) {
	limits := new(mockLimits)
	limits.On("CheckTeamLimit", "org-1").Return(assert.AnError)

	svc := &DefaultTeamService{Repo: new(mockTeamRepo), Limits: limits}
	err := svc.Create("actor-1", &models.Team{OrganizationID: "org-1", Name: "Sales"})
	assert.Error(t, err)
}

func TestAddMemberRejectsUnknownRole(t *testing.T) {
	svc := &DefaultTeamService{Repo: new(mockTeamRepo)}
	assert.Error(t, svc.AddMember("actor-1", "team-1", "user-1", "owner"))
}

func TestVerifyTeamInOrg(t *testing.T) {
	repo := new(mockTeamRepo)
	repo.On("GetByID", "team-1").
		Return(&models.Team{ID: "team-1", OrganizationID: "org-1", IsActive: true}, nil)
	repo.On("GetByID", "team-2").
		Return(&models.Team{ID: "team-2", OrganizationID: "other", IsActive: true}, nil)
	repo.On("GetByID", "team-3").
		Return(&models.Team{ID: "team-3", OrganizationID: "org-1", IsActive: false}, nil)

	svc := &DefaultTeamService{Repo: repo}

	team, err := svc.VerifyTeamInOrg("team-1", "org-1")
	require.NoError(t, err)
	assert.Equal(t, "team-1", team.ID)

	_, err = svc.VerifyTeamInOrg("team-2", "org-1")
	assert.Error(t, err)

	_, err = svc.VerifyTeamInOrg("team-3", "org-1")
	assert.Error(t, err)
}

func TestUpdateMemberRoleRejectsUnknownRole(t *testing.T) {
	svc := &DefaultTeamService{}
	assert.Error(t, svc.UpdateMemberRole("team-1", "user-1", "owner"))
}

func TestUpdateMemberRole(t *testing.T) {
	repo := new(mockTeamRepo)
	repo.On("UpdateMemberRole", "team-1", "user-1", "admin").Return(nil)

	svc := &DefaultTeamService{Repo: repo}
	require.NoError(t, svc.UpdateMemberRole("team-1", "user-1", "admin"))
	repo.AssertExpectations(t)
}
