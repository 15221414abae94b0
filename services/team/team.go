package team

import (
	"fmt"

	teamRepo "bcal/database/repository/team"
	"bcal/models"

	"github.com/google/uuid"
)

// LimitChecker gates team creation on the organization's plan.
type LimitChecker interface {
	CheckTeamLimit(orgID string) error
}

// Auditor records state-changing actions.
type Auditor interface {
	Record(orgID, actorID, action, targetID string, detail map[string]string)
}

// TeamService manages teams and their memberships.
type TeamService interface {
	Create(actorID string, team *models.Team) error
	Get(id string) (*models.Team, error)
	ListByOrg(orgID string) ([]models.Team, error)
	Update(team *models.Team) error
	Deactivate(id string) error
	AddMember(actorID, teamID, userID, role string) error
	UpdateMemberRole(teamID, userID, role string) error
	RemoveMember(teamID, userID string) error
	Members(teamID string) ([]models.TeamMember, error)
	// VerifyTeamInOrg confirms the team exists, is active and belongs to the
	// organization. Public booking paths call this before assignment.
	VerifyTeamInOrg(teamID, orgID string) (*models.Team, error)
}

// DefaultTeamService is the production implementation.
type DefaultTeamService struct {
	Repo   teamRepo.TeamRepository
	Limits LimitChecker
	Audit  Auditor
}

// Create inserts a new team after the plan limit check.
func (s *DefaultTeamService) Create(actorID string, team *models.Team) error {
	if team.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if s.Limits != nil {
		if err := s.Limits.CheckTeamLimit(team.OrganizationID); err != nil {
			return err
		}
	}
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	team.IsActive = true
	if err := s.Repo.Create(team); err != nil {
		return err
	}
	if s.Audit != nil {
		s.Audit.Record(team.OrganizationID, actorID, models.AuditTeamCreated, team.ID, nil)
	}
	return nil
}

// Get returns one team.
func (s *DefaultTeamService) Get(id string) (*models.Team, error) {
	return s.Repo.GetByID(id)
}

// ListByOrg returns all teams in an organization.
func (s *DefaultTeamService) ListByOrg(orgID string) ([]models.Team, error) {
	return s.Repo.GetAllByOrg(orgID)
}

// Update persists changes to a team.
func (s *DefaultTeamService) Update(team *models.Team) error {
	return s.Repo.Update(team)
}

// Deactivate soft-deletes a team. Memberships are kept.
func (s *DefaultTeamService) Deactivate(id string) error {
	team, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	team.IsActive = false
	return s.Repo.Update(team)
}

// AddMember adds a user to a team.
func (s *DefaultTeamService) AddMember(actorID, teamID, userID, role string) error {
	if role == "" {
		role = "member"
	}
	if role != "member" && role != "admin" {
		return fmt.Errorf("invalid member role %q", role)
	}
	team, err := s.Repo.GetByID(teamID)
	if err != nil {
		return err
	}
	m := &models.TeamMember{
		ID:       uuid.New().String(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		IsActive: true,
	}
	if err := s.Repo.AddMember(m); err != nil {
		return err
	}
	if s.Audit != nil {
		s.Audit.Record(team.OrganizationID, actorID, models.AuditTeamMemberAdded, teamID, map[string]string{
			"user_id": userID,
			"role":    role,
		})
	}
	return nil
}

// UpdateMemberRole changes an active membership's role.
func (s *DefaultTeamService) UpdateMemberRole(teamID, userID, role string) error {
	if role != "member" && role != "admin" {
		return fmt.Errorf("invalid member role %q", role)
	}
	return s.Repo.UpdateMemberRole(teamID, userID, role)
}

// RemoveMember deactivates a membership.
func (s *DefaultTeamService) RemoveMember(teamID, userID string) error {
	return s.Repo.RemoveMember(teamID, userID)
}

// Members returns a team's active memberships.
func (s *DefaultTeamService) Members(teamID string) ([]models.TeamMember, error) {
	return s.Repo.GetMembers(teamID)
}

// VerifyTeamInOrg confirms the team belongs to the organization and is active.
func (s *DefaultTeamService) VerifyTeamInOrg(teamID, orgID string) (*models.Team, error) {
	team, err := s.Repo.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team.OrganizationID != orgID {
		return nil, fmt.Errorf("team %s does not belong to this organization", teamID)
	}
	if !team.IsActive {
		return nil, fmt.Errorf("team %s is not active", teamID)
	}
	return team, nil
}
