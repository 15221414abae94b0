package teamRepo

import "bcal/models"

// TeamRepository defines methods for team and membership data access.
type TeamRepository interface {
	// GetByID retrieves a team by its unique ID.
	GetByID(id string) (*models.Team, error)
	// GetAllByOrg retrieves all teams in an organization.
	GetAllByOrg(orgID string) ([]models.Team, error)
	// CountByOrg counts active teams in an organization.
	CountByOrg(orgID string) (int64, error)
	// Create inserts a new team.
	Create(team *models.Team) error
	// Update modifies an existing team.
	Update(team *models.Team) error
	// Delete removes a team by its ID.
	Delete(id string) error

	// AddMember inserts a membership record.
	AddMember(m *models.TeamMember) error
	// RemoveMember deactivates a membership.
	RemoveMember(teamID, userID string) error
	// UpdateMemberRole changes an active membership's role.
	UpdateMemberRole(teamID, userID, role string) error
	// GetMembers retrieves a team's memberships, active ones only.
	GetMembers(teamID string) ([]models.TeamMember, error)
	// GetActiveMemberIDs retrieves the user IDs of a team's active members.
	GetActiveMemberIDs(teamID string) ([]string, error)
	// IsMember reports whether the user is an active member of the team.
	IsMember(teamID, userID string) (bool, error)
}
