package models

import "time"

// Team owns a set of active members and belongs to exactly one organization.
// A team's bookable availability is the union of its active members' weekly windows.
type Team struct {
	ID             string    `bson:"id" json:"id"`
	OrganizationID string    `bson:"organization_id" json:"organization_id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// TeamMember associates a user with a team. Membership is soft-deleted via the
// active flag so past bookings keep a valid reference.
type TeamMember struct {
	ID       string    `bson:"id" json:"id"`
	TeamID   string    `bson:"team_id" json:"team_id"`
	UserID   string    `bson:"user_id" json:"user_id"`
	Role     string    `bson:"role" json:"role"` // "member" or "admin"
	IsActive bool      `bson:"is_active" json:"is_active"`
	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}
