package models

import "time"

// Audit actions recorded by services.
const (
	AuditBookingCreated   = "booking.created"
	AuditBookingCancelled = "booking.cancelled"
	AuditBookingAssigned  = "booking.assigned"
	AuditUserCreated      = "user.created"
	AuditUserSignIn       = "user.signin"
	AuditTeamCreated      = "team.created"
	AuditTeamMemberAdded  = "team.member_added"
	AuditOrgUpdated       = "org.updated"
	AuditBrandingUpdated  = "org.branding_updated"
)

// AuditEntry is an append-only record of a state-changing action within an
// organization. Entries are never updated or deleted.
type AuditEntry struct {
	ID             string            `bson:"id" json:"id"`
	OrganizationID string            `bson:"organization_id" json:"organization_id"`
	ActorID        string            `bson:"actor_id" json:"actor_id"`
	Action         string            `bson:"action" json:"action"`
	TargetID       string            `bson:"target_id,omitempty" json:"target_id,omitempty"`
	Detail         map[string]string `bson:"detail,omitempty" json:"detail,omitempty"`
	ClientIP       string            `bson:"client_ip,omitempty" json:"client_ip,omitempty"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
}
