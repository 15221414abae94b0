package models

import "time"

// User roles within an organization.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account that can host bookings. Guests created on the fly
// during public booking get an empty PasswordHash and never authenticate.
type User struct {
	ID             string    `bson:"id" json:"id"`
	OrganizationID string    `bson:"organization_id" json:"organization_id"`
	Email          string    `bson:"email" json:"email"`
	Username       string    `bson:"username" json:"username"`
	FullName       string    `bson:"full_name" json:"full_name"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	TokenHash      string    `bson:"token_hash,omitempty" json:"-"`
	Role           string    `bson:"role" json:"role"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	IsSystemAdmin  bool      `bson:"is_system_admin" json:"is_system_admin"`
	FCMToken       string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
