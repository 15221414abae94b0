package models

import "time"

// Subscription states mirrored from the billing gateway.
const (
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Organization is the multi-tenant boundary. Every user, team and booking is
// scoped to exactly one organization.
type Organization struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Slug      string `bson:"slug" json:"slug"` // subdomain, e.g. acme.bcal.io
	IsActive  bool   `bson:"is_active" json:"is_active"`
	OwnerID   string `bson:"owner_id" json:"owner_id"`
	MaxUsers  int    `bson:"max_users" json:"max_users"`
	MaxTeams  int    `bson:"max_teams" json:"max_teams"`
	PlanTier  string `bson:"plan_tier" json:"plan_tier"` // trial, starter, business
	Branding  Branding `bson:"branding" json:"branding"`

	// Billing gateway references.
	StripeCustomerID     string `bson:"stripe_customer_id,omitempty" json:"-"`
	StripeSubscriptionID string `bson:"stripe_subscription_id,omitempty" json:"-"`
	SubscriptionStatus   string `bson:"subscription_status,omitempty" json:"subscription_status,omitempty"`

	// Licensing server reference.
	LicenseKey       string     `bson:"license_key,omitempty" json:"-"`
	LicenseExpiresAt *time.Time `bson:"license_expires_at,omitempty" json:"license_expires_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Branding holds per-tenant white-label settings.
type Branding struct {
	LogoURL        string `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	FaviconURL     string `bson:"favicon_url,omitempty" json:"favicon_url,omitempty"`
	PrimaryColor   string `bson:"primary_color,omitempty" json:"primary_color,omitempty"`
	SecondaryColor string `bson:"secondary_color,omitempty" json:"secondary_color,omitempty"`
	CompanyName    string `bson:"company_name,omitempty" json:"company_name,omitempty"`
}
