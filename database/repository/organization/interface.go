package orgRepo

import "bcal/models"

// OrganizationRepository defines methods for tenant data access.
type OrganizationRepository interface {
	// GetByID retrieves an organization by its unique ID.
	GetByID(id string) (*models.Organization, error)
	// GetBySlug retrieves an organization by its subdomain slug.
	// Returns (nil, nil) when no organization matches.
	GetBySlug(slug string) (*models.Organization, error)
	// GetByStripeCustomer retrieves an organization by its Stripe customer ID.
	GetByStripeCustomer(customerID string) (*models.Organization, error)
	// Create inserts a new organization.
	Create(org *models.Organization) error
	// Update modifies an existing organization.
	Update(org *models.Organization) error
}
