package organization

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"

	orgRepo "bcal/database/repository/organization"
	"bcal/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,61}[a-z0-9])?$`)

// RegisterRequest creates a new tenant with its owner account.
type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug" binding:"required"`
	OwnerEmail    string `json:"owner_email" binding:"required,email"`
	OwnerUsername string `json:"owner_username" binding:"required"`
	OwnerFullName string `json:"owner_full_name" binding:"required"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8"`
}

// OwnerCreator provisions the owner's admin account.
type OwnerCreator interface {
	Create(u *models.User) error
}

// Auditor records state-changing actions.
type Auditor interface {
	Record(orgID, actorID, action, targetID string, detail map[string]string)
}

// OrganizationService manages tenants and their branding.
type OrganizationService interface {
	Register(req RegisterRequest, passwordHash string) (*models.Organization, *models.User, error)
	Get(id string) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	Update(actorID string, org *models.Organization) error
	UpdateBranding(actorID, orgID string, branding models.Branding) (*models.Organization, error)
	UploadLogo(ctx context.Context, orgID string, file multipart.File, filename string) (string, error)
}

// DefaultOrganizationService is the production implementation.
type DefaultOrganizationService struct {
	Repo   orgRepo.OrganizationRepository
	Owners OwnerCreator
	Audit  Auditor
	// Cloudinary is optional; logo uploads fail cleanly without it.
	Cloudinary *cloudinary.Cloudinary
}

// Register creates the organization and its owner in one call. The owner's
// password is hashed by the caller so this service never sees plaintext.
func (s *DefaultOrganizationService) Register(req RegisterRequest, passwordHash string) (*models.Organization, *models.User, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, nil, fmt.Errorf("invalid slug %q: lowercase letters, digits and hyphens only", req.Slug)
	}
	existing, err := s.Repo.GetBySlug(req.Slug)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("slug %q is already in use", req.Slug)
	}

	owner := models.User{
		ID:       uuid.New().String(),
		Email:    req.OwnerEmail,
		Username: req.OwnerUsername,
		FullName: req.OwnerFullName,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	owner.PasswordHash = passwordHash

	org := models.Organization{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Slug:     req.Slug,
		IsActive: true,
		OwnerID:  owner.ID,
		PlanTier: "trial",
		MaxUsers: 5,
		MaxTeams: 2,
	}
	owner.OrganizationID = org.ID

	if err := s.Repo.Create(&org); err != nil {
		return nil, nil, err
	}
	if err := s.Owners.Create(&owner); err != nil {
		return nil, nil, fmt.Errorf("organization created but owner provisioning failed: %w", err)
	}
	if s.Audit != nil {
		s.Audit.Record(org.ID, owner.ID, models.AuditUserCreated, owner.ID, map[string]string{"role": "owner"})
	}
	return &org, &owner, nil
}

// Get returns one organization.
func (s *DefaultOrganizationService) Get(id string) (*models.Organization, error) {
	return s.Repo.GetByID(id)
}

// GetBySlug returns an organization by subdomain slug, or (nil, nil).
func (s *DefaultOrganizationService) GetBySlug(slug string) (*models.Organization, error) {
	return s.Repo.GetBySlug(slug)
}

// Update persists changes to an organization.
func (s *DefaultOrganizationService) Update(actorID string, org *models.Organization) error {
	if err := s.Repo.Update(org); err != nil {
		return err
	}
	if s.Audit != nil {
		s.Audit.Record(org.ID, actorID, models.AuditOrgUpdated, org.ID, nil)
	}
	return nil
}

// UpdateBranding replaces the organization's white-label settings.
func (s *DefaultOrganizationService) UpdateBranding(actorID, orgID string, branding models.Branding) (*models.Organization, error) {
	org, err := s.Repo.GetByID(orgID)
	if err != nil {
		return nil, err
	}
	org.Branding = branding
	if err := s.Repo.Update(org); err != nil {
		return nil, err
	}
	if s.Audit != nil {
		s.Audit.Record(orgID, actorID, models.AuditBrandingUpdated, orgID, nil)
	}
	return org, nil
}

// UploadLogo stores a logo with Cloudinary and records its delivery URL on
// the organization's branding.
func (s *DefaultOrganizationService) UploadLogo(ctx context.Context, orgID string, file multipart.File, filename string) (string, error) {
	if s.Cloudinary == nil {
		return "", fmt.Errorf("branding uploads are not configured")
	}
	result, err := s.Cloudinary.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "branding/" + orgID,
		PublicID: "logo",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no URL for %s", filename)
	}

	org, err := s.Repo.GetByID(orgID)
	if err != nil {
		return "", err
	}
	org.Branding.LogoURL = result.SecureURL
	if err := s.Repo.Update(org); err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
