package userRepo

import (
	"bcal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by email within an organization.
	// Returns (nil, nil) when no user matches.
	GetByEmail(orgID, email string) (*models.User, error)
	// GetAllByOrg retrieves all users in an organization.
	GetAllByOrg(orgID string) ([]models.User, error)
	// GetManyByIDs retrieves the users with the given IDs.
	GetManyByIDs(ids []string) ([]models.User, error)
	// CountByOrg counts active users in an organization.
	CountByOrg(orgID string) (int64, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
}
