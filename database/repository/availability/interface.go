package availabilityRepo

import "bcal/models"

// AvailabilityRepository defines methods for weekly availability data access.
type AvailabilityRepository interface {
	// GetByID retrieves a window by its unique ID.
	GetByID(id string) (*models.WeeklyAvailability, error)
	// GetByUser retrieves all windows for a user, active or not.
	GetByUser(userID string) ([]models.WeeklyAvailability, error)
	// GetActiveByUserAndDay retrieves the user's active windows for one weekday.
	GetActiveByUserAndDay(userID string, dayOfWeek int) ([]models.WeeklyAvailability, error)
	// GetActiveByUsersAndDay retrieves active windows for a set of users on one
	// weekday, in a single query.
	GetActiveByUsersAndDay(userIDs []string, dayOfWeek int) ([]models.WeeklyAvailability, error)
	// Create inserts a new window.
	Create(av *models.WeeklyAvailability) error
	// Update modifies an existing window.
	Update(av *models.WeeklyAvailability) error
	// Delete removes a window by its ID.
	Delete(id string) error
}
