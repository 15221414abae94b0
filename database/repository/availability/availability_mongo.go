package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"bcal/database"
	"bcal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new instance of AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.MongoClient.Database("bcal").Collection("availability")
	repo := &MongoAvailabilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "day_of_week", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a window by its unique ID.
func (r *MongoAvailabilityRepo) GetByID(id string) (*models.WeeklyAvailability, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var av models.WeeklyAvailability
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&av); err != nil {
		return nil, fmt.Errorf("failed to fetch availability with id %s: %w", id, err)
	}
	return &av, nil
}

// GetByUser retrieves all windows for a user, sorted by weekday then start time.
func (r *MongoAvailabilityRepo) GetByUser(userID string) ([]models.WeeklyAvailability, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve availability for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var windows []models.WeeklyAvailability
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return windows, nil
}

// GetActiveByUserAndDay retrieves the user's active windows for one weekday.
func (r *MongoAvailabilityRepo) GetActiveByUserAndDay(userID string, dayOfWeek int) ([]models.WeeklyAvailability, error) {
	return r.findActive(bson.M{"user_id": userID, "day_of_week": dayOfWeek, "is_active": true})
}

// GetActiveByUsersAndDay retrieves active windows for a set of users on one weekday.
func (r *MongoAvailabilityRepo) GetActiveByUsersAndDay(userIDs []string, dayOfWeek int) ([]models.WeeklyAvailability, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return r.findActive(bson.M{"user_id": bson.M{"$in": userIDs}, "day_of_week": dayOfWeek, "is_active": true})
}

func (r *MongoAvailabilityRepo) findActive(filter bson.M) ([]models.WeeklyAvailability, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve availability: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.WeeklyAvailability
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return windows, nil
}

// Create inserts a new window.
func (r *MongoAvailabilityRepo) Create(av *models.WeeklyAvailability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	av.CreatedAt = now
	av.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, av); err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

// Update modifies an existing window.
func (r *MongoAvailabilityRepo) Update(av *models.WeeklyAvailability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	av.UpdatedAt = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": av.ID}, bson.M{"$set": av})
	if err != nil {
		return fmt.Errorf("failed to update availability with id %s: %w", av.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("availability with id %s not found", av.ID)
	}
	return nil
}

// Delete removes a window by its ID.
func (r *MongoAvailabilityRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete availability with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("availability with id %s not found", id)
	}
	return nil
}
