package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("bcal").Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "host_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "start_time", Value: -1}}},
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// blockingOverlapFilter matches the host's pending or confirmed bookings whose
// open interval overlaps [start, end): existing.start < end AND existing.end > start.
func blockingOverlapFilter(hostID string, start, end time.Time) bson.M {
	return bson.M{
		"host_id":    hostID,
		"status":     bson.M{"$in": models.BlockingStatuses},
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// CreateIfFree re-runs the conflict count and inserts the booking inside a
// single session transaction, so two concurrent requests for the same host
// and interval cannot both commit.
func (r *MongoBookingRepo) CreateIfFree(ctx context.Context, b *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, blockingOverlapFilter(b.HostID, b.StartTime, b.EndTime))
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if n > 0 {
			return ErrSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, b); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

// OverlappingCount counts the host's blocking bookings overlapping [start, end).
func (r *MongoBookingRepo) OverlappingCount(hostID string, start, end time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, blockingOverlapFilter(hostID, start, end))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return n, nil
}

// ListOverlapping returns the host's blocking bookings overlapping [start, end).
func (r *MongoBookingRepo) ListOverlapping(hostID string, start, end time.Time) ([]models.Booking, error) {
	return r.find(blockingOverlapFilter(hostID, start, end), bson.D{{Key: "start_time", Value: 1}}, 0)
}

// ListOverlappingForHosts returns blocking bookings for any of the hosts
// overlapping [start, end).
func (r *MongoBookingRepo) ListOverlappingForHosts(hostIDs []string, start, end time.Time) ([]models.Booking, error) {
	if len(hostIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{
		"host_id":    bson.M{"$in": hostIDs},
		"status":     bson.M{"$in": models.BlockingStatuses},
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
	return r.find(filter, bson.D{{Key: "start_time", Value: 1}}, 0)
}

// CountStartingBetween counts the host's blocking bookings starting in [start, end).
func (r *MongoBookingRepo) CountStartingBetween(hostID string, start, end time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"host_id":    hostID,
		"status":     bson.M{"$in": models.BlockingStatuses},
		"start_time": bson.M{"$gte": start, "$lt": end},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

// ListForHost returns the host's bookings, newest first.
func (r *MongoBookingRepo) ListForHost(hostID string, limit int64) ([]models.Booking, error) {
	return r.find(bson.M{"host_id": hostID}, bson.D{{Key: "start_time", Value: -1}}, limit)
}

// ListForGuest returns the guest's bookings, newest first.
func (r *MongoBookingRepo) ListForGuest(guestID string, limit int64) ([]models.Booking, error) {
	return r.find(bson.M{"guest_id": guestID}, bson.D{{Key: "start_time", Value: -1}}, limit)
}

// ListStartingBetween returns all blocking bookings starting in [start, end),
// across all hosts.
func (r *MongoBookingRepo) ListStartingBetween(start, end time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":     bson.M{"$in": models.BlockingStatuses},
		"start_time": bson.M{"$gte": start, "$lt": end},
	}
	return r.find(filter, bson.D{{Key: "start_time", Value: 1}}, 0)
}

// UpdateStatus transitions a booking to the given status.
func (r *MongoBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// UpdateDetails replaces the booking's title and description.
func (r *MongoBookingRepo) UpdateDetails(id, title, description string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"updated_at":  time.Now().UTC(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// CountByOrgSince counts bookings created in an organization since the given time.
func (r *MongoBookingRepo) CountByOrgSince(orgID string, since time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"organization_id": orgID, "created_at": bson.M{"$gte": since}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for org %s: %w", orgID, err)
	}
	return n, nil
}

func (r *MongoBookingRepo) find(filter bson.M, sort bson.D, limit int64) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
