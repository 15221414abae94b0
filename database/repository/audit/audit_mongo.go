package auditRepo

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

// AuditRepository defines methods for the append-only audit log.
type AuditRepository interface {
	// Append inserts a new audit entry.
	Append(e *models.AuditEntry) error
	// ListByOrg returns the organization's newest entries, up to limit.
	ListByOrg(orgID string, limit int64) ([]models.AuditEntry, error)
}

// MongoAuditRepo implements AuditRepository using MongoDB.
type MongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo creates a new instance of AuditRepository using MongoDB.
func NewMongoAuditRepo() AuditRepository {
	coll := database.MongoClient.Database("bcal").Collection("audit_log")
	repo := &MongoAuditRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAuditRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Append inserts a new audit entry.
func (r *MongoAuditRepo) Append(e *models.AuditEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	e.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListByOrg returns the organization's newest entries, up to limit.
func (r *MongoAuditRepo) ListByOrg(orgID string, limit int64) ([]models.AuditEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}
