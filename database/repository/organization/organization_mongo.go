package orgRepo

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

// MongoOrgRepo implements OrganizationRepository using MongoDB.
type MongoOrgRepo struct {
	coll *mongo.Collection
}

// NewMongoOrgRepo creates a new instance of OrganizationRepository using MongoDB.
func NewMongoOrgRepo() OrganizationRepository {
	coll := database.MongoClient.Database("bcal").Collection("organizations")
	repo := &MongoOrgRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrgRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an organization by its unique ID.
func (r *MongoOrgRepo) GetByID(id string) (*models.Organization, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var org models.Organization
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&org); err != nil {
		return nil, fmt.Errorf("failed to fetch organization with id %s: %w", id, err)
	}
	return &org, nil
}

// GetBySlug retrieves an organization by its subdomain slug.
func (r *MongoOrgRepo) GetBySlug(slug string) (*models.Organization, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var org models.Organization
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&org); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch organization with slug %s: %w", slug, err)
	}
	return &org, nil
}

// GetByStripeCustomer retrieves an organization by its Stripe customer ID.
func (r *MongoOrgRepo) GetByStripeCustomer(customerID string) (*models.Organization, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var org models.Organization
	if err := r.coll.FindOne(ctx, bson.M{"stripe_customer_id": customerID}).Decode(&org); err != nil {
		return nil, fmt.Errorf("failed to fetch organization for customer %s: %w", customerID, err)
	}
	return &org, nil
}

// Create inserts a new organization.
func (r *MongoOrgRepo) Create(org *models.Organization) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, org); err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// Update modifies an existing organization.
func (r *MongoOrgRepo) Update(org *models.Organization) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	org.UpdatedAt = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": org.ID}, bson.M{"$set": org})
	if err != nil {
		return fmt.Errorf("failed to update organization with id %s: %w", org.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("organization with id %s not found", org.ID)
	}
	return nil
}
