package teamRepo

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

// MongoTeamRepo implements TeamRepository using MongoDB. Teams and their
// memberships live in separate collections.
type MongoTeamRepo struct {
	coll       *mongo.Collection
	memberColl *mongo.Collection
}

// NewMongoTeamRepo creates a new instance of TeamRepository using MongoDB.
func NewMongoTeamRepo() TeamRepository {
	db := database.MongoClient.Database("bcal")
	repo := &MongoTeamRepo{
		coll:       db.Collection("teams"),
		memberColl: db.Collection("team_members"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTeamRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	teamIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, teamIndexes); err != nil {
		return fmt.Errorf("failed to create team indexes: %w", err)
	}

	memberIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "team_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	if _, err := r.memberColl.Indexes().CreateMany(ctx, memberIndexes); err != nil {
		return fmt.Errorf("failed to create membership indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a team by its unique ID.
func (r *MongoTeamRepo) GetByID(id string) (*models.Team, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var team models.Team
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&team); err != nil {
		return nil, fmt.Errorf("failed to fetch team with id %s: %w", id, err)
	}
	return &team, nil
}

// GetAllByOrg retrieves all teams in an organization.
func (r *MongoTeamRepo) GetAllByOrg(orgID string) ([]models.Team, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve teams: %w", err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// CountByOrg counts active teams in an organization.
func (r *MongoTeamRepo) CountByOrg(orgID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"organization_id": orgID, "is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return n, nil
}

// Create inserts a new team.
func (r *MongoTeamRepo) Create(team *models.Team) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// Update modifies an existing team.
func (r *MongoTeamRepo) Update(team *models.Team) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	team.UpdatedAt = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": team.ID}, bson.M{"$set": team})
	if err != nil {
		return fmt.Errorf("failed to update team with id %s: %w", team.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("team with id %s not found", team.ID)
	}
	return nil
}

// Delete removes a team by its ID.
func (r *MongoTeamRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("team with id %s not found", id)
	}
	return nil
}

// AddMember inserts a membership record.
func (r *MongoTeamRepo) AddMember(m *models.TeamMember) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.JoinedAt = time.Now().UTC()
	if _, err := r.memberColl.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

// RemoveMember deactivates a membership. The record is kept so past bookings
// retain a valid reference.
func (r *MongoTeamRepo) RemoveMember(teamID, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"team_id": teamID, "user_id": userID}
	result, err := r.memberColl.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("member %s not found in team %s", userID, teamID)
	}
	return nil
}

// UpdateMemberRole changes an active membership's role.
func (r *MongoTeamRepo) UpdateMemberRole(teamID, userID, role string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"team_id": teamID, "user_id": userID, "is_active": true}
	result, err := r.memberColl.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("member %s not found in team %s", userID, teamID)
	}
	return nil
}

// GetMembers retrieves a team's active memberships.
func (r *MongoTeamRepo) GetMembers(teamID string) ([]models.TeamMember, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.memberColl.Find(ctx, bson.M{"team_id": teamID, "is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve team members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}
	return members, nil
}

// GetActiveMemberIDs retrieves the user IDs of a team's active members.
func (r *MongoTeamRepo) GetActiveMemberIDs(teamID string) ([]string, error) {
	members, err := r.GetMembers(teamID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// IsMember reports whether the user is an active member of the team.
func (r *MongoTeamRepo) IsMember(teamID, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"team_id": teamID, "user_id": userID, "is_active": true}
	n, err := r.memberColl.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return n > 0, nil
}
