package database

import (
	"context"
	"fmt"
	"time"

	"nerdfootball-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMemberRepository handles pool member storage operations
type MongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a new MongoDB pool member repository
func NewMongoMemberRepository(db *MongoDB) *MongoMemberRepository {
	collection := db.GetCollection("pool_members")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Index on season for full-pool scans
	seasonIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "season", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, seasonIndex)

	// One member per email per season
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "season", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, emailIndex)

	return &MongoMemberRepository{collection: collection}
}

// GetMemberByID retrieves a single pool member
func (r *MongoMemberRepository) GetMemberByID(ctx context.Context, id string) (*models.PoolMember, error) {
	var member models.PoolMember
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // not found is not an error
		}
		return nil, fmt.Errorf("failed to find member %s: %w", id, err)
	}

	return &member, nil
}

// GetMembersBySeason retrieves all pool members for a season, ordered by ID
// for deterministic batch processing.
func (r *MongoMemberRepository) GetMembersBySeason(ctx context.Context, season int) ([]models.PoolMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find members for season %d: %w", season, err)
	}
	defer cursor.Close(ctx)

	var members []models.PoolMember
	for cursor.Next(ctx) {
		var member models.PoolMember
		if err := cursor.Decode(&member); err != nil {
			return nil, fmt.Errorf("failed to decode member: %w", err)
		}
		members = append(members, member)
	}

	return members, cursor.Err()
}

// ProvisionMember creates a member with survivor defaults if it does not
// exist yet. An existing member is left untouched.
func (r *MongoMemberRepository) ProvisionMember(ctx context.Context, member *models.PoolMember) error {
	now := time.Now()

	filter := bson.M{"_id": member.ID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":       member.ID,
			"name":      member.Name,
			"email":     member.Email,
			"season":    member.Season,
			"survivor":  models.NewSurvivorRecord(),
			"createdAt": now,
			"updatedAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to provision member %s: %w", member.ID, err)
	}
	return nil
}

// UpdateSurvivorRecord replaces the member's entire survivor sub-record in
// one atomic update. Partial-field updates are never observable.
func (r *MongoMemberRepository) UpdateSurvivorRecord(ctx context.Context, memberID string, record models.SurvivorRecord) error {
	filter := bson.M{"_id": memberID}
	update := bson.M{
		"$set": bson.M{
			"survivor":  record,
			"updatedAt": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update survivor record for %s: %w", memberID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("member %s not found", memberID)
	}
	return nil
}

// RemoveMember hard-deletes a member. Administrative removal only.
func (r *MongoMemberRepository) RemoveMember(ctx context.Context, memberID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": memberID})
	if err != nil {
		return fmt.Errorf("failed to remove member %s: %w", memberID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("member %s not found", memberID)
	}
	return nil
}
