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

// MongoPickRepository stores per-member, per-week survivor pick documents.
// These documents are the canonical source of truth for pick history; the
// summary string embedded on the member record is rebuilt from them.
type MongoPickRepository struct {
	collection *mongo.Collection
}

// NewMongoPickRepository creates a new MongoDB survivor pick repository
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("survivor_picks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One pick per member per week
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "season", Value: 1}, {Key: "week", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoPickRepository{collection: collection}
}

// GetPicksByMember retrieves all of a member's picks for a season, ordered
// by ascending week.
func (r *MongoPickRepository) GetPicksByMember(ctx context.Context, memberID string, season int) ([]models.SurvivorPick, error) {
	filter := bson.M{"member_id": memberID, "season": season}
	opts := options.Find().SetSort(bson.D{{Key: "week", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks for member %s: %w", memberID, err)
	}
	defer cursor.Close(ctx)

	var picks []models.SurvivorPick
	for cursor.Next(ctx) {
		var pick models.SurvivorPick
		if err := cursor.Decode(&pick); err != nil {
			return nil, fmt.Errorf("failed to decode pick: %w", err)
		}
		picks = append(picks, pick)
	}

	return picks, cursor.Err()
}

// UpsertPick writes a member's pick for a week, replacing any earlier
// submission for the same week.
func (r *MongoPickRepository) UpsertPick(ctx context.Context, pick *models.SurvivorPick) error {
	if pick.SubmittedAt.IsZero() {
		pick.SubmittedAt = time.Now()
	}

	filter := bson.M{
		"member_id": pick.MemberID,
		"season":    pick.Season,
		"week":      pick.Week,
	}
	update := bson.M{
		"$set": bson.M{
			"member_id":    pick.MemberID,
			"season":       pick.Season,
			"week":         pick.Week,
			"team":         pick.Team,
			"submitted_at": pick.SubmittedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert pick for member %s week %d: %w", pick.MemberID, pick.Week, err)
	}
	return nil
}

// DeletePick removes a member's pick for a week. Missing picks are not an
// error; a clear is idempotent.
func (r *MongoPickRepository) DeletePick(ctx context.Context, memberID string, season, week int) error {
	filter := bson.M{"member_id": memberID, "season": season, "week": week}
	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete pick for member %s week %d: %w", memberID, week, err)
	}
	return nil
}
