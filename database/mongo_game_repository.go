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

// MongoGameRepository handles the season-wide game results store.
// Read-only from the survivor core's perspective; the write path exists for
// the results loader and administrative corrections only.
type MongoGameRepository struct {
	collection *mongo.Collection
}

// NewMongoGameRepository creates a new MongoDB game repository
func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection("games")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Compound index on season and week for weekly lookups
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "season", Value: 1}, {Key: "week", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoGameRepository{collection: collection}
}

// GetGamesByWeek retrieves all games for a season and week
func (r *MongoGameRepository) GetGamesByWeek(ctx context.Context, season, week int) ([]models.Game, error) {
	filter := bson.M{"season": season, "week": week}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find games for season %d week %d: %w", season, week, err)
	}
	defer cursor.Close(ctx)

	var games []models.Game
	for cursor.Next(ctx) {
		var game models.Game
		if err := cursor.Decode(&game); err != nil {
			return nil, fmt.Errorf("failed to decode game: %w", err)
		}
		games = append(games, game)
	}

	return games, cursor.Err()
}

// UpsertGame creates or updates a game record keyed by (season, week, id)
func (r *MongoGameRepository) UpsertGame(ctx context.Context, game *models.Game) error {
	filter := bson.M{"season": game.Season, "week": game.Week, "id": game.ID}
	update := bson.M{
		"$set": bson.M{
			"id":        game.ID,
			"season":    game.Season,
			"week":      game.Week,
			"date":      game.Date,
			"home":      game.Home,
			"away":      game.Away,
			"homeScore": game.HomeScore,
			"awayScore": game.AwayScore,
			"winner":    game.Winner,
			"state":     game.State,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert game %d: %w", game.ID, err)
	}
	return nil
}
