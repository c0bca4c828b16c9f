package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unoserver/internal/model"
)

// ResultRepo handles MongoDB operations for finished games
type ResultRepo interface {
	Create(ctx context.Context, result *model.GameResult) error
	GetByGameID(ctx context.Context, gameID string) (*model.GameResult, error)
	ListByPlayer(ctx context.Context, player string, limit int) ([]*model.GameResult, error)
	Leaderboard(ctx context.Context, since time.Time, limit int) ([]model.LeaderboardEntry, error)
	EnsureIndexes(ctx context.Context) error
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("game_results"),
	}
}

func (r *resultRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "gameId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "players", Value: 1}, {Key: "finishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "finishedAt", Value: -1}}},
	})
	return err
}

func (r *resultRepo) Create(ctx context.Context, result *model.GameResult) error {
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, result)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return nil
}

func (r *resultRepo) GetByGameID(ctx context.Context, gameID string) (*model.GameResult, error) {
	var result model.GameResult
	err := r.collection.FindOne(ctx, bson.M{"gameId": gameID}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) ListByPlayer(ctx context.Context, player string, limit int) ([]*model.GameResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"players": player}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*model.GameResult{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Leaderboard sums points and wins per winner over games finished at or
// after since. A zero since covers every stored game.
func (r *resultRepo) Leaderboard(ctx context.Context, since time.Time, limit int) ([]model.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{}
	if !since.IsZero() {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"finishedAt": bson.M{"$gte": since}}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$winner"},
			{Key: "points", Value: bson.M{"$sum": "$points"}},
			{Key: "wins", Value: bson.M{"$sum": 1}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "points", Value: -1},
			{Key: "wins", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []model.LeaderboardEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
