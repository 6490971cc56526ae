package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gayish/internal/model"
)

// StatsRepo handles MongoDB operations for per-device statistics
type StatsRepo interface {
	Get(ctx context.Context, deviceID string) (*model.UserStats, error)
	Save(ctx context.Context, stats *model.UserStats) error
}

type statsRepo struct {
	stats *mongo.Collection
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *mongo.Database) StatsRepo {
	return &statsRepo{
		stats: db.Collection("user_stats"),
	}
}

func (r *statsRepo) Get(ctx context.Context, deviceID string) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.stats.FindOne(ctx, bson.M{"_id": deviceID}).Decode(&stats)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepo) Save(ctx context.Context, stats *model.UserStats) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.stats.ReplaceOne(ctx, bson.M{"_id": stats.DeviceID}, stats, opts)
	return err
}
