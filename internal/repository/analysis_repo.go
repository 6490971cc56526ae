package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gayish/internal/model"
)

// AnalysisRepo handles MongoDB operations for completed analyses
type AnalysisRepo interface {
	Save(ctx context.Context, record *model.AnalysisRecord) error
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]model.AnalysisRecord, error)
}

type analysisRepo struct {
	analyses *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		analyses: db.Collection("analyses"),
	}
}

func (r *analysisRepo) Save(ctx context.Context, record *model.AnalysisRecord) error {
	_, err := r.analyses.InsertOne(ctx, record)
	return err
}

func (r *analysisRepo) ListByDevice(ctx context.Context, deviceID string, limit int) ([]model.AnalysisRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.analyses.Find(ctx, bson.M{"deviceId": deviceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.AnalysisRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
