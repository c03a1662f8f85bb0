package repository

import (
	"context"
	"fmt"

	"oceansms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterRepository hands out sequence numbers for form codes. Next is a
// single atomic increment, so concurrent creators never see the same value.
type CounterRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}

type counterRepository struct {
	collection *mongo.Collection
}

func NewCounterRepository(db *mongo.Database) CounterRepository {
	return &counterRepository{
		collection: db.Collection("counters"),
	}
}

func (r *counterRepository) Next(ctx context.Context, key string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"key": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %v", key, err)
	}

	return counter.Seq, nil
}
