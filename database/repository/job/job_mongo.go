package jobRepo

import (
	"context"
	"fmt"
	"time"

	"fixfresh/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo creates a new instance of JobRepository using MongoDB.
func NewMongoJobRepo() JobRepository {
	coll := database.MongoClient.Database("fixfresh").Collection("jobs")
	repo := &MongoJobRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create job indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoJobRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// classifyMiss distinguishes a missing job from a lost conditional write.
func (r *MongoJobRepo) classifyMiss(jobID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": jobID})
	if err != nil {
		return fmt.Errorf("failed to check job %s: %w", jobID, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
