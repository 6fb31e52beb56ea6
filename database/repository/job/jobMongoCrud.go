package jobRepo

import (
	"errors"
	"fmt"
	"time"

	"fixfresh/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new job document.
func (r *MongoJobRepo) Create(job *models.Job) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID fetches a job by its ID.
func (r *MongoJobRepo) GetByID(id string) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var job models.Job
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job %s: %w", id, err)
	}
	return &job, nil
}

// List returns jobs matching the filter, newest first.
func (r *MongoJobRepo) List(f Filter) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if f.ClientID != "" {
		query["clientId"] = f.ClientID
	}
	if f.ProviderID != "" {
		query["providerId"] = f.ProviderID
	}
	if f.Status != "" {
		query["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}
