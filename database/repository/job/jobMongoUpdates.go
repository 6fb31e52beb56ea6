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

// findOneAndUpdate runs a conditional update and decodes the updated job.
// A filter miss is classified as ErrNotFound or ErrConflict.
func (r *MongoJobRepo) findOneAndUpdate(jobID string, filter, update bson.M) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var job models.Job
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.classifyMiss(jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job %s: %w", jobID, err)
	}
	return &job, nil
}

// Claim atomically assigns the provider and moves requested -> scheduled.
// The filter requires the job to still be unassigned, so exactly one of any
// number of concurrent claims can win.
func (r *MongoJobRepo) Claim(jobID, providerID string) (*models.Job, error) {
	filter := bson.M{
		"id":     jobID,
		"status": models.JobStatusRequested,
		"$or": bson.A{
			bson.M{"providerId": ""},
			bson.M{"providerId": bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$set": bson.M{
		"providerId": providerID,
		"status":     models.JobStatusScheduled,
		"updatedAt":  time.Now(),
	}}
	return r.findOneAndUpdate(jobID, filter, update)
}

// UpdateStatus moves the job from one exact status to another.
func (r *MongoJobRepo) UpdateStatus(jobID string, from, to models.JobStatus, photos []string) (*models.Job, error) {
	filter := bson.M{"id": jobID, "status": from}
	update := bson.M{"$set": bson.M{
		"status":    to,
		"updatedAt": time.Now(),
	}}
	if len(photos) > 0 {
		update["$push"] = bson.M{"photos": bson.M{"$each": photos}}
	}
	return r.findOneAndUpdate(jobID, filter, update)
}

// SetRating records the one-time rating; the filter guards both the
// completed status and that no rating exists yet.
func (r *MongoJobRepo) SetRating(jobID string, rating int, review string) (*models.Job, error) {
	filter := bson.M{
		"id":     jobID,
		"status": models.JobStatusCompleted,
		"$or": bson.A{
			bson.M{"rating": 0},
			bson.M{"rating": bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$set": bson.M{
		"rating":    rating,
		"review":    review,
		"updatedAt": time.Now(),
	}}
	return r.findOneAndUpdate(jobID, filter, update)
}

// AppendPhotos appends photo references while the job is still in the
// expected status.
func (r *MongoJobRepo) AppendPhotos(jobID string, status models.JobStatus, photos []string) (*models.Job, error) {
	filter := bson.M{"id": jobID, "status": status}
	update := bson.M{
		"$push": bson.M{"photos": bson.M{"$each": photos}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return r.findOneAndUpdate(jobID, filter, update)
}

// RecordSplit stores the paid amount and commission split exactly once.
func (r *MongoJobRepo) RecordSplit(jobID string, paidAmount int64, split models.CommissionSplit) (*models.Job, error) {
	filter := bson.M{
		"id":    jobID,
		"split": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"paidAmount": paidAmount,
		"split":      split,
		"updatedAt":  time.Now(),
	}}
	return r.findOneAndUpdate(jobID, filter, update)
}
