package earningsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixfresh/database"
	"fixfresh/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEarningsRepo implements EarningsRepository using MongoDB.
type MongoEarningsRepo struct {
	earnings    *mongo.Collection
	withdrawals *mongo.Collection
}

// NewMongoEarningsRepo creates a new instance of EarningsRepository using MongoDB.
func NewMongoEarningsRepo() EarningsRepository {
	db := database.MongoClient.Database("fixfresh")
	repo := &MongoEarningsRepo{
		earnings:    db.Collection("earnings"),
		withdrawals: db.Collection("withdrawals"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create earnings indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoEarningsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.earnings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "jobId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = r.withdrawals.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

// CreateEarning inserts one earning record; the unique jobId index makes a
// duplicate payment confirmation a hard insert error rather than a double
// credit.
func (r *MongoEarningsRepo) CreateEarning(rec *models.EarningRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rec.CreatedAt = time.Now()
	if _, err := r.earnings.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create earning record: %w", err)
	}
	return nil
}

// ListEarnings returns a provider's earning records, newest first.
func (r *MongoEarningsRepo) ListEarnings(providerID string) ([]models.EarningRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.earnings.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list earnings: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.EarningRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode earnings: %w", err)
	}
	return records, nil
}

// CreateWithdrawal inserts a new withdrawal request.
func (r *MongoEarningsRepo) CreateWithdrawal(w *models.Withdrawal) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if _, err := r.withdrawals.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// ListWithdrawals returns a provider's withdrawal requests, newest first.
func (r *MongoEarningsRepo) ListWithdrawals(providerID string) ([]models.Withdrawal, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.withdrawals.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	defer cursor.Close(ctx)

	var ws []models.Withdrawal
	if err := cursor.All(ctx, &ws); err != nil {
		return nil, fmt.Errorf("failed to decode withdrawals: %w", err)
	}
	return ws, nil
}

// SetWithdrawalStatus conditionally moves a withdrawal between statuses.
func (r *MongoEarningsRepo) SetWithdrawalStatus(id string, from, to models.WithdrawalStatus) (*models.Withdrawal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var w models.Withdrawal
	err := r.withdrawals.FindOneAndUpdate(ctx, filter, update, opts).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update withdrawal %s: %w", id, err)
	}
	return &w, nil
}
