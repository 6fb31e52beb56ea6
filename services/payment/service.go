package payment

import (
	"context"
	"errors"
	"time"

	earningsRepo "fixfresh/database/repository/earnings"
	jobRepo "fixfresh/database/repository/job"
	"fixfresh/models"
	"fixfresh/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService reacts to confirmed payments from the external gateway.
// It never initiates or verifies payment; it records the commission split
// computed from the authoritative paid amount.
type PaymentService interface {
	OnPaymentConfirmed(ctx context.Context, conf models.PaymentConfirmation) (*models.Job, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Jobs     jobRepo.JobRepository
	Earnings earningsRepo.EarningsRepository
	Notifier notification.Publisher
	Rate     float64
	Logger   *zap.Logger
}

// NewDefaultPaymentService wires the commission engine. A rate of 0 falls
// back to the platform default.
func NewDefaultPaymentService(jobs jobRepo.JobRepository, earnings earningsRepo.EarningsRepository, notifier notification.Publisher, rate float64, logger *zap.Logger) *DefaultPaymentService {
	if rate == 0 {
		rate = DefaultCommissionRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultPaymentService{
		Jobs:     jobs,
		Earnings: earnings,
		Notifier: notifier,
		Rate:     rate,
		Logger:   logger,
	}
}

// OnPaymentConfirmed records the split for a paid job and appends the
// provider's earning record. The split write is conditional on no split
// existing yet, so a replayed confirmation cannot double-credit.
func (s *DefaultPaymentService) OnPaymentConfirmed(ctx context.Context, conf models.PaymentConfirmation) (*models.Job, error) {
	if conf.PaidAmount <= 0 {
		return nil, newError(CodeValidation, "paid amount must be positive, got %d", conf.PaidAmount)
	}

	j, err := s.Jobs.GetByID(conf.JobID)
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", conf.JobID)
	}
	if err != nil {
		return nil, err
	}
	if j.ProviderID == "" {
		return nil, newError(CodeNotEligible, "job %s has no assigned provider", conf.JobID)
	}
	if j.Split != nil {
		return nil, newError(CodeNotEligible, "payment for job %s was already recorded", conf.JobID)
	}

	split, err := ComputeSplit(conf.PaidAmount, s.Rate)
	if err != nil {
		return nil, err
	}

	updated, err := s.Jobs.RecordSplit(conf.JobID, conf.PaidAmount, split)
	if errors.Is(err, jobRepo.ErrConflict) {
		return nil, newError(CodeStaleWrite, "payment for job %s was already recorded", conf.JobID)
	}
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", conf.JobID)
	}
	if err != nil {
		return nil, err
	}

	record := &models.EarningRecord{
		ID:            uuid.New().String(),
		JobID:         updated.ID,
		ProviderID:    updated.ProviderID,
		Amount:        split.ProviderEarnings,
		Commission:    split.PlatformCommission,
		PaidAmount:    conf.PaidAmount,
		TransactionID: conf.TransactionID,
	}
	if err := s.Earnings.CreateEarning(record); err != nil {
		// The split is already on the job; surface the ledger failure
		// loudly but do not roll back the authoritative record.
		s.Logger.Error("failed to append earning record",
			zap.String("jobId", updated.ID), zap.Error(err))
	}

	s.publish(ctx, updated)
	return updated, nil
}

func (s *DefaultPaymentService) publish(ctx context.Context, j *models.Job) {
	if s.Notifier == nil {
		return
	}
	event := models.JobEvent{
		JobID:      j.ID,
		Kind:       models.EventPaymentRecorded,
		From:       j.Status,
		To:         j.Status,
		ClientID:   j.ClientID,
		ProviderID: j.ProviderID,
		Timestamp:  time.Now(),
	}
	if err := s.Notifier.Publish(ctx, event); err != nil {
		s.Logger.Error("failed to publish payment event",
			zap.String("jobId", j.ID), zap.Error(err))
	}
}
