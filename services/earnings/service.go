package earnings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	earningsRepo "fixfresh/database/repository/earnings"
	"fixfresh/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient available earnings")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation error")
)

// Summary aggregates a provider's earnings for reporting. All amounts are
// minor currency units.
type Summary struct {
	ProviderID         string `json:"providerId"`
	TotalEarned        int64  `json:"totalEarned"`
	TotalCommission    int64  `json:"totalCommission"`
	PaidJobs           int    `json:"paidJobs"`
	Withdrawn          int64  `json:"withdrawn"`
	PendingWithdrawals int64  `json:"pendingWithdrawals"`
	Available          int64  `json:"available"`
}

// WithdrawalRequest carries a provider's payout request.
type WithdrawalRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
	BankAccount   string `json:"bankAccount" binding:"required"`
	AccountHolder string `json:"accountHolder" binding:"required"`
}

// EarningsService reports provider earnings and manages withdrawals.
type EarningsService interface {
	Summary(ctx context.Context, actor models.Actor, providerID string) (*Summary, error)
	ListEarnings(ctx context.Context, actor models.Actor, providerID string) ([]models.EarningRecord, error)
	RequestWithdrawal(ctx context.Context, actor models.Actor, req WithdrawalRequest) (*models.Withdrawal, error)
	ListWithdrawals(ctx context.Context, actor models.Actor, providerID string) ([]models.Withdrawal, error)
}

// DefaultEarningsService implements EarningsService.
type DefaultEarningsService struct {
	Repo earningsRepo.EarningsRepository
}

func NewDefaultEarningsService(repo earningsRepo.EarningsRepository) *DefaultEarningsService {
	return &DefaultEarningsService{Repo: repo}
}

// authorize lets a provider see only their own figures; admins see anyone's.
func authorize(actor models.Actor, providerID string) (string, error) {
	if actor.Role == models.RoleAdmin {
		if providerID == "" {
			return "", ErrValidation
		}
		return providerID, nil
	}
	if actor.Role != models.RoleProvider {
		return "", ErrForbidden
	}
	if providerID != "" && providerID != actor.ID {
		return "", ErrForbidden
	}
	return actor.ID, nil
}

// Summary computes totals from the earning records minus withdrawals.
func (s *DefaultEarningsService) Summary(ctx context.Context, actor models.Actor, providerID string) (*Summary, error) {
	id, err := authorize(actor, providerID)
	if err != nil {
		return nil, err
	}

	records, err := s.Repo.ListEarnings(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load earnings for %s: %w", id, err)
	}
	withdrawals, err := s.Repo.ListWithdrawals(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawals for %s: %w", id, err)
	}

	sum := &Summary{ProviderID: id}
	for _, rec := range records {
		sum.TotalEarned += rec.Amount
		sum.TotalCommission += rec.Commission
		sum.PaidJobs++
	}
	for _, w := range withdrawals {
		switch w.Status {
		case models.WithdrawalPaid:
			sum.Withdrawn += w.Amount
		case models.WithdrawalPending:
			sum.PendingWithdrawals += w.Amount
		}
	}
	sum.Available = sum.TotalEarned - sum.Withdrawn - sum.PendingWithdrawals
	return sum, nil
}

// ListEarnings returns the provider's raw earning records.
func (s *DefaultEarningsService) ListEarnings(ctx context.Context, actor models.Actor, providerID string) ([]models.EarningRecord, error) {
	id, err := authorize(actor, providerID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListEarnings(id)
}

// RequestWithdrawal creates a pending payout request, capped by the
// provider's available balance.
func (s *DefaultEarningsService) RequestWithdrawal(ctx context.Context, actor models.Actor, req WithdrawalRequest) (*models.Withdrawal, error) {
	if actor.Role != models.RoleProvider {
		return nil, ErrForbidden
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(req.BankName) == "" || strings.TrimSpace(req.BankAccount) == "" || strings.TrimSpace(req.AccountHolder) == "" {
		return nil, ErrValidation
	}

	sum, err := s.Summary(ctx, actor, actor.ID)
	if err != nil {
		return nil, err
	}
	if req.Amount > sum.Available {
		return nil, ErrInsufficientFunds
	}

	w := &models.Withdrawal{
		ID:            uuid.New().String(),
		ProviderID:    actor.ID,
		Amount:        req.Amount,
		BankName:      req.BankName,
		BankAccount:   req.BankAccount,
		AccountHolder: req.AccountHolder,
		Status:        models.WithdrawalPending,
	}
	if err := s.Repo.CreateWithdrawal(w); err != nil {
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return w, nil
}

// ListWithdrawals returns the provider's withdrawal history.
func (s *DefaultEarningsService) ListWithdrawals(ctx context.Context, actor models.Actor, providerID string) ([]models.Withdrawal, error) {
	id, err := authorize(actor, providerID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListWithdrawals(id)
}
