package earningsRepo

import (
	"errors"

	"fixfresh/models"
)

var ErrNotFound = errors.New("record not found")

// EarningsRepository stores per-payment earning records and withdrawal
// requests for provider earnings reporting.
type EarningsRepository interface {
	CreateEarning(rec *models.EarningRecord) error
	ListEarnings(providerID string) ([]models.EarningRecord, error)

	CreateWithdrawal(w *models.Withdrawal) error
	ListWithdrawals(providerID string) ([]models.Withdrawal, error)
	SetWithdrawalStatus(id string, from, to models.WithdrawalStatus) (*models.Withdrawal, error)
}
