package earnings

import (
	"context"
	"sync"
	"testing"

	"fixfresh/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEarningsRepo struct {
	mu          sync.Mutex
	earnings    []models.EarningRecord
	withdrawals []models.Withdrawal
}

func (r *memEarningsRepo) CreateEarning(rec *models.EarningRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.earnings = append(r.earnings, *rec)
	return nil
}

func (r *memEarningsRepo) ListEarnings(providerID string) ([]models.EarningRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EarningRecord
	for _, rec := range r.earnings {
		if rec.ProviderID == providerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memEarningsRepo) CreateWithdrawal(w *models.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withdrawals = append(r.withdrawals, *w)
	return nil
}

func (r *memEarningsRepo) ListWithdrawals(providerID string) ([]models.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Withdrawal
	for _, w := range r.withdrawals {
		if w.ProviderID == providerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memEarningsRepo) SetWithdrawalStatus(id string, from, to models.WithdrawalStatus) (*models.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.withdrawals {
		if r.withdrawals[i].ID == id && r.withdrawals[i].Status == from {
			r.withdrawals[i].Status = to
			cp := r.withdrawals[i]
			return &cp, nil
		}
	}
	return nil, nil
}

var providerActor = models.Actor{ID: "provider-1", Role: models.RoleProvider, ValidationStatus: models.ValidationApproved}

func seededService() (*DefaultEarningsService, *memEarningsRepo) {
	repo := &memEarningsRepo{
		earnings: []models.EarningRecord{
			{ID: "e1", JobID: "j1", ProviderID: "provider-1", Amount: 2560, Commission: 640, PaidAmount: 3200},
			{ID: "e2", JobID: "j2", ProviderID: "provider-1", Amount: 4000, Commission: 1000, PaidAmount: 5000},
			{ID: "e3", JobID: "j3", ProviderID: "provider-2", Amount: 800, Commission: 200, PaidAmount: 1000},
		},
		withdrawals: []models.Withdrawal{
			{ID: "w1", ProviderID: "provider-1", Amount: 1000, Status: models.WithdrawalPaid},
			{ID: "w2", ProviderID: "provider-1", Amount: 500, Status: models.WithdrawalPending},
			{ID: "w3", ProviderID: "provider-1", Amount: 300, Status: models.WithdrawalRejected},
		},
	}
	return NewDefaultEarningsService(repo), repo
}

func TestSummary(t *testing.T) {
	svc, _ := seededService()

	sum, err := svc.Summary(context.Background(), providerActor, "")
	require.NoError(t, err)
	assert.Equal(t, "provider-1", sum.ProviderID)
	assert.Equal(t, int64(6560), sum.TotalEarned)
	assert.Equal(t, int64(1640), sum.TotalCommission)
	assert.Equal(t, 2, sum.PaidJobs)
	assert.Equal(t, int64(1000), sum.Withdrawn)
	assert.Equal(t, int64(500), sum.PendingWithdrawals)
	assert.Equal(t, int64(5060), sum.Available, "rejected withdrawals do not reduce the balance")
}

func TestSummaryAuthorization(t *testing.T) {
	svc, _ := seededService()

	// A provider cannot read another provider's figures.
	_, err := svc.Summary(context.Background(), providerActor, "provider-2")
	assert.ErrorIs(t, err, ErrForbidden)

	clientActor := models.Actor{ID: "client-1", Role: models.RoleClient}
	_, err = svc.Summary(context.Background(), clientActor, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins must name the provider they want.
	admin := models.Actor{ID: "back-office", Role: models.RoleAdmin}
	_, err = svc.Summary(context.Background(), admin, "")
	assert.ErrorIs(t, err, ErrValidation)

	sum, err := svc.Summary(context.Background(), admin, "provider-2")
	require.NoError(t, err)
	assert.Equal(t, int64(800), sum.TotalEarned)
}

func TestRequestWithdrawal(t *testing.T) {
	svc, repo := seededService()

	w, err := svc.RequestWithdrawal(context.Background(), providerActor, WithdrawalRequest{
		Amount:        2000,
		BankName:      "Banco General",
		BankAccount:   "04-99-123456",
		AccountHolder: "Luis Herrera",
	})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, w.Status)
	assert.Equal(t, "provider-1", w.ProviderID)

	// The new pending request reduces what is available next time.
	sum, err := svc.Summary(context.Background(), providerActor, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3060), sum.Available)

	require.Len(t, repo.withdrawals, 4)
}

func TestRequestWithdrawalRejections(t *testing.T) {
	svc, _ := seededService()

	valid := WithdrawalRequest{
		Amount:        100,
		BankName:      "Banco General",
		BankAccount:   "04-99-123456",
		AccountHolder: "Luis Herrera",
	}

	over := valid
	over.Amount = 5061 // one unit above what is available
	_, err := svc.RequestWithdrawal(context.Background(), providerActor, over)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	zero := valid
	zero.Amount = 0
	_, err = svc.RequestWithdrawal(context.Background(), providerActor, zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	noBank := valid
	noBank.BankName = "  "
	_, err = svc.RequestWithdrawal(context.Background(), providerActor, noBank)
	assert.ErrorIs(t, err, ErrValidation)

	clientActor := models.Actor{ID: "client-1", Role: models.RoleClient}
	_, err = svc.RequestWithdrawal(context.Background(), clientActor, valid)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListEarningsAndWithdrawals(t *testing.T) {
	svc, _ := seededService()

	recs, err := svc.ListEarnings(context.Background(), providerActor, "")
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	ws, err := svc.ListWithdrawals(context.Background(), providerActor, "")
	require.NoError(t, err)
	assert.Len(t, ws, 3)
}
