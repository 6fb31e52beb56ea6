package models

import "time"

// CommissionSplit is the platform/provider division of a job's paid amount.
// It is derived, never stored independently of the price that produced it:
// PlatformCommission is rounded first and ProviderEarnings is the remainder,
// so the two always sum back to the paid amount exactly.
type CommissionSplit struct {
	PlatformCommission int64   `bson:"platformCommission" json:"platformCommission"` // Minor currency units.
	ProviderEarnings   int64   `bson:"providerEarnings" json:"providerEarnings"`     // Minor currency units.
	Rate               float64 `bson:"rate" json:"rate"`
}

// PaymentConfirmation is the inbound signal from the payment gateway. The
// engine never initiates or verifies payment; it only reacts to this.
type PaymentConfirmation struct {
	JobID         string `json:"jobId" binding:"required"`
	PaidAmount    int64  `json:"paidAmount" binding:"required"` // Authoritative, minor currency units.
	TransactionID string `json:"transactionId,omitempty"`
}

// EarningRecord is written once per confirmed payment and feeds the
// provider earnings reports.
type EarningRecord struct {
	ID            string    `bson:"id" json:"id"`
	JobID         string    `bson:"jobId" json:"jobId"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	Amount        int64     `bson:"amount" json:"amount"`         // Provider earnings, minor currency units.
	Commission    int64     `bson:"commission" json:"commission"` // Platform cut, minor currency units.
	PaidAmount    int64     `bson:"paidAmount" json:"paidAmount"`
	TransactionID string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// WithdrawalStatus tracks a payout request through back-office processing.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalPaid     WithdrawalStatus = "paid"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a provider's request to pay out accumulated earnings.
type Withdrawal struct {
	ID            string           `bson:"id" json:"id"`
	ProviderID    string           `bson:"providerId" json:"providerId"`
	Amount        int64            `bson:"amount" json:"amount"` // Minor currency units.
	BankName      string           `bson:"bankName" json:"bankName"`
	BankAccount   string           `bson:"bankAccount" json:"bankAccount"`
	AccountHolder string           `bson:"accountHolder" json:"accountHolder"`
	Status        WithdrawalStatus `bson:"status" json:"status"`
	CreatedAt     time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time        `bson:"updatedAt" json:"updatedAt"`
}
