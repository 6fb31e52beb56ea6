package models

import "time"

// JobStatus is the closed set of lifecycle states for a job.
type JobStatus string

const (
	JobStatusRequested  JobStatus = "requested"
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusEnRoute    JobStatus = "en-route"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether the status is an end state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// Valid reports whether the status is a known lifecycle state.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusRequested, JobStatusScheduled, JobStatusEnRoute,
		JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// ServiceType enumerates the kinds of work a job can request.
type ServiceType string

const (
	ServiceCleaning   ServiceType = "cleaning"
	ServiceRestocking ServiceType = "restocking"
	ServiceRepair     ServiceType = "repair"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceCleaning, ServiceRestocking, ServiceRepair:
		return true
	}
	return false
}

// JobCategory groups services for browsing and pricing.
type JobCategory string

const (
	CategoryResidential JobCategory = "residential"
	CategoryCommercial  JobCategory = "commercial"
	CategorySpecialty   JobCategory = "specialty"
	CategoryMaintenance JobCategory = "maintenance"
	CategoryBundle      JobCategory = "bundle"
)

func (c JobCategory) Valid() bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategorySpecialty,
		CategoryMaintenance, CategoryBundle:
		return true
	}
	return false
}

// Job represents a single requested unit of service work tracked through
// its lifecycle. Price is stored in minor currency units (cents) so the
// commission split always sums back to it exactly.
type Job struct {
	ID            string           `bson:"id" json:"id"`
	ClientID      string           `bson:"clientId" json:"clientId"`                     // Creator; immutable after creation.
	ProviderID    string           `bson:"providerId" json:"providerId,omitempty"`       // Empty until accepted; set exactly once.
	Title         string           `bson:"title" json:"title"`
	Description   string           `bson:"description" json:"description,omitempty"`
	Address       string           `bson:"address" json:"address"`
	ServiceType   ServiceType      `bson:"serviceType" json:"serviceType"`
	Category      JobCategory      `bson:"category" json:"category"`
	Price         int64            `bson:"price" json:"price"` // Minor currency units; fixed at creation.
	ScheduledDate time.Time        `bson:"scheduledDate" json:"scheduledDate"`
	Status        JobStatus        `bson:"status" json:"status"`
	Photos        []string         `bson:"photos,omitempty" json:"photos,omitempty"` // Append-only until completion.
	Rating        int              `bson:"rating,omitempty" json:"rating,omitempty"` // 0 means unrated; valid range 1..5.
	Review        string           `bson:"review,omitempty" json:"review,omitempty"`
	PaidAmount    int64            `bson:"paidAmount,omitempty" json:"paidAmount,omitempty"` // Authoritative amount from the payment boundary.
	Split         *CommissionSplit `bson:"split,omitempty" json:"split,omitempty"`           // Recorded once when payment is confirmed.
	CreatedAt     time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// Rated reports whether the client already submitted a rating.
func (j *Job) Rated() bool {
	return j.Rating != 0
}

// OwnedBy reports whether the given actor id is the client who created the
// job or the provider assigned to it.
func (j *Job) OwnedBy(actorID string) bool {
	return actorID != "" && (actorID == j.ClientID || actorID == j.ProviderID)
}
