package jobRepo

import (
	"errors"

	"fixfresh/models"
)

// Sentinel errors returned by conditional operations. ErrConflict means the
// document exists but the expected fields no longer match, i.e. a concurrent
// writer won the race.
var (
	ErrNotFound = errors.New("job not found")
	ErrConflict = errors.New("job conditional update conflict")
)

// Filter narrows job listings. Zero values are ignored.
type Filter struct {
	ClientID   string
	ProviderID string
	Status     models.JobStatus
}

// JobRepository is the persistence boundary for jobs. Every mutation is a
// single conditional write; there are no blind overwrites of lifecycle
// fields.
type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id string) (*models.Job, error)
	List(f Filter) ([]models.Job, error)

	// Claim atomically assigns a provider to a still-unassigned requested
	// job and moves it to scheduled. Returns ErrConflict if another
	// provider already claimed it.
	Claim(jobID, providerID string) (*models.Job, error)

	// UpdateStatus moves the job from one exact status to another,
	// optionally appending photos in the same write. Returns ErrConflict
	// if the job is no longer in the expected from status.
	UpdateStatus(jobID string, from, to models.JobStatus, photos []string) (*models.Job, error)

	// SetRating records the one-time rating on a completed, unrated job.
	SetRating(jobID string, rating int, review string) (*models.Job, error)

	// AppendPhotos appends photo references to a job in the given status.
	AppendPhotos(jobID string, status models.JobStatus, photos []string) (*models.Job, error)

	// RecordSplit stores the commission split and paid amount once.
	RecordSplit(jobID string, paidAmount int64, split models.CommissionSplit) (*models.Job, error)
}
