package job

import (
	"context"
	"time"

	jobRepo "fixfresh/database/repository/job"
	"fixfresh/models"
	"fixfresh/services/notification"

	"go.uber.org/zap"
)

// CreateJobRequest carries the client-supplied fields for a new job. Price
// is in minor currency units and is fixed at creation; offer and discount
// logic runs before the job ever reaches the engine.
type CreateJobRequest struct {
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description"`
	Address       string             `json:"address" binding:"required"`
	ServiceType   models.ServiceType `json:"serviceType" binding:"required"`
	Category      models.JobCategory `json:"category" binding:"required"`
	Price         int64              `json:"price" binding:"required"`
	ScheduledDate time.Time          `json:"scheduledDate" binding:"required"`
}

// JobService is the job lifecycle engine. Every call takes the acting
// identity explicitly; there is no ambient session state.
type JobService interface {
	CreateJob(ctx context.Context, actor models.Actor, req CreateJobRequest) (*models.Job, error)
	AcceptJob(ctx context.Context, actor models.Actor, jobID string) (*models.Job, error)
	UpdateStatus(ctx context.Context, actor models.Actor, jobID string, target models.JobStatus, photos []string) (*models.Job, error)
	CancelJob(ctx context.Context, actor models.Actor, jobID string) (*models.Job, error)
	SubmitRating(ctx context.Context, actor models.Actor, jobID string, rating int, review string) (*models.Job, error)
	AttachPhotos(ctx context.Context, actor models.Actor, jobID string, photos []string) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, actor models.Actor, f jobRepo.Filter) ([]models.Job, error)
}

// DefaultJobService implements JobService on top of the persistence and
// notification boundaries.
type DefaultJobService struct {
	Repo     jobRepo.JobRepository
	Notifier notification.Publisher
	Logger   *zap.Logger
}

// NewDefaultJobService wires the engine.
func NewDefaultJobService(repo jobRepo.JobRepository, notifier notification.Publisher, logger *zap.Logger) *DefaultJobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultJobService{Repo: repo, Notifier: notifier, Logger: logger}
}
