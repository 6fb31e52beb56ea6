package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	jobRepo "fixfresh/database/repository/job"
	"fixfresh/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateJob validates the request and creates a job in the requested state.
func (s *DefaultJobService) CreateJob(ctx context.Context, actor models.Actor, req CreateJobRequest) (*models.Job, error) {
	if actor.Role != models.RoleClient {
		return nil, newError(CodeNotEligible, "only clients can create jobs")
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	j := &models.Job{
		ID:            uuid.New().String(),
		ClientID:      actor.ID,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		ServiceType:   req.ServiceType,
		Category:      req.Category,
		Price:         req.Price,
		ScheduledDate: req.ScheduledDate,
		Status:        models.JobStatusRequested,
	}
	if err := s.Repo.Create(j); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.publish(ctx, j, models.EventJobCreated, "", models.JobStatusRequested, actor.ID)
	return j, nil
}

// AcceptJob assigns a validated provider to a still-open job. The
// assignment is a single conditional write, so concurrent accepts resolve
// with exactly one winner.
func (s *DefaultJobService) AcceptJob(ctx context.Context, actor models.Actor, jobID string) (*models.Job, error) {
	if actor.Role != models.RoleProvider {
		return nil, newError(CodeNotEligible, "only providers can accept jobs")
	}
	if !actor.Validated() {
		return nil, newError(CodeNotValidated, "provider %s is not validated", actor.ID)
	}

	j, err := s.Repo.Claim(jobID, actor.ID)
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", jobID)
	}
	if errors.Is(err, jobRepo.ErrConflict) {
		return nil, newError(CodeAlreadyAccepted, "job %s was already accepted", jobID)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, j, models.EventJobAccepted, models.JobStatusRequested, models.JobStatusScheduled, actor.ID)
	return j, nil
}

// UpdateStatus advances a job along the provider execution path. Any edge
// outside the transition table is rejected and leaves the status unchanged.
func (s *DefaultJobService) UpdateStatus(ctx context.Context, actor models.Actor, jobID string, target models.JobStatus, photos []string) (*models.Job, error) {
	if target == models.JobStatusCancelled {
		return s.CancelJob(ctx, actor, jobID)
	}
	if !target.Valid() {
		return nil, newError(CodeValidation, "unknown status %q", target)
	}
	if len(photos) > 0 && target != models.JobStatusCompleted {
		return nil, newError(CodeValidation, "photos can only accompany completion")
	}

	j, err := s.getJob(jobID)
	if err != nil {
		return nil, err
	}
	if j.ProviderID == "" || j.ProviderID != actor.ID {
		return nil, newError(CodeNotOwner, "actor %s is not the assigned provider", actor.ID)
	}
	if !canAdvance(j.Status, target) {
		return nil, newError(CodeInvalidTransition, "cannot move job from %s to %s", j.Status, target)
	}

	from := j.Status
	updated, err := s.Repo.UpdateStatus(jobID, from, target, photos)
	if errors.Is(err, jobRepo.ErrConflict) {
		return nil, newError(CodeStaleWrite, "job %s changed concurrently", jobID)
	}
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated, models.EventStatusChanged, from, target, actor.ID)
	return updated, nil
}

// CancelJob terminates a job from any non-terminal state. Either owning
// party may cancel; cancelling an already-cancelled job is a no-op.
func (s *DefaultJobService) CancelJob(ctx context.Context, actor models.Actor, jobID string) (*models.Job, error) {
	j, err := s.getJob(jobID)
	if err != nil {
		return nil, err
	}
	if j.Status == models.JobStatusCancelled {
		return j, nil
	}
	if j.Status == models.JobStatusCompleted {
		return nil, newError(CodeInvalidTransition, "cannot cancel a completed job")
	}
	if !j.OwnedBy(actor.ID) {
		return nil, newError(CodeNotOwner, "actor %s does not own job %s", actor.ID, jobID)
	}

	from := j.Status
	updated, err := s.Repo.UpdateStatus(jobID, from, models.JobStatusCancelled, nil)
	if errors.Is(err, jobRepo.ErrConflict) {
		// The other owner may have cancelled first; that still counts.
		current, gerr := s.getJob(jobID)
		if gerr == nil && current.Status == models.JobStatusCancelled {
			return current, nil
		}
		return nil, newError(CodeStaleWrite, "job %s changed concurrently", jobID)
	}
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated, models.EventJobCancelled, from, models.JobStatusCancelled, actor.ID)
	return updated, nil
}

// SubmitRating records the client's one-time rating of a completed job.
func (s *DefaultJobService) SubmitRating(ctx context.Context, actor models.Actor, jobID string, rating int, review string) (*models.Job, error) {
	if rating < 1 || rating > 5 {
		return nil, newError(CodeOutOfRange, "rating must be between 1 and 5, got %d", rating)
	}

	j, err := s.getJob(jobID)
	if err != nil {
		return nil, err
	}
	if actor.ID != j.ClientID {
		return nil, newError(CodeNotOwner, "only the client who created the job can rate it")
	}
	if j.Status != models.JobStatusCompleted || j.Rated() {
		return nil, newError(CodeNotEligible, "job %s is not eligible for rating", jobID)
	}

	updated, err := s.Repo.SetRating(jobID, rating, review)
	if errors.Is(err, jobRepo.ErrConflict) {
		return nil, newError(CodeNotEligible, "job %s is not eligible for rating", jobID)
	}
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated, models.EventJobRated, models.JobStatusCompleted, models.JobStatusCompleted, actor.ID)
	return updated, nil
}

// AttachPhotos appends photo references while the job is still in an active
// accepted state. Appends are not lifecycle transitions and emit no event.
func (s *DefaultJobService) AttachPhotos(ctx context.Context, actor models.Actor, jobID string, photos []string) (*models.Job, error) {
	if len(photos) == 0 {
		return nil, newError(CodeValidation, "no photos supplied")
	}

	j, err := s.getJob(jobID)
	if err != nil {
		return nil, err
	}
	if j.ProviderID == "" || j.ProviderID != actor.ID {
		return nil, newError(CodeNotOwner, "actor %s is not the assigned provider", actor.ID)
	}
	if !photosAllowed(j.Status) {
		return nil, newError(CodeNotEligible, "photos cannot be added to a %s job", j.Status)
	}

	updated, err := s.Repo.AppendPhotos(jobID, j.Status, photos)
	if errors.Is(err, jobRepo.ErrConflict) {
		return nil, newError(CodeStaleWrite, "job %s changed concurrently", jobID)
	}
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetJob fetches a single job.
func (s *DefaultJobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	return s.getJob(jobID)
}

// ListJobs returns jobs visible to the actor. Clients see their own jobs;
// providers see their assigned jobs or the open requested pool; admins see
// whatever the filter asks for.
func (s *DefaultJobService) ListJobs(ctx context.Context, actor models.Actor, f jobRepo.Filter) ([]models.Job, error) {
	switch actor.Role {
	case models.RoleClient:
		f.ClientID = actor.ID
	case models.RoleProvider:
		if f.Status != models.JobStatusRequested {
			f.ProviderID = actor.ID
		}
	case models.RoleAdmin:
		// Unrestricted.
	default:
		return nil, newError(CodeNotEligible, "unknown role %q", actor.Role)
	}

	jobs, err := s.Repo.List(f)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (s *DefaultJobService) getJob(jobID string) (*models.Job, error) {
	j, err := s.Repo.GetByID(jobID)
	if errors.Is(err, jobRepo.ErrNotFound) {
		return nil, newError(CodeNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job %s: %w", jobID, err)
	}
	return j, nil
}

// publish emits exactly one lifecycle event after a committed mutation.
// Delivery failures are logged, not propagated; the state change already
// happened.
func (s *DefaultJobService) publish(ctx context.Context, j *models.Job, kind models.JobEventKind, from, to models.JobStatus, actorID string) {
	if s.Notifier == nil {
		return
	}
	event := models.JobEvent{
		JobID:      j.ID,
		Kind:       kind,
		From:       from,
		To:         to,
		ActorID:    actorID,
		ClientID:   j.ClientID,
		ProviderID: j.ProviderID,
		Timestamp:  time.Now(),
	}
	if err := s.Notifier.Publish(ctx, event); err != nil {
		s.Logger.Error("failed to publish job event",
			zap.String("jobId", j.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}
