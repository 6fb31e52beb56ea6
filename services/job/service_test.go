package job

import (
	"context"
	"sync"
	"testing"
	"time"

	jobRepo "fixfresh/database/repository/job"
	"fixfresh/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memJobRepo mirrors the conditional-write semantics of the Mongo
// implementation so race behaviour can be exercised in-process.
type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *memJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *memJobRepo) GetByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) List(f jobRepo.Filter) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if f.ClientID != "" && j.ClientID != f.ClientID {
			continue
		}
		if f.ProviderID != "" && j.ProviderID != f.ProviderID {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (r *memJobRepo) Claim(jobID, providerID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	if j.Status != models.JobStatusRequested || j.ProviderID != "" {
		return nil, jobRepo.ErrConflict
	}
	j.ProviderID = providerID
	j.Status = models.JobStatusScheduled
	j.UpdatedAt = time.Now()
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) UpdateStatus(jobID string, from, to models.JobStatus, photos []string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	if j.Status != from {
		return nil, jobRepo.ErrConflict
	}
	j.Status = to
	j.Photos = append(j.Photos, photos...)
	j.UpdatedAt = time.Now()
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) SetRating(jobID string, rating int, review string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	if j.Status != models.JobStatusCompleted || j.Rating != 0 {
		return nil, jobRepo.ErrConflict
	}
	j.Rating = rating
	j.Review = review
	j.UpdatedAt = time.Now()
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) AppendPhotos(jobID string, status models.JobStatus, photos []string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	if j.Status != status {
		return nil, jobRepo.ErrConflict
	}
	j.Photos = append(j.Photos, photos...)
	j.UpdatedAt = time.Now()
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) RecordSplit(jobID string, paidAmount int64, split models.CommissionSplit) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	if j.Split != nil {
		return nil, jobRepo.ErrConflict
	}
	j.PaidAmount = paidAmount
	j.Split = &split
	j.UpdatedAt = time.Now()
	cp := *j
	return &cp, nil
}

// recordingPublisher captures every event the engine emits.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.JobEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event models.JobEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) all() []models.JobEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.JobEvent, len(p.events))
	copy(out, p.events)
	return out
}

var (
	client   = models.Actor{ID: "client-1", Role: models.RoleClient, ValidationStatus: models.ValidationApproved}
	provider = models.Actor{ID: "provider-1", Role: models.RoleProvider, ValidationStatus: models.ValidationApproved}
)

func newTestService() (*DefaultJobService, *memJobRepo, *recordingPublisher) {
	repo := newMemJobRepo()
	pub := &recordingPublisher{}
	return NewDefaultJobService(repo, pub, nil), repo, pub
}

func validRequest() CreateJobRequest {
	return CreateJobRequest{
		Title:         "Deep clean apartment",
		Address:       "Calle 50, Panama City",
		ServiceType:   models.ServiceCleaning,
		Category:      models.CategoryResidential,
		Price:         3200,
		ScheduledDate: time.Now().Add(48 * time.Hour),
	}
}

// seedJob plants a job directly in the repository in the given state.
func seedJob(repo *memJobRepo, id string, status models.JobStatus, providerID string) {
	repo.jobs[id] = &models.Job{
		ID:          id,
		ClientID:    client.ID,
		ProviderID:  providerID,
		Title:       "Seeded",
		Address:     "Somewhere",
		ServiceType: models.ServiceCleaning,
		Category:    models.CategoryResidential,
		Price:       5000,
		Status:      status,
	}
}

func TestCreateJob(t *testing.T) {
	svc, _, pub := newTestService()

	j, err := svc.CreateJob(context.Background(), client, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, client.ID, j.ClientID)
	assert.Equal(t, models.JobStatusRequested, j.Status)
	assert.Empty(t, j.ProviderID)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventJobCreated, events[0].Kind)
	assert.Equal(t, j.ID, events[0].JobID)
}

func TestCreateJobValidation(t *testing.T) {
	svc, _, pub := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateJobRequest)
	}{
		{"empty title", func(r *CreateJobRequest) { r.Title = "  " }},
		{"empty address", func(r *CreateJobRequest) { r.Address = "" }},
		{"zero price", func(r *CreateJobRequest) { r.Price = 0 }},
		{"negative price", func(r *CreateJobRequest) { r.Price = -100 }},
		{"unknown service type", func(r *CreateJobRequest) { r.ServiceType = "plumbing" }},
		{"unknown category", func(r *CreateJobRequest) { r.Category = "industrial" }},
		{"past scheduled date", func(r *CreateJobRequest) { r.ScheduledDate = time.Now().Add(-time.Hour) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.CreateJob(context.Background(), client, req)
			require.Error(t, err)
			assert.Equal(t, CodeValidation, ErrCode(err))
		})
	}
	assert.Empty(t, pub.all(), "rejected requests must not emit events")
}

func TestCreateJobRequiresClient(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateJob(context.Background(), provider, validRequest())
	require.Error(t, err)
	assert.Equal(t, CodeNotEligible, ErrCode(err))
}

func TestAcceptJob(t *testing.T) {
	svc, repo, pub := newTestService()
	seedJob(repo, "job-1", models.JobStatusRequested, "")

	j, err := svc.AcceptJob(context.Background(), provider, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusScheduled, j.Status)
	assert.Equal(t, provider.ID, j.ProviderID)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventJobAccepted, events[0].Kind)
	assert.Equal(t, models.JobStatusRequested, events[0].From)
	assert.Equal(t, models.JobStatusScheduled, events[0].To)
}

func TestAcceptJobRejections(t *testing.T) {
	svc, repo, _ := newTestService()
	seedJob(repo, "job-1", models.JobStatusRequested, "")

	_, err := svc.AcceptJob(context.Background(), client, "job-1")
	assert.Equal(t, CodeNotEligible, ErrCode(err))

	pending := models.Actor{ID: "provider-2", Role: models.RoleProvider, ValidationStatus: models.ValidationPending}
	_, err = svc.AcceptJob(context.Background(), pending, "job-1")
	assert.Equal(t, CodeNotValidated, ErrCode(err))

	_, err = svc.AcceptJob(context.Background(), provider, "missing")
	assert.Equal(t, CodeNotFound, ErrCode(err))

	_, err = svc.AcceptJob(context.Background(), provider, "job-1")
	require.NoError(t, err)
	other := models.Actor{ID: "provider-3", Role: models.RoleProvider, ValidationStatus: models.ValidationApproved}
	_, err = svc.AcceptJob(context.Background(), other, "job-1")
	assert.Equal(t, CodeAlreadyAccepted, ErrCode(err))
	assert.True(t, IsAlreadyAccepted(err))
}

func TestAcceptJobConcurrent(t *testing.T) {
	svc, repo, pub := newTestService()
	seedJob(repo, "job-1", models.JobStatusRequested, "")

	const contenders = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	losers := 0

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			actor := models.Actor{
				ID:               "provider-" + string(rune('a'+n)),
				Role:             models.RoleProvider,
				ValidationStatus: models.ValidationApproved,
			}
			_, err := svc.AcceptJob(context.Background(), actor, "job-1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners++
			} else if ErrCode(err) == CodeAlreadyAccepted {
				losers++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners, "exactly one provider must win the claim")
	assert.Equal(t, contenders-1, losers)
	assert.Len(t, pub.all(), 1, "only the winning accept emits an event")
}

func TestUpdateStatusForwardChain(t *testing.T) {
	svc, repo, pub := newTestService()
	seedJob(repo, "job-1", models.JobStatusScheduled, provider.ID)

	chain := []models.JobStatus{
		models.JobStatusEnRoute,
		models.JobStatusInProgress,
		models.JobStatusCompleted,
	}
	for _, target := range chain {
		j, err := svc.UpdateStatus(context.Background(), provider, "job-1", target, nil)
		require.NoError(t, err)
		assert.Equal(t, target, j.Status)
	}

	events := pub.all()
	require.Len(t, events, len(chain))
	for i, e := range events {
		assert.Equal(t, models.EventStatusChanged, e.Kind)
		assert.Equal(t, chain[i], e.To)
	}
}

func TestUpdateStatusRejections(t *testing.T) {
	svc, repo, _ := newTestService()

	t.Run("backward transition", func(t *testing.T) {
		seedJob(repo, "job-b", models.JobStatusInProgress, provider.ID)
		_, err := svc.UpdateStatus(context.Background(), provider, "job-b", models.JobStatusEnRoute, nil)
		assert.Equal(t, CodeInvalidTransition, ErrCode(err))
	})

	t.Run("skipping a state", func(t *testing.T) {
		seedJob(repo, "job-s", models.JobStatusScheduled, provider.ID)
		_, err := svc.UpdateStatus(context.Background(), provider, "job-s", models.JobStatusCompleted, nil)
		assert.Equal(t, CodeInvalidTransition, ErrCode(err))
	})

	t.Run("advancing a requested job", func(t *testing.T) {
		seedJob(repo, "job-r", models.JobStatusRequested, "")
		_, err := svc.UpdateStatus(context.Background(), provider, "job-r", models.JobStatusEnRoute, nil)
		assert.Equal(t, CodeNotOwner, ErrCode(err))
	})

	t.Run("wrong provider", func(t *testing.T) {
		seedJob(repo, "job-w", models.JobStatusScheduled, "someone-else")
		_, err := svc.UpdateStatus(context.Background(), provider, "job-w", models.JobStatusEnRoute, nil)
		assert.Equal(t, CodeNotOwner, ErrCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		seedJob(repo, "job-u", models.JobStatusScheduled, provider.ID)
		_, err := svc.UpdateStatus(context.Background(), provider, "job-u", "paused", nil)
		assert.Equal(t, CodeValidation, ErrCode(err))
	})

	t.Run("photos outside completion", func(t *testing.T) {
		seedJob(repo, "job-p", models.JobStatusScheduled, provider.ID)
		_, err := svc.UpdateStatus(context.Background(), provider, "job-p", models.JobStatusEnRoute, []string{"u"})
		assert.Equal(t, CodeValidation, ErrCode(err))
	})
}

func TestUpdateStatusCompletionPhotos(t *testing.T) {
	svc, repo, _ := newTestService()
	seedJob(repo, "job-1", models.JobStatusInProgress, provider.ID)

	j, err := svc.UpdateStatus(context.Background(), provider, "job-1", models.JobStatusCompleted, []string{"after-1.jpg", "after-2.jpg"})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, j.Status)
	assert.Equal(t, []string{"after-1.jpg", "after-2.jpg"}, j.Photos)
}

// raceyRepo flips the job's status between the engine's read and its
// conditional write, simulating a concurrent winner.
type raceyRepo struct {
	*memJobRepo
	interfere func()
}

func (r *raceyRepo) UpdateStatus(jobID string, from, to models.JobStatus, photos []string) (*models.Job, error) {
	r.interfere()
	return r.memJobRepo.UpdateStatus(jobID, from, to, photos)
}

func TestUpdateStatusStaleWrite(t *testing.T) {
	mem := newMemJobRepo()
	seedJob(mem, "job-1", models.JobStatusScheduled, provider.ID)
	repo := &raceyRepo{memJobRepo: mem, interfere: func() {
		mem.mu.Lock()
		mem.jobs["job-1"].Status = models.JobStatusEnRoute
		mem.mu.Unlock()
	}}
	svc := NewDefaultJobService(repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), provider, "job-1", models.JobStatusEnRoute, nil)
	assert.Equal(t, CodeStaleWrite, ErrCode(err))
}

func TestCancelJob(t *testing.T) {
	svc, repo, pub := newTestService()
	seedJob(repo, "job-1", models.JobStatusRequested, "")

	j, err := svc.CancelJob(context.Background(), client, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, j.Status)

	// Cancelling again is a no-op and emits nothing new.
	j, err = svc.CancelJob(context.Background(), client, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, j.Status)
	assert.Len(t, pub.all(), 1)
	assert.Equal(t, models.EventJobCancelled, pub.all()[0].Kind)
}

func TestCancelJobByProvider(t *testing.T) {
	svc, repo, _ := newTestService()
	seedJob(repo, "job-1", models.JobStatusEnRoute, provider.ID)

	j, err := svc.CancelJob(context.Background(), provider, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, j.Status)
}

func TestCancelJobRejections(t *testing.T) {
	svc, repo, _ := newTestService()

	seedJob(repo, "job-done", models.JobStatusCompleted, provider.ID)
	_, err := svc.CancelJob(context.Background(), client, "job-done")
	assert.Equal(t, CodeInvalidTransition, ErrCode(err))

	seedJob(repo, "job-1", models.JobStatusScheduled, provider.ID)
	stranger := models.Actor{ID: "stranger", Role: models.RoleClient}
	_, err = svc.CancelJob(context.Background(), stranger, "job-1")
	assert.Equal(t, CodeNotOwner, ErrCode(err))
}

func TestSubmitRating(t *testing.T) {
	svc, repo, pub := newTestService()
	seedJob(repo, "job-1", models.JobStatusCompleted, provider.ID)

	j, err := svc.SubmitRating(context.Background(), client, "job-1", 5, "Spotless.")
	require.NoError(t, err)
	assert.Equal(t, 5, j.Rating)
	assert.Equal(t, "Spotless.", j.Review)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventJobRated, events[0].Kind)

	// Ratings are set-once.
	_, err = svc.SubmitRating(context.Background(), client, "job-1", 3, "changed my mind")
	assert.Equal(t, CodeNotEligible, ErrCode(err))
	assert.Len(t, pub.all(), 1)
}

func TestSubmitRatingRejections(t *testing.T) {
	svc, repo, _ := newTestService()
	seedJob(repo, "job-1", models.JobStatusCompleted, provider.ID)

	for _, bad := range []int{0, -1, 6, 100} {
		_, err := svc.SubmitRating(context.Background(), client, "job-1", bad, "")
		assert.Equal(t, CodeOutOfRange, ErrCode(err), "rating %d must be out of range", bad)
	}

	_, err := svc.SubmitRating(context.Background(), provider, "job-1", 4, "")
	assert.Equal(t, CodeNotOwner, ErrCode(err))

	seedJob(repo, "job-open", models.JobStatusInProgress, provider.ID)
	_, err = svc.SubmitRating(context.Background(), client, "job-open", 4, "")
	assert.Equal(t, CodeNotEligible, ErrCode(err))
}

func TestAttachPhotos(t *testing.T) {
	svc, repo, pub := newTestService()
	seedJob(repo, "job-1", models.JobStatusInProgress, provider.ID)

	j, err := svc.AttachPhotos(context.Background(), provider, "job-1", []string{"progress.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"progress.jpg"}, j.Photos)
	assert.Empty(t, pub.all(), "photo appends are not lifecycle events")

	_, err = svc.AttachPhotos(context.Background(), provider, "job-1", nil)
	assert.Equal(t, CodeValidation, ErrCode(err))

	seedJob(repo, "job-done", models.JobStatusCompleted, provider.ID)
	_, err = svc.AttachPhotos(context.Background(), provider, "job-done", []string{"late.jpg"})
	assert.Equal(t, CodeNotEligible, ErrCode(err))

	_, err = svc.AttachPhotos(context.Background(), client, "job-1", []string{"x.jpg"})
	assert.Equal(t, CodeNotOwner, ErrCode(err))
}

func TestListJobsScoping(t *testing.T) {
	svc, repo, _ := newTestService()
	seedJob(repo, "mine", models.JobStatusRequested, "")
	seedJob(repo, "assigned", models.JobStatusScheduled, provider.ID)
	repo.jobs["other"] = &models.Job{ID: "other", ClientID: "client-2", Status: models.JobStatusRequested}

	mine, err := svc.ListJobs(context.Background(), client, jobRepo.Filter{})
	require.NoError(t, err)
	for _, j := range mine {
		assert.Equal(t, client.ID, j.ClientID)
	}
	assert.Len(t, mine, 2)

	pool, err := svc.ListJobs(context.Background(), provider, jobRepo.Filter{Status: models.JobStatusRequested})
	require.NoError(t, err)
	assert.Len(t, pool, 2, "providers browse the whole open pool")

	own, err := svc.ListJobs(context.Background(), provider, jobRepo.Filter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "assigned", own[0].ID)

	admin := models.Actor{ID: "back-office", Role: models.RoleAdmin}
	all, err := svc.ListJobs(context.Background(), admin, jobRepo.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
