package handlers

import (
	"io"
	"net/http"

	jobRepo "fixfresh/database/repository/job"
	"fixfresh/middleware"
	"fixfresh/models"
	"fixfresh/services/job"
	"fixfresh/services/notification"
	"fixfresh/utils"

	"github.com/gin-gonic/gin"
)

// CreateJobHandler creates a new job for the authenticated client.
func (hb *HandlerBundle) CreateJobHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req job.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	created, err := hb.Jobs.CreateJob(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListJobsHandler lists jobs visible to the actor; providers browse the
// open pool with ?status=requested.
func (hb *HandlerBundle) ListJobsHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	f := jobRepo.Filter{
		Status:     models.JobStatus(c.Query("status")),
		ClientID:   c.Query("clientId"),
		ProviderID: c.Query("providerId"),
	}
	jobs, err := hb.Jobs.ListJobs(c.Request.Context(), actor, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJobHandler fetches one job; only its owners may see it.
func (hb *HandlerBundle) GetJobHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	j, err := hb.Jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if actor.Role != models.RoleAdmin && !j.OwnedBy(actor.ID) && j.Status != models.JobStatusRequested {
		utils.JSONError(c, http.StatusForbidden, "not_owner", "job belongs to another user")
		return
	}
	c.JSON(http.StatusOK, j)
}

// AcceptJobHandler lets a validated provider claim an open job.
func (hb *HandlerBundle) AcceptJobHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	j, err := hb.Jobs.AcceptJob(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// UpdateStatusHandler advances a job along its lifecycle.
func (hb *HandlerBundle) UpdateStatusHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var body struct {
		Status models.JobStatus `json:"status" binding:"required"`
		Photos []string         `json:"photos"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	j, err := hb.Jobs.UpdateStatus(c.Request.Context(), actor, c.Param("id"), body.Status, body.Photos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// CancelJobHandler terminates a job from any non-terminal state.
func (hb *HandlerBundle) CancelJobHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	j, err := hb.Jobs.CancelJob(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// RateJobHandler records the client's one-time rating of a completed job.
func (hb *HandlerBundle) RateJobHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var body struct {
		Rating int    `json:"rating" binding:"required"`
		Review string `json:"review"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	j, err := hb.Jobs.SubmitRating(c.Request.Context(), actor, c.Param("id"), body.Rating, body.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// UploadJobPhotosHandler stores uploaded photos and appends their
// references to the job.
func (hb *HandlerBundle) UploadJobPhotosHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "no photos supplied")
		return
	}

	jobID := c.Param("id")
	refs := make([]string, 0, len(files))
	for _, file := range files {
		ref, err := hb.Storage.UploadJobPhoto(c.Request.Context(), jobID, file)
		if err != nil {
			utils.JSONError(c, http.StatusBadGateway, "upload_failed", err.Error())
			return
		}
		refs = append(refs, ref)
	}

	j, err := hb.Jobs.AttachPhotos(c.Request.Context(), actor, jobID, refs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// StreamJobEventsHandler relays a job's lifecycle events to the caller as
// server-sent events until the client goes away.
func (hb *HandlerBundle) StreamJobEventsHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	jobID := c.Param("id")
	j, err := hb.Jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	if actor.Role != models.RoleAdmin && !j.OwnedBy(actor.ID) {
		utils.JSONError(c, http.StatusForbidden, "not_owner", "job belongs to another user")
		return
	}

	events, cancel, err := hb.Events.Subscribe(c.Request.Context(), notification.JobTopic(jobID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "subscribe_failed", err.Error())
		return
	}
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("job", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
