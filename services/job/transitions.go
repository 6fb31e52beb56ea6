package job

import "fixfresh/models"

// providerAdvance is the forward execution path walked by the assigned
// provider. Acceptance (requested -> scheduled) and cancellation are not in
// this table; they have their own actor and precondition rules.
var providerAdvance = map[models.JobStatus]models.JobStatus{
	models.JobStatusScheduled:  models.JobStatusEnRoute,
	models.JobStatusEnRoute:    models.JobStatusInProgress,
	models.JobStatusInProgress: models.JobStatusCompleted,
}

// canAdvance reports whether the assigned provider may move from -> to.
func canAdvance(from, to models.JobStatus) bool {
	next, ok := providerAdvance[from]
	return ok && next == to
}

// photosAllowed reports whether photos may still be appended; the list
// stays append-only until the job is terminal.
func photosAllowed(status models.JobStatus) bool {
	switch status {
	case models.JobStatusScheduled, models.JobStatusEnRoute, models.JobStatusInProgress:
		return true
	}
	return false
}
