package job

import (
	"testing"

	"fixfresh/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvance(t *testing.T) {
	all := []models.JobStatus{
		models.JobStatusRequested,
		models.JobStatusScheduled,
		models.JobStatusEnRoute,
		models.JobStatusInProgress,
		models.JobStatusCompleted,
		models.JobStatusCancelled,
	}

	allowed := map[[2]models.JobStatus]bool{
		{models.JobStatusScheduled, models.JobStatusEnRoute}:    true,
		{models.JobStatusEnRoute, models.JobStatusInProgress}:   true,
		{models.JobStatusInProgress, models.JobStatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]models.JobStatus{from, to}]
			assert.Equal(t, want, canAdvance(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesAdvanceNowhere(t *testing.T) {
	for _, terminal := range []models.JobStatus{models.JobStatusCompleted, models.JobStatusCancelled} {
		assert.True(t, terminal.Terminal())
		_, ok := providerAdvance[terminal]
		assert.False(t, ok, "%s must not appear as a source state", terminal)
	}
}

func TestPhotosAllowed(t *testing.T) {
	assert.False(t, photosAllowed(models.JobStatusRequested))
	assert.True(t, photosAllowed(models.JobStatusScheduled))
	assert.True(t, photosAllowed(models.JobStatusEnRoute))
	assert.True(t, photosAllowed(models.JobStatusInProgress))
	assert.False(t, photosAllowed(models.JobStatusCompleted))
	assert.False(t, photosAllowed(models.JobStatusCancelled))
}
