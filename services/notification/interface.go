package notification

import (
	"context"

	"fixfresh/models"
)

// JobTopic is the per-job event channel; per-job ordering follows the order
// mutations were committed because publishes happen synchronously after the
// write.
func JobTopic(jobID string) string {
	return "jobs." + jobID
}

// UserTopic carries every event relevant to one participant (client or
// provider dashboards).
func UserTopic(userID string) string {
	return "users." + userID
}

// OpenJobsTopic announces newly requested jobs to browsing providers.
const OpenJobsTopic = "jobs.open"

// Publisher is the outbound half of the notification boundary. Delivery is
// at-least-once; subscribers must tolerate duplicates.
type Publisher interface {
	Publish(ctx context.Context, event models.JobEvent) error
}

// Subscriber is the inbound half, used by delivery surfaces (websocket
// relays, dashboards) rather than the engine itself.
type Subscriber interface {
	// Subscribe returns a stream of events for the topic and a cancel
	// function that releases the underlying subscription.
	Subscribe(ctx context.Context, topic string) (<-chan models.JobEvent, func(), error)
}

// NotificationService is the full notification boundary.
type NotificationService interface {
	Publisher
	Subscriber
}
