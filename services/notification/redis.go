package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"fixfresh/models"
	"fixfresh/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisNotificationService relays job events over Redis pub/sub. Any
// transport with equivalent semantics could sit behind the boundary; Redis
// is what the rest of the stack already runs on.
type RedisNotificationService struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisNotificationService creates a notification service backed by the
// shared events Redis client.
func NewRedisNotificationService() *RedisNotificationService {
	return &RedisNotificationService{
		client: utils.GetEventsClient(),
		logger: utils.GetLogger(),
	}
}

// topicsFor fans one event out to every interested channel.
func topicsFor(event models.JobEvent) []string {
	topics := []string{JobTopic(event.JobID)}
	if event.ClientID != "" {
		topics = append(topics, UserTopic(event.ClientID))
	}
	if event.ProviderID != "" {
		topics = append(topics, UserTopic(event.ProviderID))
	}
	if event.Kind == models.EventJobCreated {
		topics = append(topics, OpenJobsTopic)
	}
	return topics
}

// Publish sends the event to its job topic plus the owning users' topics.
func (s *RedisNotificationService) Publish(ctx context.Context, event models.JobEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}
	for _, topic := range topicsFor(event) {
		if err := s.client.Publish(ctx, topic, payload).Err(); err != nil {
			return fmt.Errorf("failed to publish job event to %s: %w", topic, err)
		}
	}
	return nil
}

// Subscribe streams events for a topic until the cancel function is called
// or the context ends. Undecodable payloads are logged and skipped.
func (s *RedisNotificationService) Subscribe(ctx context.Context, topic string) (<-chan models.JobEvent, func(), error) {
	sub := s.client.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	out := make(chan models.JobEvent)
	done := make(chan struct{})
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event models.JobEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					s.logger.Warn("dropping undecodable job event",
						zap.String("topic", topic), zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		close(done)
		_ = sub.Close()
	}
	return out, cancel, nil
}
