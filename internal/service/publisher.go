package service

import "context"

// EventPublisher is implemented by mykafka.Producer. Services treat a
// nil publisher as "events disabled" and publish failures are logged,
// never propagated.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}
