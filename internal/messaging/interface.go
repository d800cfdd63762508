package messaging

import "context"

// PublisherInterface is what services depend on to emit domain events.
// testutil.MockPublisher records events in memory for tests.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

var _ PublisherInterface = (*Publisher)(nil)
