package eventbus

import "context"

// FanoutPublisher publishes each event to every wrapped publisher. It is
// used to feed local consumers from the in-process bus while also
// emitting to RabbitMQ for external subscribers.
type FanoutPublisher struct {
	publishers []Publisher
}

// NewFanoutPublisher creates a fanout over the given publishers.
func NewFanoutPublisher(publishers ...Publisher) *FanoutPublisher {
	return &FanoutPublisher{publishers: publishers}
}

// Publish sends the event to all publishers, returning the first error
// after every publisher has been attempted.
func (f *FanoutPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var firstErr error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, routingKey, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all wrapped publishers.
func (f *FanoutPublisher) Close() error {
	var firstErr error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
