package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/focusmirror/focusmirror/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	eventTypes []string
	received   []*ConsumedEvent
	err        error
}

func (c *recordingConsumer) EventTypes() []string {
	return c.eventTypes
}

func (c *recordingConsumer) Handle(_ context.Context, event *ConsumedEvent) error {
	c.received = append(c.received, event)
	return c.err
}

func TestInProcessEventBus_DeliversToConsumer(t *testing.T) {
	bus := NewInProcessEventBus(nil)
	consumer := &recordingConsumer{eventTypes: []string{"test.event"}}
	bus.RegisterConsumer(consumer)

	userID := uuid.New()
	event := domain.NewBaseEvent(uuid.New(), "test_aggregate", "test.event", userID)
	payload, err := MarshalDomainEvent(event, map[string]any{"value": 42})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "test.event", payload))

	require.Len(t, consumer.received, 1)
	got := consumer.received[0]
	assert.Equal(t, event.EventID(), got.EventID)
	assert.Equal(t, "test.event", got.RoutingKey)
	assert.Equal(t, userID, got.UserID)
	assert.JSONEq(t, `{"value": 42}`, string(got.Payload))
}

func TestInProcessEventBus_IgnoresUnmatchedRoutingKeys(t *testing.T) {
	bus := NewInProcessEventBus(nil)
	consumer := &recordingConsumer{eventTypes: []string{"other.event"}}
	bus.RegisterConsumer(consumer)

	event := domain.NewBaseEvent(uuid.New(), "test_aggregate", "test.event", uuid.New())
	payload, err := MarshalDomainEvent(event, nil)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "test.event", payload))
	assert.Empty(t, consumer.received)
}

func TestInProcessEventBus_ConsumerErrorDoesNotPropagate(t *testing.T) {
	bus := NewInProcessEventBus(nil)
	failing := &recordingConsumer{eventTypes: []string{"test.event"}, err: errors.New("boom")}
	healthy := &recordingConsumer{eventTypes: []string{"test.event"}}
	bus.RegisterConsumer(failing)
	bus.RegisterConsumer(healthy)

	event := domain.NewBaseEvent(uuid.New(), "test_aggregate", "test.event", uuid.New())
	payload, err := MarshalDomainEvent(event, nil)
	require.NoError(t, err)

	assert.NoError(t, bus.Publish(context.Background(), "test.event", payload))
	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1)
}

type countingPublisher struct {
	published int
	closed    int
	err       error
}

func (p *countingPublisher) Publish(context.Context, string, []byte) error {
	p.published++
	return p.err
}

func (p *countingPublisher) Close() error {
	p.closed++
	return p.err
}

func TestFanoutPublisher(t *testing.T) {
	first := &countingPublisher{err: errors.New("broker gone")}
	second := &countingPublisher{}

	fanout := NewFanoutPublisher(first, second)
	err := fanout.Publish(context.Background(), "test.event", []byte("{}"))

	// The second publisher still runs, and the first error surfaces.
	require.Error(t, err)
	assert.Equal(t, 1, first.published)
	assert.Equal(t, 1, second.published)

	require.Error(t, fanout.Close())
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed)
}
