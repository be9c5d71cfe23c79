package eventbus

import (
	"encoding/json"

	"github.com/focusmirror/focusmirror/internal/shared/domain"
)

// MarshalDomainEvent wraps a domain event and its payload in the wire
// envelope consumed on the other side of the bus.
func MarshalDomainEvent(event domain.DomainEvent, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	envelope := ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		UserID:        event.UserID(),
		Payload:       body,
	}
	return json.Marshal(envelope)
}
