package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"voicehub/go_backend/internal/domain/agent"
)

type publisher interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error
}

// OrderEvents publishes agent.Order placements as enveloped JSON.
type OrderEvents struct {
	pub     publisher
	service string
	now     func() time.Time
}

func NewOrderEvents(p publisher, service string) *OrderEvents {
	return &OrderEvents{pub: p, service: service, now: time.Now}
}

func (e *OrderEvents) PublishOrderPlaced(ctx context.Context, o agent.Order) error {
	value, err := e.envelope(o)
	if err != nil {
		return err
	}
	headers := []kafka.Header{
		{Key: "x-event-type", Value: []byte(agent.EventOrderPlaced)},
		{Key: "x-event-version", Value: []byte("1")},
	}
	if err := e.pub.Publish(ctx, agent.PartitionKey(o.ID), value, headers...); err != nil {
		return fmt.Errorf("kafka: publish order %s: %w", o.ID, err)
	}
	return nil
}

func (e *OrderEvents) envelope(o agent.Order) ([]byte, error) {
	payload, err := json.Marshal(agent.OrderPlacedPayload{
		OrderID:      o.ID,
		BuyerID:      o.BuyerID,
		AgentID:      o.AgentID,
		Amount:       o.Amount,
		Requirements: o.Requirements,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(agent.Envelope{
		EventID:       uuid.NewString(),
		EventType:     agent.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    e.now().UTC(),
		Producer:      e.service,
		CorrelationID: o.ID,
		Payload:       payload,
	})
}
