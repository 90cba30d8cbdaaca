package agent

import (
	"context"
	"errors"
)

// ReviewLimit caps the reviews shown on a detail page.
const ReviewLimit = 10

// ErrNotFound signals the requested agent does not exist.
var ErrNotFound = errors.New("agent: not found")

type ReviewOrder int

const (
	NewestFirst ReviewOrder = iota
	OldestFirst
)

// Store is the data access the agent pages need. Implementations live in
// internal/infra.
type Store interface {
	GetAgent(ctx context.Context, id string) (Agent, error)
	ListReviews(ctx context.Context, agentID string, limit int, order ReviewOrder) ([]Review, error)
	CreateOrder(ctx context.Context, o NewOrder) (Order, error)
}

// EventPublisher announces placed orders to downstream consumers.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o Order) error
}
