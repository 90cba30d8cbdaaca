package agent

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrderPlaced = "order.placed"
	EventOrderPlaced = "OrderPlaced"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID      string          `json:"order_id"`
	BuyerID      string          `json:"buyer_id"`
	AgentID      string          `json:"agent_id"`
	Amount       decimal.Decimal `json:"amount"`
	Requirements *string         `json:"requirements,omitempty"`
}

// PartitionKey keeps every event of one order on the same partition.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
