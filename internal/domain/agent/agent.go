package agent

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent is a purchasable voice agent listing.
type Agent struct {
	ID           string
	Name         string
	Title        string
	Description  string
	Category     string
	Price        decimal.Decimal
	DeliveryTime int
	Languages    []string
	Specialties  []string
	Rating       float64
	ReviewCount  int
	IsOnline     bool
	AvatarURL    *string
}

// Review is a buyer review joined with the reviewer's display name.
type Review struct {
	ID           string
	Rating       int
	Comment      *string
	CreatedAt    time.Time
	ReviewerID   string
	ReviewerName *string
}

// NewOrder is what a purchase writes. Amount is copied from the agent's
// price at the time of purchase.
type NewOrder struct {
	BuyerID      string
	AgentID      string
	Amount       decimal.Decimal
	Requirements *string
}

type Order struct {
	ID           string
	BuyerID      string
	AgentID      string
	Amount       decimal.Decimal
	Requirements *string
	CreatedAt    time.Time
}
