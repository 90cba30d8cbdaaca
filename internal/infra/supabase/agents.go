package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"voicehub/go_backend/internal/domain/agent"
)

const AvatarBucket = "avatars"

// AgentStore is agent.Store over PostgREST.
type AgentStore struct {
	c *Client
}

func NewAgentStore(c *Client) *AgentStore {
	return &AgentStore{c: c}
}

type agentRow struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	DeliveryTime int             `json:"delivery_time"`
	Languages    []string        `json:"languages"`
	Specialties  []string        `json:"specialties"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"review_count"`
	IsOnline     bool            `json:"is_online"`
	AvatarURL    *string         `json:"avatar_url"`
}

type reviewRow struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	ReviewerID string    `json:"reviewer_id"`
	Profiles   *struct {
		FullName *string `json:"full_name"`
	} `json:"profiles"`
}

type orderRow struct {
	ID           string          `json:"id,omitempty"`
	BuyerID      string          `json:"buyer_id"`
	AgentID      string          `json:"agent_id"`
	Amount       decimal.Decimal `json:"amount"`
	Requirements *string         `json:"requirements"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
}

func (s *AgentStore) GetAgent(ctx context.Context, id string) (agent.Agent, error) {
	values := url.Values{}
	values.Set("select", "*")
	values.Set("id", "eq."+id)
	values.Set("limit", "1")

	var rows []agentRow
	if err := s.c.Select(ctx, "voice_agents", values, &rows); err != nil {
		// a malformed uuid comes back as 400 invalid input syntax
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusBadRequest {
			return agent.Agent{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
		}
		return agent.Agent{}, fmt.Errorf("supabase: get agent %s: %w", id, err)
	}
	if len(rows) == 0 {
		return agent.Agent{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
	}
	r := rows[0]
	return agent.Agent{
		ID:           r.ID,
		Name:         r.Name,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Price:        r.Price,
		DeliveryTime: r.DeliveryTime,
		Languages:    r.Languages,
		Specialties:  r.Specialties,
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		IsOnline:     r.IsOnline,
		AvatarURL:    s.avatarURL(r.AvatarURL),
	}, nil
}

func (s *AgentStore) ListReviews(ctx context.Context, agentID string, limit int, order agent.ReviewOrder) ([]agent.Review, error) {
	if limit <= 0 {
		limit = agent.ReviewLimit
	}
	dir := "desc"
	if order == agent.OldestFirst {
		dir = "asc"
	}
	values := url.Values{}
	values.Set("select", "*,profiles:reviewer_id(full_name)")
	values.Set("agent_id", "eq."+agentID)
	values.Set("order", "created_at."+dir)
	values.Set("limit", strconv.Itoa(limit))

	var rows []reviewRow
	if err := s.c.Select(ctx, "reviews", values, &rows); err != nil {
		return nil, fmt.Errorf("supabase: list reviews %s: %w", agentID, err)
	}
	out := make([]agent.Review, 0, len(rows))
	for _, r := range rows {
		rv := agent.Review{
			ID:         r.ID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
			ReviewerID: r.ReviewerID,
		}
		if r.Profiles != nil {
			rv.ReviewerName = r.Profiles.FullName
		}
		out = append(out, rv)
	}
	return out, nil
}

func (s *AgentStore) CreateOrder(ctx context.Context, o agent.NewOrder) (agent.Order, error) {
	in := orderRow{
		BuyerID:      o.BuyerID,
		AgentID:      o.AgentID,
		Amount:       o.Amount,
		Requirements: o.Requirements,
	}
	var rows []orderRow
	if err := s.c.Insert(ctx, "orders", in, &rows); err != nil {
		return agent.Order{}, fmt.Errorf("supabase: create order: %w", err)
	}
	out := agent.Order{
		BuyerID:      o.BuyerID,
		AgentID:      o.AgentID,
		Amount:       o.Amount,
		Requirements: o.Requirements,
		CreatedAt:    time.Now().UTC(),
	}
	if len(rows) > 0 {
		out.ID = rows[0].ID
		if rows[0].CreatedAt != nil {
			out.CreatedAt = *rows[0].CreatedAt
		}
	}
	return out, nil
}

// avatarURL turns a bare storage object name into a public URL.
func (s *AgentStore) avatarURL(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	if strings.HasPrefix(*v, "http://") || strings.HasPrefix(*v, "https://") {
		return v
	}
	u := s.c.PublicObjectURL(AvatarBucket, *v)
	return &u
}
