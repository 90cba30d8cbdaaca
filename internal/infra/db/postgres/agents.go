package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"voicehub/go_backend/internal/domain/agent"
)

// AgentStore implements agent.Store on the marketplace tables.
type AgentStore struct {
	db *DB
}

func NewAgentStore(db *DB) *AgentStore {
	return &AgentStore{db: db}
}

func (s *AgentStore) GetAgent(ctx context.Context, id string) (agent.Agent, error) {
	const q = `
		SELECT id::text, name, title, description, category, price::text, delivery_time,
		       languages, specialties, rating::float8, review_count, is_online, avatar_url
		FROM voice_agents
		WHERE id = $1
	`
	var (
		a     agent.Agent
		price string
	)
	err := s.db.Pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.Title, &a.Description, &a.Category, &price, &a.DeliveryTime,
		&a.Languages, &a.Specialties, &a.Rating, &a.ReviewCount, &a.IsOnline, &a.AvatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return agent.Agent{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
		}
		return agent.Agent{}, fmt.Errorf("postgres: get agent: %w", err)
	}
	if a.Price, err = decimal.NewFromString(price); err != nil {
		return agent.Agent{}, fmt.Errorf("postgres: get agent: price %q: %w", price, err)
	}
	return a, nil
}

func (s *AgentStore) ListReviews(ctx context.Context, agentID string, limit int, order agent.ReviewOrder) ([]agent.Review, error) {
	if limit <= 0 {
		limit = agent.ReviewLimit
	}
	dir := "DESC"
	if order == agent.OldestFirst {
		dir = "ASC"
	}
	q := fmt.Sprintf(`
		SELECT r.id::text, r.rating, r.comment, r.created_at, r.reviewer_id::text, p.full_name
		FROM reviews r
		LEFT JOIN profiles p ON p.id = r.reviewer_id
		WHERE r.agent_id = $1
		ORDER BY r.created_at %s
		LIMIT $2
	`, dir)

	rows, err := s.db.Pool.Query(ctx, q, agentID, limit)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: list reviews: %w", err)
	}
	defer rows.Close()

	var out []agent.Review
	for rows.Next() {
		var r agent.Review
		if err := rows.Scan(&r.ID, &r.Rating, &r.Comment, &r.CreatedAt, &r.ReviewerID, &r.ReviewerName); err != nil {
			return nil, fmt.Errorf("postgres: scan review: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: list reviews: %w", err)
	}
	return out, nil
}

func (s *AgentStore) CreateOrder(ctx context.Context, o agent.NewOrder) (agent.Order, error) {
	const q = `
		INSERT INTO orders (buyer_id, agent_id, amount, requirements)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING id::text, created_at
	`
	out := agent.Order{
		BuyerID:      o.BuyerID,
		AgentID:      o.AgentID,
		Amount:       o.Amount,
		Requirements: o.Requirements,
	}
	err := s.db.Pool.QueryRow(ctx, q, o.BuyerID, o.AgentID, o.Amount.String(), o.Requirements).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return agent.Order{}, fmt.Errorf("postgres: create order: %w", err)
	}
	return out, nil
}

// isInvalidText reports a malformed uuid literal (22P02).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
