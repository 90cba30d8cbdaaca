// Package memory is an in-process agent.Store for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"voicehub/go_backend/internal/domain/agent"
)

type AgentStore struct {
	mu      sync.RWMutex
	agents  map[string]agent.Agent
	reviews map[string][]agent.Review
	orders  []agent.Order
}

func NewAgentStore() *AgentStore {
	return &AgentStore{
		agents:  make(map[string]agent.Agent),
		reviews: make(map[string][]agent.Review),
	}
}

// PutAgent inserts or replaces an agent. An empty ID gets a fresh uuid.
func (s *AgentStore) PutAgent(a agent.Agent) agent.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.agents[a.ID] = a
	return a
}

func (s *AgentStore) AddReview(agentID string, r agent.Review) agent.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.reviews[agentID] = append(s.reviews[agentID], r)
	return r
}

func (s *AgentStore) Orders() []agent.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]agent.Order(nil), s.orders...)
}

func (s *AgentStore) GetAgent(_ context.Context, id string) (agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[id]
	if !ok {
		return agent.Agent{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
	}
	return a, nil
}

func (s *AgentStore) ListReviews(_ context.Context, agentID string, limit int, order agent.ReviewOrder) ([]agent.Review, error) {
	s.mu.RLock()
	out := append([]agent.Review(nil), s.reviews[agentID]...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if order == agent.OldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AgentStore) CreateOrder(_ context.Context, o agent.NewOrder) (agent.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agents[o.AgentID]; !ok {
		return agent.Order{}, fmt.Errorf("memory: create order: %w: %s", agent.ErrNotFound, o.AgentID)
	}
	out := agent.Order{
		ID:           uuid.NewString(),
		BuyerID:      o.BuyerID,
		AgentID:      o.AgentID,
		Amount:       o.Amount,
		Requirements: o.Requirements,
		CreatedAt:    time.Now().UTC(),
	}
	s.orders = append(s.orders, out)
	return out, nil
}
