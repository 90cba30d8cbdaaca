// Package demo tracks the "Try Me" window of an agent page. The demo is
// cosmetic: nothing here talks to a voice service.
package demo

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultWindow is how long a demo runs before it reports completion.
const DefaultWindow = 3 * time.Second

// Tracker claims a demo window for a key. Start reports false when a window
// for the key is still open.
type Tracker interface {
	Start(ctx context.Context, key string, window time.Duration) (bool, error)
	Running(ctx context.Context, key string) (bool, error)
}

// Key scopes a demo window to one viewer on one agent.
func Key(viewer, agentID string) string {
	return fmt.Sprintf("demo:%s:%s", agentID, viewer)
}

// Memory is an in-process Tracker.
type Memory struct {
	mu      sync.Mutex
	windows map[string]time.Time
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]time.Time), now: time.Now}
}

// WithClock swaps the time source, for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Start(_ context.Context, key string, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if until, ok := m.windows[key]; ok && now.Before(until) {
		return false, nil
	}
	m.windows[key] = now.Add(window)
	m.gcLocked(now)
	return true, nil
}

func (m *Memory) Running(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.windows[key]
	return ok && m.now().Before(until), nil
}

func (m *Memory) gcLocked(now time.Time) {
	for k, until := range m.windows {
		if !now.Before(until) {
			delete(m.windows, k)
		}
	}
}
