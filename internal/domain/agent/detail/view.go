// Package detail drives the agent detail page: loading the listing and its
// reviews, the "Try Me" demo window and the purchase flow.
//
// A View lives for one page lifetime. Every operation carries its own
// lifecycle flag, and once Close has been called, late fetch results, timer
// completions and notifications are dropped.
package detail

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voicehub/go_backend/internal/domain/agent"
	"voicehub/go_backend/internal/domain/agent/demo"
	"voicehub/go_backend/internal/domain/auth"
	"voicehub/go_backend/internal/domain/ui"
)

type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateNotFound State = "not_found"
)

var (
	ErrBusy     = errors.New("detail: operation already in progress")
	ErrClosed   = errors.New("detail: view closed")
	ErrNotReady = errors.New("detail: agent not loaded")
)

var (
	demoCompleted = ui.Notification{
		Title:       "Demo completed!",
		Description: "You've experienced a sample of this voice agent. Ready to purchase?",
	}
	purchaseSucceeded = ui.Notification{
		Title:       "Purchase successful!",
		Description: "Your voice agent is now ready to use. Check your dashboard for setup instructions.",
	}
	purchaseFailed = ui.Notification{
		Title:       "Error processing purchase",
		Description: "Please try again later.",
		Variant:     ui.VariantDestructive,
	}
)

// DemoCompleted is the notification a demo window ends with.
func DemoCompleted() ui.Notification { return demoCompleted }

type Deps struct {
	Store     agent.Store
	User      *auth.Identity
	Notifier  ui.Notifier
	Navigator ui.Navigator

	// Demo and Events are optional.
	Demo   demo.Tracker
	Events agent.EventPublisher

	// Viewer scopes the demo window; see demo.Key.
	Viewer     string
	DemoWindow time.Duration
	Log        *zap.Logger
}

type View struct {
	id   string
	deps Deps
	log  *zap.Logger

	mu          sync.Mutex
	state       State
	agent       *agent.Agent
	reviews     []agent.Review
	demoRunning bool
	demoTimer   *time.Timer
	purchasing  bool
	closed      bool
}

func New(id string, deps Deps) *View {
	if deps.DemoWindow <= 0 {
		deps.DemoWindow = demo.DefaultWindow
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &View{
		id:    id,
		deps:  deps,
		log:   log.With(zap.String("agent_id", id)),
		state: StateLoading,
	}
}

// Load fetches the agent and its reviews concurrently. The agent is
// required: any failure sends the client back to the listing. Reviews are
// optional: a failure is logged and the page shows none.
func (v *View) Load(ctx context.Context) State {
	if v.id == "" {
		return v.markNotFound()
	}

	var (
		a       agent.Agent
		reviews []agent.Review
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = v.deps.Store.GetAgent(ctx, v.id)
		return err
	})
	g.Go(func() error {
		rs, err := v.deps.Store.ListReviews(ctx, v.id, agent.ReviewLimit, agent.NewestFirst)
		if err != nil {
			v.log.Warn("detail: fetch reviews failed", zap.Error(err))
			return nil
		}
		reviews = newestFirst(rs, agent.ReviewLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		v.logAgentError(err)
		return v.markNotFound()
	}
	return v.markReady(a, reviews)
}

// LoadAgent fetches only the agent record.
func (v *View) LoadAgent(ctx context.Context) State {
	if v.id == "" {
		return v.markNotFound()
	}
	a, err := v.deps.Store.GetAgent(ctx, v.id)
	if err != nil {
		v.logAgentError(err)
		return v.markNotFound()
	}
	return v.markReady(a, nil)
}

// TryDemo opens the demo window. It reports false without side effects when
// a window is already open. When the window closes the running flag is
// cleared and the completion notification is shown.
func (v *View) TryDemo(ctx context.Context) (bool, error) {
	v.mu.Lock()
	switch {
	case v.closed:
		v.mu.Unlock()
		return false, ErrClosed
	case v.state != StateReady:
		v.mu.Unlock()
		return false, ErrNotReady
	case v.demoRunning:
		v.mu.Unlock()
		return false, nil
	}
	v.demoRunning = true
	v.mu.Unlock()

	if v.deps.Demo != nil {
		started, err := v.deps.Demo.Start(ctx, demo.Key(v.deps.Viewer, v.id), v.deps.DemoWindow)
		switch {
		case err != nil:
			// the window still runs locally
			v.log.Warn("detail: claim demo window failed", zap.Error(err))
		case !started:
			v.mu.Lock()
			v.demoRunning = false
			v.mu.Unlock()
			return false, nil
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		v.demoRunning = false
		return false, ErrClosed
	}
	v.demoTimer = time.AfterFunc(v.deps.DemoWindow, v.finishDemo)
	return true, nil
}

func (v *View) finishDemo() {
	v.mu.Lock()
	v.demoRunning = false
	v.demoTimer = nil
	closed := v.closed
	v.mu.Unlock()

	if !closed {
		v.deps.Notifier.Notify(demoCompleted)
	}
}

// Purchase places an order for the loaded agent at its current price.
// Without a signed-in user it only redirects to the sign-in page and returns
// a nil order and a nil error.
func (v *View) Purchase(ctx context.Context, requirements string) (*agent.Order, error) {
	if v.deps.User == nil {
		v.navigate(ui.RouteAuth)
		return nil, nil
	}

	v.mu.Lock()
	switch {
	case v.closed:
		v.mu.Unlock()
		return nil, ErrClosed
	case v.agent == nil:
		v.mu.Unlock()
		return nil, ErrNotReady
	case v.purchasing:
		v.mu.Unlock()
		return nil, ErrBusy
	}
	v.purchasing = true
	a := *v.agent
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.purchasing = false
		v.mu.Unlock()
	}()

	order, err := v.deps.Store.CreateOrder(ctx, agent.NewOrder{
		BuyerID:      v.deps.User.ID,
		AgentID:      a.ID,
		Amount:       a.Price,
		Requirements: optionalText(requirements),
	})
	if err != nil {
		v.log.Error("detail: create order failed", zap.String("buyer_id", v.deps.User.ID), zap.Error(err))
		v.notify(purchaseFailed)
		return nil, fmt.Errorf("detail: create order: %w", err)
	}

	if v.deps.Events != nil {
		if err := v.deps.Events.PublishOrderPlaced(ctx, order); err != nil {
			v.log.Warn("detail: publish order placed failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	v.notify(purchaseSucceeded)
	v.navigate(ui.RouteDashboard)
	return &order, nil
}

// Close tears the view down and stops a pending demo timer.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.demoTimer != nil {
		v.demoTimer.Stop()
		v.demoTimer = nil
	}
	v.demoRunning = false
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) markReady(a agent.Agent, reviews []agent.Review) State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return v.state
	}
	v.agent = &a
	v.reviews = reviews
	v.state = StateReady
	return v.state
}

func (v *View) markNotFound() State {
	v.mu.Lock()
	if v.closed {
		state := v.state
		v.mu.Unlock()
		return state
	}
	v.agent = nil
	v.reviews = nil
	v.state = StateNotFound
	v.mu.Unlock()

	v.deps.Navigator.Navigate(ui.RouteAgents)
	return StateNotFound
}

func (v *View) logAgentError(err error) {
	if errors.Is(err, agent.ErrNotFound) {
		v.log.Warn("detail: agent not found")
		return
	}
	v.log.Error("detail: fetch agent failed", zap.Error(err))
}

func (v *View) notify(n ui.Notification) {
	v.mu.Lock()
	closed := v.closed
	v.mu.Unlock()
	if !closed {
		v.deps.Notifier.Notify(n)
	}
}

func (v *View) navigate(path string) {
	v.mu.Lock()
	closed := v.closed
	v.mu.Unlock()
	if !closed {
		v.deps.Navigator.Navigate(path)
	}
}

func newestFirst(rs []agent.Review, limit int) []agent.Review {
	out := make([]agent.Review, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
