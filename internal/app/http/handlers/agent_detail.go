package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"voicehub/go_backend/internal/domain/agent/demo"
	"voicehub/go_backend/internal/domain/agent/detail"
	"voicehub/go_backend/internal/domain/auth"
	"voicehub/go_backend/internal/domain/ui"
)

type AgentPageResponse struct {
	detail.Page
	Outcome
}

type DemoResponse struct {
	Running bool       `json:"running"`
	EndsAt  *time.Time `json:"ends_at,omitempty"`
	// Completion is shown by the client when the window closes.
	Completion *ui.Notification `json:"completion,omitempty"`
}

type PurchaseRequest struct {
	Requirements string `json:"requirements"`
}

type PurchaseResponse struct {
	OrderID string `json:"order_id,omitempty"`
	Outcome
}

func (h *Handlers) newView(r *http.Request, out *ui.Outbox) *detail.View {
	return detail.New(chi.URLParam(r, "id"), detail.Deps{
		Store:      h.Store,
		User:       auth.FromContext(r.Context()),
		Notifier:   out,
		Navigator:  out,
		Demo:       h.Demo,
		Events:     h.Events,
		Viewer:     viewer(r),
		DemoWindow: h.Cfg.DemoWindow,
		Log:        h.Log,
	})
}

// GetAgent renders the detail page.
func (h *Handlers) GetAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := &ui.Outbox{}
	v := h.newView(r, out)
	defer v.Close()

	state := v.Load(ctx)
	page := v.Render()
	if state == detail.StateReady {
		page.DemoRunning = h.demoRunning(ctx, r)
	}

	code := http.StatusOK
	if state == detail.StateNotFound {
		code = http.StatusNotFound
	}
	writeJSON(w, code, AgentPageResponse{Page: page, Outcome: outcomeOf(out)})
}

// StartDemo opens the "Try Me" window. The view is closed when the request
// ends, so the completion notification travels back in the response.
func (h *Handlers) StartDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := &ui.Outbox{}
	v := h.newView(r, out)
	defer v.Close()

	if v.LoadAgent(ctx) != detail.StateReady {
		writeJSON(w, http.StatusNotFound, AgentPageResponse{Page: v.Render(), Outcome: outcomeOf(out)})
		return
	}

	started, err := v.TryDemo(ctx)
	if err != nil {
		h.Log.Error("start demo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "demo unavailable")
		return
	}
	if !started {
		writeJSON(w, http.StatusConflict, DemoResponse{Running: true})
		return
	}

	ends := time.Now().Add(h.demoWindow()).UTC()
	done := detail.DemoCompleted()
	writeJSON(w, http.StatusAccepted, DemoResponse{Running: true, EndsAt: &ends, Completion: &done})
}

func (h *Handlers) DemoStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DemoResponse{Running: h.demoRunning(r.Context(), r)})
}

// Purchase places an order for the signed-in user. Anonymous callers are
// sent to sign in before the body is read.
func (h *Handlers) Purchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := &ui.Outbox{}
	v := h.newView(r, out)
	defer v.Close()

	var req PurchaseRequest
	if auth.FromContext(ctx) != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if v.LoadAgent(ctx) != detail.StateReady {
			writeJSON(w, http.StatusNotFound, PurchaseResponse{Outcome: outcomeOf(out)})
			return
		}
	}

	order, err := v.Purchase(ctx, req.Requirements)
	switch {
	case err != nil:
		writeJSON(w, http.StatusBadGateway, PurchaseResponse{Outcome: outcomeOf(out)})
	case order == nil:
		writeJSON(w, http.StatusUnauthorized, PurchaseResponse{Outcome: outcomeOf(out)})
	default:
		writeJSON(w, http.StatusCreated, PurchaseResponse{OrderID: order.ID, Outcome: outcomeOf(out)})
	}
}

func (h *Handlers) demoRunning(ctx context.Context, r *http.Request) bool {
	running, err := h.Demo.Running(ctx, demo.Key(viewer(r), chi.URLParam(r, "id")))
	if err != nil {
		h.Log.Warn("demo status", zap.Error(err))
		return false
	}
	return running
}

func (h *Handlers) demoWindow() time.Duration {
	if h.Cfg.DemoWindow > 0 {
		return h.Cfg.DemoWindow
	}
	return demo.DefaultWindow
}
