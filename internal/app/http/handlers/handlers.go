package handlers

import (
	"context"
	"net"
	"net/http"

	"go.uber.org/zap"

	"voicehub/go_backend/internal/app/config"
	"voicehub/go_backend/internal/domain/agent"
	"voicehub/go_backend/internal/domain/agent/demo"
	"voicehub/go_backend/internal/domain/auth"
	"voicehub/go_backend/internal/domain/quote/form"
	"voicehub/go_backend/internal/domain/quote/pdf"
)

// Check reports whether a backing service is reachable.
type Check func(ctx context.Context) error

type Handlers struct {
	Cfg    config.Config
	Log    *zap.Logger
	Store  agent.Store
	Demo   demo.Tracker
	Events agent.EventPublisher // optional
	Quotes form.Sender
	PDF    pdf.Generator
	Checks map[string]Check
}

func New(cfg config.Config, log *zap.Logger, store agent.Store, tracker demo.Tracker, quotes form.Sender, gen pdf.Generator) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	if tracker == nil {
		tracker = demo.NewMemory()
	}
	return &Handlers{
		Cfg:    cfg,
		Log:    log,
		Store:  store,
		Demo:   tracker,
		Quotes: quotes,
		PDF:    gen,
		Checks: map[string]Check{},
	}
}

// viewer keys the demo window: user id, else the client session id, else
// the client address.
func viewer(r *http.Request) string {
	if id := auth.FromContext(r.Context()); id != nil {
		return "user:" + id.ID
	}
	if s := r.Header.Get("X-Session-Id"); s != "" {
		return "session:" + s
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
