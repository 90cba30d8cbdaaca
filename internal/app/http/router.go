package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"voicehub/go_backend/internal/app/http/handlers"
	"voicehub/go_backend/internal/app/http/middleware"
)

func NewRouter(h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logging(h.Log))
	r.Use(middleware.CORS(h.Cfg.CORSOrigins))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Session([]byte(h.Cfg.SupabaseJWTSecret), h.Cfg.SupabaseJWTAudience, h.Log))

		r.Route("/agents/{id}", func(r chi.Router) {
			r.Get("/", h.GetAgent)
			r.Get("/demo", h.DemoStatus)
			r.Post("/demo", h.StartDemo)
			r.Post("/orders", h.Purchase)
		})

		r.Get("/quotes/form", h.QuoteForm)
		r.Post("/quotes", h.CreateQuote)

		if h.Cfg.InternalToken != "" {
			r.Group(func(r chi.Router) {
				r.Use(middleware.InternalAuth(h.Cfg.InternalToken))
				r.Post("/quotes/preview", h.PreviewQuotePDF)
			})
		}
	})

	return r
}
