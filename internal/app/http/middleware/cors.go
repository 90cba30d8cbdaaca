package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS answers browser preflights for the given origins. An empty list
// allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept-Language", "X-Session-Id", "X-Internal-Token"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
