package handlers

import (
	"encoding/json"
	"net/http"

	"voicehub/go_backend/internal/domain/ui"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// Outcome is what a page emitted during a request.
type Outcome struct {
	Notifications []ui.Notification `json:"notifications"`
	Redirect      string            `json:"redirect,omitempty"`
}

func outcomeOf(o *ui.Outbox) Outcome {
	return Outcome{Notifications: o.Notifications(), Redirect: o.Redirect()}
}
