package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"voicehub/go_backend/internal/domain/agent"
)

func newTestStore(t *testing.T, h http.HandlerFunc) *AgentStore {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "service-key")
	if err != nil {
		t.Fatal(err)
	}
	return NewAgentStore(c)
}

func TestNew_RejectsNonHTTPURL(t *testing.T) {
	if _, err := New("ftp://x", "k"); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestGetAgent(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/voice_agents" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "service-key" || r.Header.Get("Authorization") != "Bearer service-key" {
			t.Errorf("missing auth headers")
		}
		if r.URL.Query().Get("id") != "eq.abc" {
			t.Errorf("id filter = %q", r.URL.Query().Get("id"))
		}
		_, _ = w.Write([]byte(`[{"id":"abc","name":"Ava","category":"customer_support","price":49,"rating":4.5,"review_count":3,"is_online":true,"avatar_url":"ava.png"}]`))
	})

	a, err := s.GetAgent(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "Ava" || !a.Price.Equal(decimal.NewFromInt(49)) || a.Rating != 4.5 || a.ReviewCount != 3 {
		t.Fatalf("unexpected agent %+v", a)
	}
	if a.AvatarURL == nil || *a.AvatarURL != s.c.BaseURL+"/storage/v1/object/public/avatars/ava.png" {
		t.Fatalf("avatar = %v", a.AvatarURL)
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	for name, h := range map[string]http.HandlerFunc{
		"empty": func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) },
		"bad uuid": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"code":"22P02"}`, http.StatusBadRequest)
		},
	} {
		s := newTestStore(t, h)
		if _, err := s.GetAgent(context.Background(), "nope"); !errors.Is(err, agent.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestGetAgent_ServerError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	_, err := s.GetAgent(context.Background(), "abc")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusInternalServerError {
		t.Fatalf("expected StatusError 500, got %v", err)
	}
	if errors.Is(err, agent.ErrNotFound) {
		t.Fatal("server error must not look like not found")
	}
}

func TestListReviews_JoinsReviewerName(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("select") != "*,profiles:reviewer_id(full_name)" || q.Get("order") != "created_at.desc" || q.Get("limit") != "10" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[
			{"id":"r1","rating":5,"comment":"great","created_at":"2024-03-02T10:00:00Z","reviewer_id":"u1","profiles":{"full_name":"Jan"}},
			{"id":"r2","rating":3,"comment":null,"created_at":"2024-03-01T10:00:00Z","reviewer_id":"u2","profiles":null}
		]`))
	})

	got, err := s.ListReviews(context.Background(), "abc", agent.ReviewLimit, agent.NewestFirst)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ReviewerName == nil || *got[0].ReviewerName != "Jan" || got[1].ReviewerName != nil {
		t.Fatalf("unexpected reviews %+v", got)
	}
}

func TestCreateOrder(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("method=%s prefer=%s", r.Method, r.Header.Get("Prefer"))
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["buyer_id"] != "u1" || body["agent_id"] != "abc" || body["amount"] != "49" || body["requirements"] != nil {
			t.Errorf("body = %v", body)
		}
		if _, ok := body["id"]; ok {
			t.Errorf("id must be left to the database")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"o1","buyer_id":"u1","agent_id":"abc","amount":49,"requirements":null,"created_at":"2024-03-03T00:00:00Z"}]`))
	})

	o, err := s.CreateOrder(context.Background(), agent.NewOrder{BuyerID: "u1", AgentID: "abc", Amount: decimal.NewFromInt(49)})
	if err != nil {
		t.Fatal(err)
	}
	if o.ID != "o1" || o.CreatedAt.IsZero() {
		t.Fatalf("unexpected order %+v", o)
	}
}
