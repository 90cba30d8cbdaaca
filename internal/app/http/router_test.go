package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"voicehub/go_backend/internal/app/config"
	"voicehub/go_backend/internal/app/http/handlers"
	"voicehub/go_backend/internal/domain/agent"
	"voicehub/go_backend/internal/domain/quote"
	"voicehub/go_backend/internal/domain/quote/pdf/gofpdf"
	"voicehub/go_backend/internal/domain/ui"
	"voicehub/go_backend/internal/infra/memory"
)

const jwtSecret = "router-test-secret"

type stubSender struct {
	mu    sync.Mutex
	ok    bool
	err   error
	calls int
}

func (s *stubSender) SendQuoteRequest(context.Context, quote.Request) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.ok, s.err
}

type failingStore struct{ *memory.AgentStore }

func (failingStore) CreateOrder(context.Context, agent.NewOrder) (agent.Order, error) {
	return agent.Order{}, errors.New("insert failed")
}

type fixture struct {
	srv    *httptest.Server
	store  *memory.AgentStore
	sender *stubSender
	agent  agent.Agent
}

func newFixture(t *testing.T, wrap func(agent.Store) agent.Store) *fixture {
	t.Helper()
	store := memory.NewAgentStore()
	a := store.PutAgent(agent.Agent{
		ID:          "abc",
		Name:        "Ava",
		Category:    "customer_support",
		Price:       decimal.NewFromInt(49),
		Rating:      4.5,
		ReviewCount: 3,
		IsOnline:    true,
	})
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		store.AddReview(a.ID, agent.Review{ReviewerID: "r", Rating: 5, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	var s agent.Store = store
	if wrap != nil {
		s = wrap(store)
	}
	cfg := config.Config{
		SupabaseJWTSecret:   jwtSecret,
		SupabaseJWTAudience: "authenticated",
		DemoWindow:          time.Second,
		QuoteFallbackEmail:  "hello@voicehub.test",
		InternalToken:       "staff",
	}
	sender := &stubSender{ok: true}
	h := handlers.New(cfg, nil, s, nil, sender, gofpdf.New(""))
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, store: store, sender: sender, agent: a}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"aud": "authenticated",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body any, header ...string) (*http.Response, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	resp, _ := f.do(t, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestGetAgent_RendersPage(t *testing.T) {
	f := newFixture(t, nil)
	resp, body := f.do(t, http.MethodGet, "/v1/agents/abc", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if body["state"] != "ready" {
		t.Fatalf("state = %v", body["state"])
	}
	card := body["agent"].(map[string]any)
	if card["name"] != "Ava" || card["price"] != "$49" || card["rating"] != "4.5/5" || card["category_label"] != "Customer Support" {
		t.Fatalf("unexpected card %v", card)
	}
	if n := len(body["reviews"].([]any)); n != 3 {
		t.Fatalf("expected 3 reviews, got %d", n)
	}
}

func TestGetAgent_MissingRedirectsToListing(t *testing.T) {
	f := newFixture(t, nil)
	resp, body := f.do(t, http.MethodGet, "/v1/agents/nope", "", nil)
	if resp.StatusCode != http.StatusNotFound || body["state"] != "not_found" || body["redirect"] != ui.RouteAgents {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
	if body["agent"] != nil {
		t.Fatal("not_found page must not carry an agent")
	}
}

func TestDemo_WindowRefusesRepeat(t *testing.T) {
	f := newFixture(t, nil)
	hdr := []string{"X-Session-Id", "s1"}

	resp, body := f.do(t, http.MethodPost, "/v1/agents/abc/demo", "", nil, hdr...)
	if resp.StatusCode != http.StatusAccepted || body["ends_at"] == nil {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
	done := body["completion"].(map[string]any)
	if done["title"] != "Demo completed!" {
		t.Fatalf("completion = %v", done)
	}

	if resp, _ := f.do(t, http.MethodPost, "/v1/agents/abc/demo", "", nil, hdr...); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 while running, got %d", resp.StatusCode)
	}
	if _, body := f.do(t, http.MethodGet, "/v1/agents/abc/demo", "", nil, hdr...); body["running"] != true {
		t.Fatalf("expected running, got %v", body)
	}
	if resp, _ := f.do(t, http.MethodPost, "/v1/agents/abc/demo", "", nil, "X-Session-Id", "s2"); resp.StatusCode != http.StatusAccepted {
		t.Fatalf("other viewer must get its own window, got %d", resp.StatusCode)
	}
}

func TestPurchase_AnonymousRedirectsToAuth(t *testing.T) {
	f := newFixture(t, nil)
	resp, body := f.do(t, http.MethodPost, "/v1/agents/abc/orders", "", map[string]string{"requirements": "x"})
	if resp.StatusCode != http.StatusUnauthorized || body["redirect"] != ui.RouteAuth {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
	if len(f.store.Orders()) != 0 {
		t.Fatal("anonymous purchase must not write")
	}
}

func TestPurchase_AnonymousBadBodyStillRedirects(t *testing.T) {
	f := newFixture(t, nil)
	resp, err := http.Post(f.srv.URL+"/v1/agents/abc/orders", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusUnauthorized || body["redirect"] != ui.RouteAuth {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
}

func TestPurchase_SignedInBadBody(t *testing.T) {
	f := newFixture(t, nil)
	req, _ := http.NewRequest(http.MethodPost, f.srv.URL+"/v1/agents/abc/orders", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+token(t, "user-1"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest || len(f.store.Orders()) != 0 {
		t.Fatalf("status=%d orders=%d", resp.StatusCode, len(f.store.Orders()))
	}
}

func TestPurchase_SignedIn(t *testing.T) {
	f := newFixture(t, nil)
	resp, body := f.do(t, http.MethodPost, "/v1/agents/abc/orders", token(t, "user-1"), map[string]string{"requirements": "  Dutch please "})
	if resp.StatusCode != http.StatusCreated || body["redirect"] != ui.RouteDashboard || body["order_id"] == "" {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
	orders := f.store.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	o := orders[0]
	if o.BuyerID != "user-1" || !o.Amount.Equal(f.agent.Price) || o.Requirements == nil || *o.Requirements != "Dutch please" {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestPurchase_StoreFailure(t *testing.T) {
	f := newFixture(t, func(s agent.Store) agent.Store { return failingStore{s.(*memory.AgentStore)} })
	resp, body := f.do(t, http.MethodPost, "/v1/agents/abc/orders", token(t, "user-1"), nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status %d", resp.StatusCode)
	}
	n := body["notifications"].([]any)
	if len(n) != 1 || n[0].(map[string]any)["variant"] != "destructive" || body["redirect"] != nil {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCreateQuote(t *testing.T) {
	f := newFixture(t, nil)
	valid := quote.Request{FullName: "Ada", Email: "ada@example.com", Description: "Sales agent"}

	resp, body := f.do(t, http.MethodPost, "/v1/quotes", "", quote.Request{FullName: "Ada"})
	if resp.StatusCode != http.StatusUnprocessableEntity || f.sender.calls != 0 {
		t.Fatalf("status=%d calls=%d", resp.StatusCode, f.sender.calls)
	}

	resp, body = f.do(t, http.MethodPost, "/v1/quotes", "", valid, "Accept-Language", "nl-NL")
	if resp.StatusCode != http.StatusOK || body["state"] != "submitted" || f.sender.calls != 1 {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
	if title := body["notifications"].([]any)[0].(map[string]any)["title"]; title != "Bedankt!" {
		t.Fatalf("expected Dutch thank-you, got %v", title)
	}
	if body["back_home"] != ui.RouteHome {
		t.Fatalf("expected back_home link, got %v", body["back_home"])
	}

	f.sender.ok = false
	resp, body = f.do(t, http.MethodPost, "/v1/quotes", "", valid)
	if resp.StatusCode != http.StatusBadGateway || body["state"] != "editing" || body["back_home"] != nil {
		t.Fatalf("status=%d body=%v", resp.StatusCode, body)
	}
}

func TestQuoteForm_Labels(t *testing.T) {
	f := newFixture(t, nil)
	_, body := f.do(t, http.MethodGet, "/v1/quotes/form", "", nil, "Accept-Language", "nl")
	if body["language"] != "nl" {
		t.Fatalf("language = %v", body["language"])
	}
	labels := body["labels"].(map[string]any)
	if labels["quote.title"] != "Offerte aanvragen" {
		t.Fatalf("labels = %v", labels)
	}
}

func TestPreviewQuotePDF_RequiresStaffToken(t *testing.T) {
	f := newFixture(t, nil)
	req := quote.Request{FullName: "Ada", Email: "ada@example.com", Description: "Sales agent"}

	if resp, _ := f.do(t, http.MethodPost, "/v1/quotes/preview", "", req); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	resp, _ := f.do(t, http.MethodPost, "/v1/quotes/preview", "", req, "X-Internal-Token", "staff")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("status=%d type=%s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}
