package demo

import (
	"context"
	"testing"
	"time"
)

func TestMemory_WindowLifecycle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory().WithClock(func() time.Time { return now })
	ctx := context.Background()
	key := Key("viewer", "abc")

	if ok, _ := m.Start(ctx, key, DefaultWindow); !ok {
		t.Fatal("expected first start to succeed")
	}
	if ok, _ := m.Start(ctx, key, DefaultWindow); ok {
		t.Fatal("expected start inside open window to be refused")
	}
	if running, _ := m.Running(ctx, key); !running {
		t.Fatal("expected running inside window")
	}

	now = now.Add(DefaultWindow)
	if running, _ := m.Running(ctx, key); running {
		t.Fatal("expected window closed after exactly one delay")
	}
	if ok, _ := m.Start(ctx, key, DefaultWindow); !ok {
		t.Fatal("expected restart after window closed")
	}
}

func TestKey_ScopesViewerAndAgent(t *testing.T) {
	if Key("a", "x") == Key("b", "x") || Key("a", "x") == Key("a", "y") {
		t.Fatal("keys must differ per viewer and agent")
	}
}
