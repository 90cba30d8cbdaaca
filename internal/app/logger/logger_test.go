package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	log, err := New("production", path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"msg":"hello"`) {
		t.Fatalf("expected JSON line, got %q", b)
	}
}

func TestNew_Development(t *testing.T) {
	if _, err := New("development", ""); err != nil {
		t.Fatal(err)
	}
}
