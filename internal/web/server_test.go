package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/cursorlog/internal/connection"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type fakeSessions struct{ stats connection.ManagerStats }

func (s fakeSessions) Stats() connection.ManagerStats { return s.stats }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeFile creates dir/name with content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestHandler(t *testing.T, db Pinger) *Handler {
	t.Helper()

	templates := t.TempDir()
	writeFile(t, templates, IndexTemplate, `<html><body data-ns="{{.Namespace}}">cursor</body></html>`)
	static := t.TempDir()
	writeFile(t, static, "app.js", "console.log('hi')")

	channel := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	h, err := NewHandler(Config{
		Namespace:   "/ws",
		TemplateDir: templates,
		StaticDir:   static,
	}, channel, db, fakeSessions{connection.ManagerStats{Active: 2, Accepted: 5, Messages: 40}}, testLogger())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func TestHandler_Routes(t *testing.T) {
	h := newTestHandler(t, fakePinger{})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"entry page", http.MethodGet, "/", http.StatusOK, `data-ns="/ws"`},
		{"static asset", http.MethodGet, "/static/app.js", http.StatusOK, "console.log"},
		{"missing static asset", http.MethodGet, "/static/nope.js", http.StatusNotFound, ""},
		{"event channel", http.MethodGet, "/ws", http.StatusTeapot, ""},
		{"unknown path", http.MethodGet, "/other", http.StatusNotFound, ""},
		{"post to entry page", http.MethodPost, "/", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantState  string
	}{
		{"healthy", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, fakePinger{err: tt.pingErr})

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var body struct {
				Status     string                     `json:"status"`
				Version    map[string]string          `json:"version"`
				Components map[string]json.RawMessage `json:"components"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != tt.wantState {
				t.Errorf("status = %q, want %q", body.Status, tt.wantState)
			}
			if body.Version["version"] == "" {
				t.Error("version missing")
			}
			if !strings.Contains(string(body.Components["sessions"]), `"active":2`) {
				t.Errorf("sessions = %s", body.Components["sessions"])
			}
			if strings.Contains(rec.Body.String(), "connection refused") {
				t.Error("driver error leaked into health response")
			}
		})
	}
}

func TestNewHandler_MissingTemplate(t *testing.T) {
	_, err := NewHandler(Config{Namespace: "/ws", TemplateDir: t.TempDir()},
		http.NotFoundHandler(), fakePinger{}, fakeSessions{}, nil)
	if err == nil {
		t.Fatal("NewHandler() error = nil, want parse error")
	}
}

func TestNewHandler_PageDisabled(t *testing.T) {
	h, err := NewHandler(Config{Namespace: "/ws"}, http.NotFoundHandler(), fakePinger{}, fakeSessions{}, nil)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
