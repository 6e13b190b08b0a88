package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rickgao/cursorlog/internal/connection"
	"github.com/rickgao/cursorlog/internal/version"
)

// IndexTemplate is the entry page file name inside the template directory.
const IndexTemplate = "index.html"

// Pinger reports whether the storage engine is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionStats reports live session counts.
type SessionStats interface {
	Stats() connection.ManagerStats
}

// Config configures the HTTP routes.
type Config struct {
	Namespace   string // Event channel path
	TemplateDir string // Directory holding index.html; empty disables the page
	StaticDir   string // Served under /static/; empty disables
}

// Handler routes collector HTTP traffic.
type Handler struct {
	cfg      Config
	index    *template.Template
	channel  http.Handler
	db       Pinger
	sessions SessionStats
	logger   *slog.Logger

	mux *http.ServeMux
}

// NewHandler builds the route table. channel serves the event channel at cfg.Namespace.
// The entry page template is parsed once here; a missing file is an error.
func NewHandler(cfg Config, channel http.Handler, db Pinger, sessions SessionStats, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		cfg:      cfg,
		channel:  channel,
		db:       db,
		sessions: sessions,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	if cfg.TemplateDir != "" {
		tmpl, err := template.ParseFiles(filepath.Join(cfg.TemplateDir, IndexTemplate))
		if err != nil {
			return nil, fmt.Errorf("parse entry page: %w", err)
		}
		h.index = tmpl
	}

	h.mux.HandleFunc("GET /{$}", h.handleIndex)
	h.mux.HandleFunc("GET /health", h.handleHealth)
	if cfg.StaticDir != "" {
		h.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}
	h.mux.Handle(cfg.Namespace, channel)

	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// pageData is passed to index.html.
type pageData struct {
	Namespace string
	Version   string
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.index.Execute(w, pageData{
		Namespace: h.cfg.Namespace,
		Version:   version.Version,
	})
	if err != nil {
		h.logger.Error("failed to render entry page", "error", err)
	}
}

// healthResponse is the /health body.
type healthResponse struct {
	Status     string         `json:"status"`
	Version    version.Info   `json:"version"`
	Components map[string]any `json:"components"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := healthResponse{
		Status:     "healthy",
		Version:    version.Get(),
		Components: make(map[string]any),
	}

	// Check database
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check: database unreachable", "error", err)
		health.Status = "unhealthy"
		health.Components["database"] = map[string]string{
			"status": "disconnected",
		}
	} else {
		health.Components["database"] = "connected"
	}

	// Sessions
	stats := h.sessions.Stats()
	health.Components["sessions"] = map[string]any{
		"active":   stats.Active,
		"accepted": stats.Accepted,
		"messages": stats.Messages,
	}

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "unhealthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}
