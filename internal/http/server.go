// Package http wires the web surface: routing, middleware, session
// authentication, and the page and JSON handlers.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/insights"
	"budgetbuddy/internal/storage"
	appweb "budgetbuddy/web"
)

type Server struct {
	http.Server
	templates *template.Template
	repo      *storage.SQLiteRepository
	ai        *insights.Client // nil when no API key is configured
	cfg       *config.Config

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Session-token lookup cache. Aggregates are always computed fresh;
	// only the cookie->user resolution is cached, and it is invalidated
	// on logout, password change, and account deletion.
	sessionCache *cache.LRUCache[core.User]

	stopSweeper  chan struct{}
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(cfg *config.Config, repo *storage.SQLiteRepository, ai *insights.Client) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		},
		repo:         repo,
		ai:           ai,
		cfg:          cfg,
		rateLimiter:  newRateLimiter(cfg.RateLimitPerMinute),
		metrics:      &securityMetrics{},
		sessionCache: cache.NewLRUCache[core.User](cfg.SessionCacheSize, cfg.SessionCacheTTL),
		stopSweeper:  make(chan struct{}),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("GET /register", s.withSecurityHeaders(s.handleRegisterPage))
	mux.HandleFunc("POST /register", s.withSecurityHeaders(s.handleRegister))
	mux.HandleFunc("GET /login", s.withSecurityHeaders(s.handleLoginPage))
	mux.HandleFunc("POST /login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("POST /logout", s.withSecurityHeaders(s.handleLogout))

	mux.HandleFunc("GET /dashboard", s.withSecurityHeaders(s.requireAuth(s.handleDashboard)))
	mux.HandleFunc("GET /dashboard/data", s.withSecurityHeaders(s.requireAuthJSON(s.handleDashboardData)))

	mux.HandleFunc("GET /transactions", s.withSecurityHeaders(s.requireAuth(s.handleTransactions)))
	mux.HandleFunc("POST /transactions", s.withSecurityHeaders(s.requireAuth(s.handleCreateTransaction)))
	mux.HandleFunc("POST /transactions/{id}/delete", s.withSecurityHeaders(s.requireAuth(s.handleDeleteTransaction)))

	mux.HandleFunc("GET /analytics", s.withSecurityHeaders(s.requireAuth(s.handleAnalytics)))
	mux.HandleFunc("POST /analytics/summary", s.withSecurityHeaders(s.requireAuthJSON(s.handleAISummary)))

	mux.HandleFunc("GET /profile", s.withSecurityHeaders(s.requireAuth(s.handleProfile)))
	mux.HandleFunc("POST /profile/password", s.withSecurityHeaders(s.requireAuth(s.handleChangePassword)))
	mux.HandleFunc("POST /profile/delete", s.withSecurityHeaders(s.requireAuth(s.handleDeleteAccount)))

	mux.HandleFunc("GET /report", s.withSecurityHeaders(s.requireAuth(s.handleReport)))

	go s.startSessionCacheSweep()

	return s
}

// startSessionCacheSweep periodically drops expired session cache entries.
func (s *Server) startSessionCacheSweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.sessionCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Session cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopSweeper:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopSweeper != nil {
			close(s.stopSweeper)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// render executes a page template, falling back to a 500 on failure.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessionUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "index.html", nil)
}
