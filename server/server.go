package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/feed"
	"github.com/umputun/sitefeed/pkg/orchestrator"
	"github.com/umputun/sitefeed/pkg/scheduler"
)

//go:generate moq -out mocks/orchestrator.go -pkg mocks -skip-ensure -fmt goimports . Orchestrator
//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/pattern_store.go -pkg mocks -skip-ensure -fmt goimports . PatternStore
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/key_store.go -pkg mocks -skip-ensure -fmt goimports . KeyStore
//go:generate moq -out mocks/session_store.go -pkg mocks -skip-ensure -fmt goimports . SessionStore
//go:generate moq -out mocks/providers.go -pkg mocks -skip-ensure -fmt goimports . Providers

// Server represents HTTP server instance
type Server struct {
	Deps
	params Params

	generator *feed.Generator

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Deps are the services behind the http api. Metrics is optional.
type Deps struct {
	Orchestrator Orchestrator
	Feeds        FeedStore
	Patterns     PatternStore
	Scheduler    Scheduler
	Keys         KeyStore
	Sessions     SessionStore
	Providers    Providers
	Metrics      http.Handler
}

// Params of the http server
type Params struct {
	Listen  string
	Timeout time.Duration
	BaseURL string // public url used for rss links, empty means relative links
	Version string
	Debug   bool
}

// Orchestrator runs feed generation and updates
type Orchestrator interface {
	Update(ctx context.Context, feedID int64, forceAI bool) (*orchestrator.UpdateOutcome, error)
	Generate(ctx context.Context, rawURL, provider string) (*domain.Feed, error)
}

// FeedStore gives access to feeds and their items
type FeedStore interface {
	ListFeeds(ctx context.Context) ([]domain.Feed, error)
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	Items(ctx context.Context, feedID int64, limit int) ([]domain.Article, error)
	DeleteFeed(ctx context.Context, id int64) error
}

// PatternStore lists pattern history and drops cached active patterns of removed feeds
type PatternStore interface {
	Patterns(ctx context.Context, feedID int64) ([]domain.Pattern, error)
	Forget(feedID int64)
}

// Scheduler controls periodic updates
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
	State() scheduler.State
	RunOnce(ctx context.Context) scheduler.Summary
}

// KeyStore manages provider api keys
type KeyStore interface {
	AddKey(ctx context.Context, provider, secret string) (*domain.APIKeyRecord, error)
	KeyCounts(ctx context.Context) (map[string]int, error)
	DeleteKey(ctx context.Context, provider string, index int) error
}

// SessionStore manages saved site sessions
type SessionStore interface {
	Session(ctx context.Context, origin string) (*domain.SessionCookieSet, error)
	Sessions(ctx context.Context) ([]domain.SessionCookieSet, error)
	SaveSession(ctx context.Context, s domain.SessionCookieSet) error
	DeleteSession(ctx context.Context, origin string) error
}

// Providers tells which ai providers are configured
type Providers interface {
	Supported(provider string) bool
}

// New initializes a new server instance
func New(deps Deps, params Params) *Server {
	if params.Listen == "" {
		params.Listen = ":8080"
	}
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	params.BaseURL = strings.TrimSuffix(params.BaseURL, "/")

	s := &Server{
		Deps:      deps,
		params:    params,
		generator: feed.NewGenerator(params.BaseURL),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.params.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.params.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.params.Timeout,
		WriteTimeout:      s.params.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("sitefeed", "umputun", s.params.Version))
	s.router.Use(rest.Ping)

	if s.params.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /rss/{id}", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
	if s.Metrics != nil {
		s.router.Handle("GET /metrics", s.Metrics)
	}

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.generateFeedHandler)
		r.HandleFunc("GET /feeds/{id}/items", s.feedItemsHandler)
		r.HandleFunc("GET /feeds/{id}/patterns", s.feedPatternsHandler)
		r.HandleFunc("POST /feeds/{id}/update", s.updateFeedHandler)
		r.HandleFunc("POST /feeds/{id}/reanalyze", s.reanalyzeFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)

		r.HandleFunc("GET /scheduler/status", s.schedulerStatusHandler)
		r.HandleFunc("POST /scheduler/start", s.schedulerStartHandler)
		r.HandleFunc("POST /scheduler/stop", s.schedulerStopHandler)
		r.HandleFunc("POST /scheduler/run", s.schedulerRunHandler)

		r.HandleFunc("GET /keys", s.listKeysHandler)
		r.HandleFunc("POST /keys", s.addKeyHandler)
		r.HandleFunc("DELETE /keys/{provider}/{index}", s.deleteKeyHandler)

		r.HandleFunc("GET /sessions", s.listSessionsHandler)
		r.HandleFunc("POST /sessions", s.saveSessionHandler)
		r.HandleFunc("DELETE /sessions", s.deleteSessionHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.params.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}
	if s.Scheduler != nil {
		status["scheduler"] = s.Scheduler.State()
	}
	renderJSON(w, r, http.StatusOK, status)
}

// errorCode maps domain errors to http status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrExhaustedCredentials):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrFetchFailed), errors.Is(err, domain.ErrAIAnalysisFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInsufficientItems), errors.Is(err, domain.ErrPatternMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
