package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/orchestrator"
)

const (
	defaultItemsLimit = 50
	maxItemsLimit     = 500
)

type feedResponse struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	RSSURL      string    `json:"rss_url"`
	ErrorCount  int       `json:"error_count"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type articleResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	Published   *time.Time `json:"published,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type patternResponse struct {
	Version       int           `json:"version"`
	Recipe        domain.Recipe `json:"recipe"`
	Active        bool          `json:"active"`
	SuccessCount  int           `json:"success_count"`
	FailureCount  int           `json:"failure_count"`
	LastValidated *time.Time    `json:"last_validated,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type updateResponse struct {
	*orchestrator.UpdateOutcome
	Error string `json:"error,omitempty"`
}

// sessionResponse never carries cookie or header values
type sessionResponse struct {
	Origin        string     `json:"site_url"`
	Name          string     `json:"site_name,omitempty"`
	Cookies       []string   `json:"cookies"`
	Headers       []string   `json:"headers"`
	LoggedIn      bool       `json:"logged_in"`
	LastValidated *time.Time `json:"last_validated,omitempty"`
}

// listFeedsHandler handles GET /api/v1/feeds
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.Feeds.ListFeeds(r.Context())
	if err != nil {
		log.Printf("[WARN] failed to list feeds: %v", err)
		renderError(w, r, errors.New("failed to list feeds"), http.StatusInternalServerError)
		return
	}

	resp := make([]feedResponse, 0, len(feeds))
	for i := range feeds {
		resp = append(resp, s.toFeedResponse(&feeds[i]))
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// generateFeedHandler handles POST /api/v1/feeds, analyzes the page and creates a feed for it
func (s *Server) generateFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL      string `json:"url"`
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if !validPageURL(req.URL) {
		renderError(w, r, fmt.Errorf("invalid url %q", req.URL), http.StatusBadRequest)
		return
	}
	req.Provider = strings.ToLower(strings.TrimSpace(req.Provider))
	if req.Provider != "" && s.Providers != nil && !s.Providers.Supported(req.Provider) {
		renderError(w, r, fmt.Errorf("unsupported provider %q", req.Provider), http.StatusBadRequest)
		return
	}

	// generation outlives the request if the client goes away
	feed, err := s.Orchestrator.Generate(context.WithoutCancel(r.Context()), req.URL, req.Provider)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, s.toFeedResponse(feed))
}

// feedItemsHandler handles GET /api/v1/feeds/{id}/items
func (s *Server) feedItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	limit, err := queryLimit(r, defaultItemsLimit)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err = s.Feeds.GetFeed(r.Context(), id); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	items, err := s.Feeds.Items(r.Context(), id, limit)
	if err != nil {
		log.Printf("[WARN] failed to get items of feed %d: %v", id, err)
		renderError(w, r, errors.New("failed to get items"), http.StatusInternalServerError)
		return
	}

	resp := make([]articleResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, articleResponse{ID: a.ID, Title: a.Title, Link: a.Link, Description: a.Description,
			Image: a.Image, Published: a.Published, CreatedAt: a.CreatedAt})
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// feedPatternsHandler handles GET /api/v1/feeds/{id}/patterns, newest version first
func (s *Server) feedPatternsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if _, err = s.Feeds.GetFeed(r.Context(), id); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	patterns, err := s.Patterns.Patterns(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] failed to get patterns of feed %d: %v", id, err)
		renderError(w, r, errors.New("failed to get patterns"), http.StatusInternalServerError)
		return
	}

	resp := make([]patternResponse, 0, len(patterns))
	for _, p := range patterns {
		resp = append(resp, patternResponse{Version: p.Version, Recipe: p.Recipe, Active: p.Active,
			SuccessCount: p.SuccessCount, FailureCount: p.FailureCount, LastValidated: p.LastValidated,
			CreatedAt: p.CreatedAt})
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// updateFeedHandler handles POST /api/v1/feeds/{id}/update
func (s *Server) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	s.runUpdate(w, r, false)
}

// reanalyzeFeedHandler handles POST /api/v1/feeds/{id}/reanalyze, forcing fresh fetch and AI analysis
func (s *Server) reanalyzeFeedHandler(w http.ResponseWriter, r *http.Request) {
	s.runUpdate(w, r, true)
}

func (s *Server) runUpdate(w http.ResponseWriter, r *http.Request, forceAI bool) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	outcome, err := s.Orchestrator.Update(context.WithoutCancel(r.Context()), id, forceAI)
	if outcome == nil {
		if err == nil {
			err = errors.New("no update outcome")
		}
		renderError(w, r, err, errorCode(err))
		return
	}

	resp, code := updateResponse{UpdateOutcome: outcome}, http.StatusOK
	if err != nil {
		resp.Error, code = err.Error(), errorCode(err)
	}
	renderJSON(w, r, code, resp)
}

// deleteFeedHandler handles DELETE /api/v1/feeds/{id}, removing the feed with its items and patterns
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err = s.Feeds.DeleteFeed(r.Context(), id); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	s.Patterns.Forget(id)
	log.Printf("[INFO] feed %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) schedulerStatusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.Scheduler.State())
}

// schedulerStartHandler starts periodic updates, the loop is detached from the request
func (s *Server) schedulerStartHandler(w http.ResponseWriter, r *http.Request) {
	s.Scheduler.Start(context.WithoutCancel(r.Context()))
	renderJSON(w, r, http.StatusOK, s.Scheduler.State())
}

func (s *Server) schedulerStopHandler(w http.ResponseWriter, r *http.Request) {
	s.Scheduler.Stop()
	renderJSON(w, r, http.StatusOK, s.Scheduler.State())
}

// schedulerRunHandler handles POST /api/v1/scheduler/run, a single update cycle over all feeds
func (s *Server) schedulerRunHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.Scheduler.RunOnce(context.WithoutCancel(r.Context())))
}

// listKeysHandler handles GET /api/v1/keys, returns number of keys per provider
func (s *Server) listKeysHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := s.Keys.KeyCounts(r.Context())
	if err != nil {
		log.Printf("[WARN] failed to count keys: %v", err)
		renderError(w, r, errors.New("failed to count keys"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"keys": counts})
}

// addKeyHandler handles POST /api/v1/keys. The key itself is never echoed back.
func (s *Server) addKeyHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
		APIKey   string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request"), http.StatusBadRequest)
		return
	}
	req.Provider = strings.ToLower(strings.TrimSpace(req.Provider))
	if req.Provider == "" || strings.TrimSpace(req.APIKey) == "" {
		renderError(w, r, errors.New("provider and api_key are required"), http.StatusBadRequest)
		return
	}
	if s.Providers != nil && !s.Providers.Supported(req.Provider) {
		renderError(w, r, fmt.Errorf("unsupported provider %q", req.Provider), http.StatusBadRequest)
		return
	}

	rec, err := s.Keys.AddKey(r.Context(), req.Provider, req.APIKey)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			renderError(w, r, fmt.Errorf("key already stored for %s", req.Provider), http.StatusConflict)
			return
		}
		log.Printf("[WARN] failed to add key for %s: %v", req.Provider, err)
		renderError(w, r, errors.New("failed to add key"), http.StatusInternalServerError)
		return
	}

	resp := map[string]any{"provider": rec.Provider, "index": rec.Index}
	if counts, err := s.Keys.KeyCounts(r.Context()); err == nil {
		resp["total_keys"] = counts[rec.Provider]
	}
	log.Printf("[INFO] key %d added for %s", rec.Index, rec.Provider)
	renderJSON(w, r, http.StatusCreated, resp)
}

// deleteKeyHandler handles DELETE /api/v1/keys/{provider}/{index}
func (s *Server) deleteKeyHandler(w http.ResponseWriter, r *http.Request) {
	provider := strings.ToLower(r.PathValue("provider"))
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		renderError(w, r, errors.New("invalid key index"), http.StatusBadRequest)
		return
	}
	if err := s.Keys.DeleteKey(r.Context(), provider, index); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listSessionsHandler handles GET /api/v1/sessions, only cookie and header names are returned
func (s *Server) listSessionsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.Sessions.Sessions(r.Context())
	if err != nil {
		log.Printf("[WARN] failed to list sessions: %v", err)
		renderError(w, r, errors.New("failed to list sessions"), http.StatusInternalServerError)
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, ss := range sessions {
		resp = append(resp, sessionResponse{Origin: ss.Origin, Name: ss.Name, Cookies: sortedKeys(ss.Cookies),
			Headers: sortedKeys(ss.Headers), LoggedIn: ss.LoggedIn, LastValidated: ss.LastValidated})
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// saveSessionHandler handles POST /api/v1/sessions, replaces saved session of the site origin
func (s *Server) saveSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SiteURL  string            `json:"site_url"`
		SiteName string            `json:"site_name"`
		Cookies  map[string]string `json:"cookies"`
		Headers  map[string]string `json:"headers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, errors.New("invalid request"), http.StatusBadRequest)
		return
	}
	if !validPageURL(req.SiteURL) {
		renderError(w, r, fmt.Errorf("invalid site_url %q", req.SiteURL), http.StatusBadRequest)
		return
	}
	if len(req.Cookies) == 0 && len(req.Headers) == 0 {
		renderError(w, r, errors.New("cookies or headers required"), http.StatusBadRequest)
		return
	}

	origin := orchestrator.Origin(req.SiteURL)
	name := req.SiteName
	if name == "" {
		if u, err := url.Parse(origin); err == nil {
			name = u.Hostname()
		}
	}
	now := time.Now().UTC()
	session := domain.SessionCookieSet{Origin: origin, Name: name, Cookies: req.Cookies, Headers: req.Headers,
		LoggedIn: true, LastValidated: &now}
	if err := s.Sessions.SaveSession(r.Context(), session); err != nil {
		log.Printf("[WARN] failed to save session for %s: %v", origin, err)
		renderError(w, r, errors.New("failed to save session"), http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] session saved for %s, %d cookies", origin, len(req.Cookies))
	renderJSON(w, r, http.StatusOK, map[string]any{"site_url": origin, "site_name": name, "logged_in": true})
}

// deleteSessionHandler handles DELETE /api/v1/sessions?site_url=...
func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	siteURL := r.URL.Query().Get("site_url")
	if !validPageURL(siteURL) {
		renderError(w, r, fmt.Errorf("invalid site_url %q", siteURL), http.StatusBadRequest)
		return
	}
	if err := s.Sessions.DeleteSession(r.Context(), orchestrator.Origin(siteURL)); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toFeedResponse(f *domain.Feed) feedResponse {
	return feedResponse{ID: f.ID, URL: f.URL, Title: f.Title, Description: f.Description, Provider: f.Provider,
		RSSURL: s.generator.SelfLink(f.ID), ErrorCount: f.ErrorCount, LastError: f.LastError, CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt}
}


func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid feed id %q", r.PathValue("id"))
	}
	return id, nil
}

func queryLimit(r *http.Request, def int) (int, error) {
	val := r.URL.Query().Get("limit")
	if val == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(val)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", val)
	}
	return min(limit, maxItemsLimit), nil
}

func validPageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func sortedKeys(m map[string]string) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
