package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/orchestrator"
)

const defaultRSSLimit = 100

// rssHandler serves RSS feed of stored items, GET /rss/{id}?limit=N
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := queryLimit(r, defaultRSSLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := s.Feeds.GetFeed(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "feed not found", http.StatusNotFound)
			return
		}
		log.Printf("[WARN] failed to get feed %d: %v", id, err)
		http.Error(w, "failed to get feed", http.StatusInternalServerError)
		return
	}

	items, err := s.Feeds.Items(r.Context(), id, limit)
	if err != nil {
		log.Printf("[WARN] failed to get items of feed %d: %v", id, err)
		http.Error(w, "failed to get items", http.StatusInternalServerError)
		return
	}

	var session *domain.SessionCookieSet
	if s.Sessions != nil {
		session, err = s.Sessions.Session(r.Context(), orchestrator.Origin(f.URL))
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[WARN] failed to get session of feed %d: %v", id, err)
		}
	}

	rss, err := s.generator.GenerateRSS(f, items, session)
	if err != nil {
		log.Printf("[WARN] failed to generate rss for feed %d: %v", id, err)
		http.Error(w, "failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[WARN] failed to write rss response: %v", err)
	}
}

// opmlHandler exports subscriptions to all feeds, GET /opml
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.Feeds.ListFeeds(r.Context())
	if err != nil {
		log.Printf("[WARN] failed to list feeds: %v", err)
		http.Error(w, "failed to list feeds", http.StatusInternalServerError)
		return
	}

	opml, err := s.generator.GenerateOPML(feeds)
	if err != nil {
		log.Printf("[WARN] failed to generate opml: %v", err)
		http.Error(w, "failed to generate opml", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sitefeed.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[WARN] failed to write opml response: %v", err)
	}
}
