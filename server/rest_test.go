package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/orchestrator"
	"github.com/umputun/sitefeed/pkg/scheduler"
	"github.com/umputun/sitefeed/server/mocks"
)

func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_listFeedsHandler(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feeds := &mocks.FeedStoreMock{
		ListFeedsFunc: func(context.Context) ([]domain.Feed, error) {
			return []domain.Feed{
				{ID: 1, URL: "https://a.example.com/", Title: "A", Provider: "openai", CreatedAt: created},
				{ID: 2, URL: "https://b.example.com/", Title: "B", ErrorCount: 2, LastError: "fetch failed"},
			}, nil
		},
	}
	srv := New(Deps{Feeds: feeds}, Params{BaseURL: "https://feeds.example.com/"})

	w := serve(srv, "GET", "/api/v1/feeds", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []feedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "https://feeds.example.com/rss/1", resp[0].RSSURL)
	assert.Equal(t, "openai", resp[0].Provider)
	assert.Equal(t, created, resp[0].CreatedAt)
	assert.Equal(t, 2, resp[1].ErrorCount)
	assert.Equal(t, "fetch failed", resp[1].LastError)

	t.Run("store error", func(t *testing.T) {
		feeds := &mocks.FeedStoreMock{
			ListFeedsFunc: func(context.Context) ([]domain.Feed, error) { return nil, errors.New("db locked") },
		}
		w := serve(New(Deps{Feeds: feeds}, Params{}), "GET", "/api/v1/feeds", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed to list feeds")
		assert.NotContains(t, w.Body.String(), "db locked")
	})
}

func TestServer_generateFeedHandler(t *testing.T) {
	orch := &mocks.OrchestratorMock{
		GenerateFunc: func(_ context.Context, rawURL, provider string) (*domain.Feed, error) {
			if provider == "gemini" {
				return nil, fmt.Errorf("analyze: %w", domain.ErrExhaustedCredentials)
			}
			return &domain.Feed{ID: 5, URL: rawURL, Title: "Example", Provider: "openai"}, nil
		},
	}
	providers := &mocks.ProvidersMock{SupportedFunc: func(p string) bool { return p == "openai" || p == "gemini" }}
	srv := New(Deps{Orchestrator: orch, Providers: providers}, Params{})

	tests := []struct {
		name   string
		body   string
		code   int
		errMsg string
	}{
		{name: "created", body: `{"url":"https://example.com/blog","provider":"OpenAI"}`, code: http.StatusCreated},
		{name: "default provider", body: `{"url":"https://example.com/blog"}`, code: http.StatusCreated},
		{name: "invalid json", body: `{"url":`, code: http.StatusBadRequest, errMsg: "invalid request"},
		{name: "not http", body: `{"url":"ftp://example.com/"}`, code: http.StatusBadRequest, errMsg: "invalid url"},
		{name: "no host", body: `{"url":"https:///path"}`, code: http.StatusBadRequest, errMsg: "invalid url"},
		{name: "unsupported provider", body: `{"url":"https://example.com/","provider":"acme"}`, code: http.StatusBadRequest,
			errMsg: "unsupported provider"},
		{name: "exhausted credentials", body: `{"url":"https://example.com/","provider":"gemini"}`,
			code: http.StatusServiceUnavailable, errMsg: "exhausted credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv, "POST", "/api/v1/feeds", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.errMsg != "" {
				assert.Contains(t, w.Body.String(), tt.errMsg)
				return
			}
			var resp feedResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, int64(5), resp.ID)
			assert.Equal(t, "/rss/5", resp.RSSURL)
		})
	}

	calls := orch.GenerateCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, "openai", calls[0].Provider)
	assert.Equal(t, "", calls[1].Provider)
	assert.Equal(t, "https://example.com/blog", calls[0].RawURL)
}

func TestServer_feedItemsHandler(t *testing.T) {
	published := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	feeds := &mocks.FeedStoreMock{
		GetFeedFunc: func(_ context.Context, id int64) (*domain.Feed, error) {
			if id != 1 {
				return nil, fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
			}
			return &domain.Feed{ID: 1}, nil
		},
		ItemsFunc: func(_ context.Context, feedID int64, limit int) ([]domain.Article, error) {
			return []domain.Article{{ID: 10, FeedID: feedID, Title: "Post", Link: "https://example.com/p",
				Published: &published, Hash: "h"}}, nil
		},
	}
	srv := New(Deps{Feeds: feeds}, Params{})

	w := serve(srv, "GET", "/api/v1/feeds/1/items?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp []articleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Post", resp[0].Title)
	assert.Equal(t, published, *resp[0].Published)
	assert.Equal(t, 5, feeds.ItemsCalls()[0].Limit)

	w = serve(srv, "GET", "/api/v1/feeds/1/items?limit=100000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxItemsLimit, feeds.ItemsCalls()[1].Limit)

	w = serve(srv, "GET", "/api/v1/feeds/1/items", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultItemsLimit, feeds.ItemsCalls()[2].Limit)

	assert.Equal(t, http.StatusNotFound, serve(srv, "GET", "/api/v1/feeds/2/items", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(srv, "GET", "/api/v1/feeds/abc/items", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(srv, "GET", "/api/v1/feeds/1/items?limit=-1", "").Code)
}

func TestServer_feedPatternsHandler(t *testing.T) {
	feeds := &mocks.FeedStoreMock{
		GetFeedFunc: func(_ context.Context, id int64) (*domain.Feed, error) { return &domain.Feed{ID: id}, nil },
	}
	patterns := &mocks.PatternStoreMock{
		PatternsFunc: func(_ context.Context, feedID int64) ([]domain.Pattern, error) {
			return []domain.Pattern{
				{FeedID: feedID, Version: 2, Active: true, Recipe: domain.Recipe{Container: "div.card"}, SuccessCount: 3},
				{FeedID: feedID, Version: 1, Recipe: domain.Recipe{Container: "article"}, FailureCount: 1},
			}, nil
		},
	}
	srv := New(Deps{Feeds: feeds, Patterns: patterns}, Params{})

	w := serve(srv, "GET", "/api/v1/feeds/3/patterns", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp []patternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, 2, resp[0].Version)
	assert.True(t, resp[0].Active)
	assert.Equal(t, "div.card", resp[0].Recipe.Container)
	assert.Equal(t, 1, resp[1].FailureCount)
	assert.Equal(t, int64(3), patterns.PatternsCalls()[0].FeedID)
}

func TestServer_updateFeedHandler(t *testing.T) {
	orch := &mocks.OrchestratorMock{
		UpdateFunc: func(_ context.Context, feedID int64, forceAI bool) (*orchestrator.UpdateOutcome, error) {
			switch feedID {
			case 1:
				method := domain.MethodSmart
				if forceAI {
					method = domain.MethodAI
				}
				return &orchestrator.UpdateOutcome{RunID: "r1", FeedID: 1, Status: domain.StatusDone, ItemsAdded: 3,
					Method: method, Trace: []orchestrator.State{orchestrator.StateFetching, orchestrator.StateDone}}, nil
			case 2:
				err := fmt.Errorf("fetch: %w", domain.ErrFetchFailed)
				return &orchestrator.UpdateOutcome{RunID: "r2", FeedID: 2, Status: domain.StatusFailed,
					Method: domain.MethodNone, Err: err}, err
			default:
				return nil, fmt.Errorf("get feed %d: %w", feedID, domain.ErrNotFound)
			}
		},
	}
	srv := New(Deps{Orchestrator: orch}, Params{})

	t.Run("update", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/feeds/1/update", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "done", resp["status"])
		assert.Equal(t, "smart", resp["method"])
		assert.InDelta(t, 3, resp["items_added"], 0.1)
		assert.NotContains(t, resp, "error")
	})

	t.Run("reanalyze forces ai", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/feeds/1/reanalyze", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"method":"ai"`)
		calls := orch.UpdateCalls()
		assert.True(t, calls[len(calls)-1].ForceAI)
	})

	t.Run("failed update keeps outcome", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/feeds/2/update", "")
		require.Equal(t, http.StatusBadGateway, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "failed", resp["status"])
		assert.Contains(t, resp["error"], "fetch failed")
	})

	t.Run("unknown feed", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/feeds/9/update", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("detached from request context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest("POST", "/api/v1/feeds/1/update", http.NoBody).WithContext(ctx)
		req.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		srv.updateFeedHandler(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		calls := orch.UpdateCalls()
		assert.NoError(t, calls[len(calls)-1].Ctx.Err())
	})
}

func TestServer_deleteFeedHandler(t *testing.T) {
	feeds := &mocks.FeedStoreMock{
		DeleteFeedFunc: func(_ context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
		},
	}
	patterns := &mocks.PatternStoreMock{ForgetFunc: func(int64) {}}
	srv := New(Deps{Feeds: feeds, Patterns: patterns}, Params{})

	w := serve(srv, "DELETE", "/api/v1/feeds/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, patterns.ForgetCalls(), 1)
	assert.Equal(t, int64(1), patterns.ForgetCalls()[0].FeedID)

	w = serve(srv, "DELETE", "/api/v1/feeds/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, patterns.ForgetCalls(), 1)
}

func TestServer_schedulerHandlers(t *testing.T) {
	running := false
	sched := &mocks.SchedulerMock{
		StartFunc: func(context.Context) { running = true },
		StopFunc:  func() { running = false },
		StateFunc: func() scheduler.State { return scheduler.State{Running: running} },
		RunOnceFunc: func(context.Context) scheduler.Summary {
			return scheduler.Summary{Feeds: 3, Succeeded: 2, Failed: 1, ItemsAdded: 7}
		},
	}
	srv := New(Deps{Scheduler: sched}, Params{})

	w := serve(srv, "GET", "/api/v1/scheduler/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":false`)

	w = serve(srv, "POST", "/api/v1/scheduler/start", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":true`)
	require.Len(t, sched.StartCalls(), 1)
	assert.NoError(t, sched.StartCalls()[0].Ctx.Err())

	w = serve(srv, "POST", "/api/v1/scheduler/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running":false`)
	assert.Len(t, sched.StopCalls(), 1)

	w = serve(srv, "POST", "/api/v1/scheduler/run", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary scheduler.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Feeds)
	assert.Equal(t, 7, summary.ItemsAdded)
}

func TestServer_keyHandlers(t *testing.T) {
	const secret = "sk-very-secret-key"
	keys := &mocks.KeyStoreMock{
		AddKeyFunc: func(_ context.Context, provider, key string) (*domain.APIKeyRecord, error) {
			if key == "sk-dup" {
				return nil, fmt.Errorf("add key: %w", domain.ErrDuplicateKey)
			}
			return &domain.APIKeyRecord{ID: 1, Provider: provider, Index: 1, Encrypted: []byte("enc")}, nil
		},
		KeyCountsFunc: func(context.Context) (map[string]int, error) {
			return map[string]int{"openai": 2, "gemini": 1}, nil
		},
		DeleteKeyFunc: func(_ context.Context, provider string, index int) error {
			if index == 5 {
				return fmt.Errorf("key %s/%d: %w", provider, index, domain.ErrNotFound)
			}
			return nil
		},
	}
	providers := &mocks.ProvidersMock{SupportedFunc: func(p string) bool { return p == "openai" || p == "gemini" }}
	srv := New(Deps{Keys: keys, Providers: providers}, Params{})

	t.Run("list counts", func(t *testing.T) {
		w := serve(srv, "GET", "/api/v1/keys", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Keys map[string]int `json:"keys"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, map[string]int{"openai": 2, "gemini": 1}, resp.Keys)
	})

	t.Run("add never echoes key", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/keys", `{"provider":"OpenAI","api_key":"`+secret+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), secret)
		assert.NotContains(t, w.Body.String(), "enc")
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "openai", resp["provider"])
		assert.InDelta(t, 2, resp["total_keys"], 0.1)
		assert.Equal(t, "openai", keys.AddKeyCalls()[0].Provider)
	})

	t.Run("duplicate", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/keys", `{"provider":"openai","api_key":"sk-dup"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NotContains(t, w.Body.String(), "sk-dup")
	})

	t.Run("validation", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(srv, "POST", "/api/v1/keys", `{"provider":"openai"}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(srv, "POST", "/api/v1/keys", `{"provider":"acme","api_key":"x"}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(srv, "POST", "/api/v1/keys", `not json`).Code)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve(srv, "DELETE", "/api/v1/keys/openai/1", "").Code)
		assert.Equal(t, http.StatusNotFound, serve(srv, "DELETE", "/api/v1/keys/openai/5", "").Code)
		assert.Equal(t, http.StatusBadRequest, serve(srv, "DELETE", "/api/v1/keys/openai/x", "").Code)
	})
}

func TestServer_sessionHandlers(t *testing.T) {
	validated := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := &mocks.SessionStoreMock{
		SessionsFunc: func(context.Context) ([]domain.SessionCookieSet, error) {
			return []domain.SessionCookieSet{{Origin: "https://news.example.com", Name: "News",
				Cookies: map[string]string{"sid": "secret-cookie", "csrf": "token"}, Headers: map[string]string{"X-Auth": "hdr-secret"},
				LoggedIn: false, LastValidated: &validated}}, nil
		},
		SaveSessionFunc:   func(context.Context, domain.SessionCookieSet) error { return nil },
		DeleteSessionFunc: func(context.Context, string) error { return nil },
	}
	srv := New(Deps{Sessions: sessions}, Params{})

	t.Run("list hides values", func(t *testing.T) {
		w := serve(srv, "GET", "/api/v1/sessions", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "secret-cookie")
		assert.NotContains(t, w.Body.String(), "hdr-secret")
		var resp []sessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, []string{"csrf", "sid"}, resp[0].Cookies)
		assert.Equal(t, []string{"X-Auth"}, resp[0].Headers)
		assert.False(t, resp[0].LoggedIn)
	})

	t.Run("save by origin", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/sessions",
			`{"site_url":"https://news.example.com/members/feed?x=1","cookies":{"sid":"abc"}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "abc")
		require.Len(t, sessions.SaveSessionCalls(), 1)
		saved := sessions.SaveSessionCalls()[0].S
		assert.Equal(t, "https://news.example.com", saved.Origin)
		assert.Equal(t, "news.example.com", saved.Name)
		assert.Equal(t, map[string]string{"sid": "abc"}, saved.Cookies)
		assert.True(t, saved.LoggedIn)
		assert.NotNil(t, saved.LastValidated)
	})

	t.Run("save validation", func(t *testing.T) {
		w := serve(srv, "POST", "/api/v1/sessions", `{"site_url":"news.example.com","cookies":{"sid":"abc"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = serve(srv, "POST", "/api/v1/sessions", `{"site_url":"https://news.example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, sessions.SaveSessionCalls(), 1)
	})

	t.Run("delete", func(t *testing.T) {
		w := serve(srv, "DELETE", "/api/v1/sessions?site_url=https://news.example.com/path", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		require.Len(t, sessions.DeleteSessionCalls(), 1)
		assert.Equal(t, "https://news.example.com", sessions.DeleteSessionCalls()[0].Origin)

		assert.Equal(t, http.StatusBadRequest, serve(srv, "DELETE", "/api/v1/sessions", "").Code)
	})
}
