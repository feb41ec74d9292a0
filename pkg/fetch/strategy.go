package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/umputun/sitefeed/pkg/domain"
)

const maxBodySize = 10 * 1024 * 1024

// Kind tags a strategy variant
type Kind string

// enum of built-in strategy kinds, in default chain order
const (
	KindMinimal     Kind = "minimal"
	KindBrowser     Kind = "browser"
	KindFingerprint Kind = "fingerprint"
	KindDelayed     Kind = "delayed"
)

// Request is a page request passed to strategies
type Request struct {
	URL     string
	Session *domain.SessionCookieSet
}

// Response is a raw strategy response, body already decoded to utf-8
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Strategy is one way of requesting a page
type Strategy interface {
	Name() string
	Do(ctx context.Context, req Request) (*Response, error)
}

// httpDoer is satisfied by *http.Client
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// httpStrategy covers all built-in kinds, they differ by client, headers and delay
type httpStrategy struct {
	kind      Kind
	client    httpDoer
	userAgent string
	browser   bool
	referer   string
	delay     time.Duration
}

// Name returns strategy tag
func (s *httpStrategy) Name() string { return string(s.kind) }

// Do performs the request
func (s *httpStrategy) Do(ctx context.Context, req Request) (*Response, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	hreq.Header.Set("User-Agent", s.userAgent)
	if s.browser {
		addBrowserHeaders(hreq)
	} else {
		addMinimalHeaders(hreq)
	}
	if s.referer != "" {
		hreq.Header.Set("Referer", s.referer)
	}
	applySession(hreq, req.Session)

	resp, err := s.client.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	var body io.Reader = io.LimitReader(resp.Body, maxBodySize)
	if strings.Contains(strings.ToLower(contentType), "html") {
		if r, err := charset.NewReader(body, contentType); err == nil {
			body = r
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, ContentType: contentType, Body: data}, nil
}
