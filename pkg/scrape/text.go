package scrape

import (
	"crypto/sha256"
	"encoding/hex"
	"html"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/sitefeed/pkg/cache"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips markup and collapses whitespace
func CleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = html.UnescapeString(strictPolicy.Sanitize(s))
	}
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n runes on a word boundary if possible
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)[:n]
	res := string(runes)
	if i := strings.LastIndexByte(res, ' '); i > n/2 {
		res = res[:i]
	}
	return strings.TrimSpace(res) + "..."
}

// CanonicalLink resolves href against base and normalizes it.
// Returns empty string for non-http links (javascript:, mailto:, data:, fragments).
func CanonicalLink(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != "" {
		if b, err := url.Parse(base); err == nil {
			ref = b.ResolveReference(ref)
		}
	}
	scheme := strings.ToLower(ref.Scheme)
	if (scheme != "http" && scheme != "https") || ref.Host == "" {
		return ""
	}
	ref.Scheme = scheme
	ref.Host = strings.ToLower(ref.Host)
	ref.Fragment = ""
	ref.RawFragment = ""
	return ref.String()
}

// ContentHash identifies an article within a feed. It is based on the normalized link,
// title is used only for items without a link.
func ContentHash(link, title string) string {
	src := cache.NormalizeURL(link)
	if link == "" {
		src = "title:" + strings.ToLower(CleanText(title))
	}
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// ParseDate parses a date in any common format, nil if not recognized
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil || t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
