package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/umputun/sitefeed/pkg/domain"
)

// default TTLs for cached pages
const (
	NewsTTL    = 6 * time.Hour
	DefaultTTL = 24 * time.Hour
)

// trackingParams are query parameters dropped by NormalizeURL, utm_* is matched by prefix
var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "dclid": true, "yclid": true, "msclkid": true,
	"mc_cid": true, "mc_eid": true, "_ga": true, "_hsenc": true, "_hsmi": true,
}

func isTrackingParam(name string) bool {
	name = strings.ToLower(name)
	return strings.HasPrefix(name, "utm_") || trackingParams[name]
}

// Key builds cache key from normalized url and session fingerprint.
// Two urls differing only by query order, tracking params, fragment, host case, default port
// or trailing slash produce the same key.
func Key(rawURL, fingerprint string) string {
	key := NormalizeURL(rawURL)
	if fingerprint != "" {
		key += "#s=" + fingerprint
	}
	return key
}

// NormalizeURL returns scheme://host/path?sorted-query for rawURL with tracking params removed.
// Unparsable input is returned trimmed.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(rawURL)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && !(scheme == "http" && port == "80") && !(scheme == "https" && port == "443") {
		host += ":" + port
	}

	path := u.EscapedPath()
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "/" {
		path = ""
	}

	res := scheme + "://" + host + path
	if q := u.Query(); len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			if isTrackingParam(k) {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			vals := q[k]
			sort.Strings(vals)
			for _, v := range vals {
				parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
			}
		}
		if len(parts) > 0 {
			res += "?" + strings.Join(parts, "&")
		}
	}
	return res
}

// Fingerprint returns a short stable hash of session cookies, empty for no session
func Fingerprint(session *domain.SessionCookieSet) string {
	if session == nil || len(session.Cookies) == 0 {
		return ""
	}
	names := make([]string, 0, len(session.Cookies))
	for k := range session.Cookies {
		names = append(names, k)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, n := range names {
		h.Write([]byte(n))
		h.Write([]byte{'='})
		h.Write([]byte(session.Cookies[n]))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// TTLFor selects ttl by url type, news and blog pages change faster
func TTLFor(rawURL string) time.Duration {
	lower := strings.ToLower(rawURL)
	if strings.Contains(lower, "news") || strings.Contains(lower, "blog") {
		return NewsTTL
	}
	return DefaultTTL
}
