package fetch

import (
	"bytes"
	"strings"
)

// DefaultChallengeMarkers are substrings of common anti-bot interstitial pages
var DefaultChallengeMarkers = []string{
	"cf-browser-verification",
	"cf_chl_opt",
	"challenge-platform",
	"<title>just a moment...</title>",
	"attention required! | cloudflare",
	"checking your browser before accessing",
	"ddos protection by",
	"_incapsula_resource",
	"px-captcha",
	"please enable js and disable any ad blocker",
}

// IsChallenge reports whether body looks like a bot challenge or an empty stub page
func IsChallenge(body []byte, minLength int, markers []string) bool {
	if len(bytes.TrimSpace(body)) < minLength {
		return true
	}
	// only the leading 16k are checked for markers
	head := body
	if len(head) > 16*1024 {
		head = head[:16*1024]
	}
	lower := bytes.ToLower(head)
	for _, m := range markers {
		if m == "" {
			continue
		}
		if bytes.Contains(lower, []byte(strings.ToLower(m))) {
			return true
		}
	}
	return false
}
