package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://feeds.example.com/")
	generator.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }

	pubTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	f := &domain.Feed{ID: 7, URL: "https://blog.example.com/news", Title: "Example News",
		Description: "latest posts", UpdatedAt: pubTime.Add(time.Hour)}
	items := []domain.Article{
		{ID: 1, Title: "First Post", Link: "https://blog.example.com/news/1", Description: "first summary",
			Image: "https://blog.example.com/img/1.png?w=200", Published: &pubTime, Hash: "hash1"},
		{ID: 2, Title: "Second Post", Link: "https://blog.example.com/news/2", Hash: "hash2", CreatedAt: pubTime},
	}

	t.Run("channel and items", func(t *testing.T) {
		rss, err := generator.GenerateRSS(f, items, nil)
		require.NoError(t, err)

		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Example News</title>`)
		assert.Contains(t, rss, `<link>https://blog.example.com/news</link>`)
		assert.Contains(t, rss, `<description>latest posts</description>`)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://feeds.example.com/rss/7" rel="self" type="application/rss+xml"></link>`)
		assert.Contains(t, rss, `<lastBuildDate>Mon, 01 Jan 2024 13:00:00 +0000</lastBuildDate>`)

		assert.Contains(t, rss, `<title>First Post</title>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">hash1</guid>`)
		assert.Contains(t, rss, `<pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>`)
		assert.Contains(t, rss, `<enclosure url="https://blog.example.com/img/1.png?w=200" length="0" type="image/png"></enclosure>`)
		assert.Contains(t, rss, `<title>Second Post</title>`)
		assert.NotContains(t, rss, "Logged Out")

		var doc RSS
		require.NoError(t, xml.Unmarshal([]byte(rss), &doc))
		require.Len(t, doc.Channel.Items, 2)
		assert.Equal(t, "https://blog.example.com/news/1", doc.Channel.Items[0].Link)
	})

	t.Run("logged out notice goes first", func(t *testing.T) {
		session := &domain.SessionCookieSet{Origin: "https://blog.example.com", Name: "Example Blog", LoggedIn: false}
		rss, err := generator.GenerateRSS(f, items, session)
		require.NoError(t, err)

		var doc RSS
		require.NoError(t, xml.Unmarshal([]byte(rss), &doc))
		require.Len(t, doc.Channel.Items, 3)
		notice := doc.Channel.Items[0]
		assert.Equal(t, "🔒 Logged Out - Action Required", notice.Title)
		assert.Equal(t, f.URL, notice.Link)
		assert.Contains(t, notice.Description, "Your login session for Example Blog has expired.")
		assert.Equal(t, "First Post", doc.Channel.Items[1].Title)
	})

	t.Run("logged in session adds nothing", func(t *testing.T) {
		session := &domain.SessionCookieSet{Origin: "https://blog.example.com", LoggedIn: true}
		rss, err := generator.GenerateRSS(f, items, session)
		require.NoError(t, err)
		assert.NotContains(t, rss, "Logged Out")
	})

	t.Run("empty feed falls back to url", func(t *testing.T) {
		rss, err := generator.GenerateRSS(&domain.Feed{ID: 1, URL: "https://example.com/"}, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, rss, `<title>https://example.com/</title>`)
		assert.Contains(t, rss, `<description>Articles from https://example.com/</description>`)
		assert.Contains(t, rss, `<lastBuildDate>Thu, 01 Feb 2024 00:00:00 +0000</lastBuildDate>`)
		assert.NotContains(t, rss, "<item>")
	})
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := NewGenerator("https://feeds.example.com")

	feeds := []domain.Feed{
		{ID: 1, URL: "https://a.example.com/", Title: "Site A"},
		{ID: 2, URL: "https://b.example.com/blog"},
	}

	opml, err := generator.GenerateOPML(feeds)
	require.NoError(t, err)

	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Sitefeed Subscriptions</title>`)
	assert.Contains(t, opml, `<outline text="Site A" title="Site A" type="rss" xmlUrl="https://feeds.example.com/rss/1" htmlUrl="https://a.example.com/"></outline>`)
	assert.Contains(t, opml, `title="https://b.example.com/blog"`)
	assert.Contains(t, opml, `xmlUrl="https://feeds.example.com/rss/2"`)
}

func TestImageType(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/a.png", "image/png"},
		{"https://example.com/a.JPG", "image/jpeg"},
		{"https://example.com/a.gif?x=1", "image/gif"},
		{"https://example.com/image", "image/jpeg"},
		{"https://example.com/doc.pdf", "image/jpeg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, imageType(tt.url), tt.url)
	}
}
