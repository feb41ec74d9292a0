package scrape

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/domain"
)

const baseURL = "https://example.com/blog"

func blogRecipe() domain.Recipe {
	return domain.Recipe{
		Container:   "article.post",
		Title:       domain.FieldRule{Selector: "h2"},
		Link:        domain.FieldRule{Selector: "h2 a", Attr: "href"},
		Date:        domain.FieldRule{Selector: "time", Attr: "datetime"},
		Description: domain.FieldRule{Selector: ".excerpt"},
		Image:       domain.FieldRule{Selector: "img[data-src]", Attr: "data-src"},
	}
}

func TestScraper_Extract(t *testing.T) {
	content, err := os.ReadFile("testdata/blog.html")
	require.NoError(t, err)

	s := NewScraper(Params{})
	articles, err := s.Extract(content, baseURL, blogRecipe())
	require.NoError(t, err)
	require.Len(t, articles, 5, "item without title and link skipped")

	assert.Equal(t, "First post", articles[0].Title)
	assert.Equal(t, "https://example.com/posts/first", articles[0].Link)
	assert.Equal(t, "Intro to first post & more", articles[0].Description)
	assert.Equal(t, "https://example.com/img/first.jpg", articles[0].Image)
	require.NotNil(t, articles[0].Published)
	assert.Equal(t, time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), *articles[0].Published)

	assert.Equal(t, "https://example.com/posts/second?utm=1", articles[1].Link, "fragment dropped")
	assert.Equal(t, "https://cdn.example.com/second.jpg", articles[1].Image, "image fallback to first significant img")
	require.NotNil(t, articles[1].Published)
	assert.Equal(t, "2025-01-04", articles[1].Published.Format("2006-01-02"))

	require.NotNil(t, articles[2].Published, "date from date class")
	assert.Equal(t, "2025-01-03", articles[2].Published.Format("2006-01-02"))
	assert.Equal(t, "https://example.com/img/third.jpg", articles[2].Image, "background image")

	assert.Equal(t, "https://example.com/img/fourth-800.webp", articles[3].Image, "picture srcset")
	assert.Nil(t, articles[3].Published)

	assert.Equal(t, "https://example.com/posts/fifth", articles[4].Link, "relative link resolved")
	assert.Empty(t, articles[4].Image)

	hashes := map[string]bool{}
	for _, a := range articles {
		assert.NotEmpty(t, a.Hash)
		hashes[a.Hash] = true
	}
	assert.Len(t, hashes, 5)
}

func TestScraper_ExtractFallbacks(t *testing.T) {
	content, err := os.ReadFile("testdata/blog.html")
	require.NoError(t, err)

	s := NewScraper(Params{MaxItems: 3})
	articles, err := s.Extract(content, baseURL, domain.Recipe{Container: "article"})
	require.NoError(t, err)
	require.Len(t, articles, 3, "limited by max items")
	assert.Equal(t, "First post", articles[0].Title)
	assert.Equal(t, "https://example.com/posts/first", articles[0].Link)
	assert.Equal(t, "Intro to first post & more", articles[0].Description)
	assert.Equal(t, "https://example.com/img/first.jpg", articles[0].Image, "logo skipped, data-src used")
}

func TestScraper_Mismatch(t *testing.T) {
	content, err := os.ReadFile("testdata/blog.html")
	require.NoError(t, err)

	t.Run("container not found", func(t *testing.T) {
		s := NewScraper(Params{})
		_, err := s.Extract(content, baseURL, domain.Recipe{Container: "div.story"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrPatternMismatch))
	})

	t.Run("below min items", func(t *testing.T) {
		s := NewScraper(Params{MinItems: 6})
		_, err := s.Extract(content, baseURL, blogRecipe())
		assert.True(t, errors.Is(err, domain.ErrPatternMismatch))
	})

	t.Run("empty recipe", func(t *testing.T) {
		s := NewScraper(Params{})
		_, err := s.Extract(content, baseURL, domain.Recipe{})
		assert.True(t, errors.Is(err, domain.ErrPatternMismatch))
	})

	t.Run("invalid selector", func(t *testing.T) {
		s := NewScraper(Params{})
		_, err := s.Extract(content, baseURL, domain.Recipe{Container: "article[[["})
		assert.True(t, errors.Is(err, domain.ErrPatternMismatch))
	})
}

func TestSiteInfo(t *testing.T) {
	content, err := os.ReadFile("testdata/blog.html")
	require.NoError(t, err)
	title, desc := SiteInfo(content)
	assert.Equal(t, "Example Blog", title)
	assert.Equal(t, "Posts about things", desc)
}

func TestCanonicalLink(t *testing.T) {
	tbl := []struct {
		href, base, want string
	}{
		{"/a", "https://Example.com/x/y", "https://example.com/a"},
		{"b", "https://example.com/x/y", "https://example.com/x/b"},
		{"HTTPS://EXAMPLE.com/Path#frag", "", "https://example.com/Path"},
		{"#top", "https://example.com/", ""},
		{"javascript:void(0)", "https://example.com/", ""},
		{"mailto:me@example.com", "https://example.com/", ""},
		{"", "https://example.com/", ""},
		{"relative", "", ""},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, CanonicalLink(tt.href, tt.base), tt.href)
	}
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash("https://example.com/a/", "x"), ContentHash("https://EXAMPLE.com/a", "y"), "link wins over title")
	assert.NotEqual(t, ContentHash("https://example.com/a", ""), ContentHash("https://example.com/b", ""))
	assert.Equal(t, ContentHash("", "Some Title"), ContentHash("", "some   title"))
	assert.Len(t, ContentHash("https://example.com/a", ""), 64)
}

func TestCleanTextTruncate(t *testing.T) {
	assert.Equal(t, "hello world & co", CleanText("  <p>hello\n\tworld</p> &amp; co "))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "hello world...", Truncate("hello world and more", 14))
	assert.Equal(t, "абвгд...", Truncate("абвгдежз", 5))
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("yesterday-ish"))
	d := ParseDate("2025-01-02")
	require.NotNil(t, d)
	assert.Equal(t, "2025-01-02", d.Format("2006-01-02"))
	d = ParseDate("Mon, 06 Jan 2025 10:00:00 GMT")
	require.NotNil(t, d)
	assert.Equal(t, 6, d.Day())
}
