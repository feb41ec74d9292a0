package scrape

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/sitefeed/pkg/domain"
)

// NativeFeed is a parsed RSS/Atom/JSON feed
type NativeFeed struct {
	Title       string
	Description string
	Articles    []domain.Article
}

// ParseNative parses content as a syndication feed. Returns false if content is not a feed.
func ParseNative(content []byte, baseURL string, maxItems int) (*NativeFeed, bool) {
	if gofeed.DetectFeedType(bytes.NewReader(content)) == gofeed.FeedTypeUnknown {
		return nil, false
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(content))
	if err != nil {
		return nil, false
	}

	res := &NativeFeed{Title: CleanText(feed.Title), Description: CleanText(feed.Description)}
	seen := map[string]bool{}
	for _, item := range feed.Items {
		if maxItems > 0 && len(res.Articles) >= maxItems {
			break
		}
		link := CanonicalLink(item.Link, baseURL)
		title := CleanText(item.Title)
		if link == "" || title == "" {
			continue
		}
		article := domain.Article{
			Title:       title,
			Link:        link,
			Description: Truncate(CleanText(item.Description), 400),
			Published:   item.PublishedParsed,
		}
		if article.Published == nil {
			article.Published = item.UpdatedParsed
		}
		if item.Image != nil {
			article.Image = imageLink(item.Image.URL, baseURL)
		}
		article.Hash = ContentHash(article.Link, article.Title)
		if seen[article.Hash] {
			continue
		}
		seen[article.Hash] = true
		res.Articles = append(res.Articles, article)
	}
	return res, len(res.Articles) > 0
}

// DiscoverFeeds returns absolute urls of RSS/Atom feeds advertised by an html page
func DiscoverFeeds(content []byte, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil
	}
	var res []string
	doc.Find(`link[type="application/rss+xml"], link[type="application/atom+xml"]`).Each(func(_ int, s *goquery.Selection) {
		if link := CanonicalLink(s.AttrOr("href", ""), baseURL); link != "" {
			res = append(res, link)
		}
	})
	return res
}
