// Package scrape extracts articles from html pages with learned recipes, learns recipes
// from known articles and parses native RSS/Atom content.
package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/sitefeed/pkg/domain"
)

// Params for the scraper
type Params struct {
	MinItems          int // fewer extracted items is a pattern mismatch
	MaxItems          int
	DescriptionLength int
}

// Scraper applies recipes to page content without any AI involvement
type Scraper struct {
	params Params
}

// NewScraper makes scraper, zero params replaced by defaults
func NewScraper(params Params) *Scraper {
	if params.MinItems <= 0 {
		params.MinItems = 1
	}
	if params.MaxItems <= 0 {
		params.MaxItems = 20
	}
	if params.DescriptionLength <= 0 {
		params.DescriptionLength = 400
	}
	return &Scraper{params: params}
}

// Extract applies recipe to content. Returns domain.ErrPatternMismatch if fewer than MinItems
// valid articles found.
func (s *Scraper) Extract(content []byte, baseURL string, recipe domain.Recipe) ([]domain.Article, error) {
	if !recipe.Valid() {
		return nil, fmt.Errorf("empty recipe: %w", domain.ErrPatternMismatch)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var res []domain.Article
	seen := map[string]bool{}
	doc.Find(recipe.Container).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		article, ok := s.extractArticle(sel, baseURL, recipe)
		if !ok || seen[article.Hash] {
			return true
		}
		seen[article.Hash] = true
		res = append(res, article)
		return len(res) < s.params.MaxItems
	})

	if len(res) < s.params.MinItems {
		return nil, fmt.Errorf("%d items with container %q, expected at least %d: %w",
			len(res), recipe.Container, s.params.MinItems, domain.ErrPatternMismatch)
	}
	return res, nil
}

// SiteInfo returns page title and meta description
func SiteInfo(content []byte) (title, description string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", ""
	}
	title = CleanText(doc.Find("title").First().Text())
	if title == "" {
		title = CleanText(doc.Find("h1").First().Text())
	}
	description = CleanText(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if description == "" {
		description = CleanText(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	return title, description
}

func (s *Scraper) extractArticle(sel *goquery.Selection, baseURL string, recipe domain.Recipe) (domain.Article, bool) {
	title := ruleText(sel, recipe.Title)
	if title == "" {
		title = CleanText(sel.Find("h1, h2, h3, h4, h5, h6").First().Text())
	}

	href := ruleValue(sel, recipe.Link, "href")
	if href == "" {
		href = findHref(sel)
	}
	link := CanonicalLink(href, baseURL)

	if title == "" && link != "" {
		title = CleanText(sel.Find("a[href]").First().Text())
	}
	if title == "" || link == "" {
		return domain.Article{}, false
	}

	article := domain.Article{
		Title:       title,
		Link:        link,
		Description: Truncate(s.description(sel, recipe.Description, title), s.params.DescriptionLength),
		Image:       extractImage(sel, recipe.Image, baseURL),
		Published:   extractDate(sel, recipe.Date),
	}
	article.Hash = ContentHash(article.Link, article.Title)
	return article, true
}

func (s *Scraper) description(sel *goquery.Selection, rule domain.FieldRule, title string) string {
	if desc := ruleText(sel, rule); desc != "" {
		return desc
	}
	if desc := CleanText(sel.Find(`[class*="excerpt"], [class*="summary"], [class*="description"]`).First().Text()); desc != "" {
		return desc
	}
	if desc := CleanText(sel.Find("p").First().Text()); desc != "" && desc != title {
		return desc
	}
	// whole container text without the title
	text := CleanText(sel.Text())
	return strings.TrimSpace(strings.Replace(text, title, "", 1))
}

// findHref returns href of the container itself if it is a link, or of the first link inside
func findHref(sel *goquery.Selection) string {
	if goquery.NodeName(sel) == "a" {
		if href, ok := sel.Attr("href"); ok {
			return href
		}
	}
	if href, ok := sel.Find("h1 a[href], h2 a[href], h3 a[href], h4 a[href]").First().Attr("href"); ok {
		return href
	}
	href, _ := sel.Find("a[href]").First().Attr("href")
	return href
}

// ruleText applies rule returning cleaned text or attribute value
func ruleText(sel *goquery.Selection, rule domain.FieldRule) string {
	return CleanText(ruleValue(sel, rule, ""))
}

// ruleValue applies rule, using defAttr when rule has no attribute. Empty defAttr means text.
func ruleValue(sel *goquery.Selection, rule domain.FieldRule, defAttr string) string {
	if rule.Selector == "" && rule.Attr == "" {
		return ""
	}
	node := sel
	if rule.Selector != "" {
		node = sel.Find(rule.Selector).First()
		if node.Length() == 0 {
			return ""
		}
	}
	attr := rule.Attr
	if attr == "" {
		attr = defAttr
	}
	if attr == "" {
		return node.Text()
	}
	return strings.TrimSpace(node.AttrOr(attr, ""))
}
