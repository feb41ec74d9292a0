// Package feed renders stored feeds as RSS 2.0 and OPML documents
package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/umputun/sitefeed/pkg/domain"
)

// Generator creates RSS feeds from stored articles
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator, baseURL is used for self links
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// SelfLink returns public rss url of the feed
func (g *Generator) SelfLink(feedID int64) string {
	return fmt.Sprintf("%s/rss/%d", g.baseURL, feedID)
}

// GenerateRSS creates an RSS 2.0 document for the feed. If session is saved and no longer logged in,
// a notice item asking to log in again goes first.
func (g *Generator) GenerateRSS(f *domain.Feed, items []domain.Article, session *domain.SessionCookieSet) (string, error) {
	title := f.Title
	if title == "" {
		title = f.URL
	}
	description := f.Description
	if description == "" {
		description = "Articles from " + f.URL
	}

	rssItems := make([]*RSSItem, 0, len(items)+1)
	if session != nil && !session.LoggedIn {
		rssItems = append(rssItems, g.loggedOutItem(f, session))
	}
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	lastBuild := f.UpdatedAt
	if lastBuild.IsZero() {
		lastBuild = g.now()
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          f.URL,
			Description:   description,
			AtomLink:      &AtomLink{Href: g.SelfLink(f.ID), Rel: "self", Type: "application/rss+xml"},
			Generator:     "sitefeed",
			LastBuildDate: lastBuild.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(item domain.Article) *RSSItem {
	published := item.CreatedAt
	if item.Published != nil {
		published = *item.Published
	}

	res := &RSSItem{
		Title:       item.Title,
		Link:        item.Link,
		GUID:        &GUID{Value: item.Hash},
		Description: item.Description,
	}
	if !published.IsZero() {
		res.PubDate = published.Format(time.RFC1123Z)
	}
	if item.Image != "" {
		res.Enclosure = &Enclosure{URL: item.Image, Type: imageType(item.Image)}
	}
	return res
}

func (g *Generator) loggedOutItem(f *domain.Feed, session *domain.SessionCookieSet) *RSSItem {
	name := session.Name
	if name == "" {
		name = session.Origin
	}
	ts := g.now()
	if session.LastValidated != nil {
		ts = *session.LastValidated
	}
	return &RSSItem{
		Title: "🔒 Logged Out - Action Required",
		Link:  f.URL,
		GUID:  &GUID{Value: fmt.Sprintf("logged-out-%d-%d", f.ID, ts.Unix())},
		Description: fmt.Sprintf("Your login session for %s has expired. "+
			"Please log in again to continue receiving feed updates.", name),
		PubDate: ts.Format(time.RFC1123Z),
	}
}

// GenerateOPML creates an OPML file with subscriptions to all feeds
func (g *Generator) GenerateOPML(feeds []domain.Feed) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(feeds))
	for _, f := range feeds {
		title := f.Title
		if title == "" {
			title = f.URL
		}
		outlines = append(outlines, outline{
			Text:    title,
			Title:   title,
			Type:    "rss",
			XMLUrl:  g.SelfLink(f.ID),
			HTMLUrl: f.URL,
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "Sitefeed Subscriptions",
			DateCreated: g.now().Format(time.RFC1123Z),
		},
		Body: body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}

// imageType guesses mime type by image url extension
func imageType(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		p = u.Path
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(p))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
