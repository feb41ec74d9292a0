package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/sitefeed/pkg/scrape"
)

const systemPrompt = `You are an expert at analyzing websites and extracting structured article lists for RSS feeds.
You always answer with a single valid JSON object and nothing else.`

const sampleMarkupLength = 1500

// noise removed before content is prepared
const noiseSel = "script, style, noscript, iframe, svg, form, button, nav, footer, aside"

// PrepareContent turns page html into compact text for the model. Article-like blocks are
// listed with their title, link, date, image and text plus a markup sample of the first block.
// Pages without such blocks fall back to the main text found by trafilatura.
// The result is limited to maxLen characters.
func PrepareContent(content []byte, pageURL string, maxLen int) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return scrape.Truncate(string(content), maxLen)
	}
	doc.Find(noiseSel).Remove()

	var sb strings.Builder
	if title := scrape.CleanText(doc.Find("title").First().Text()); title != "" {
		sb.WriteString(fmt.Sprintf("PAGE TITLE: %s\n\n", title))
	}

	blocks := scrape.Containers(doc, 15)
	if blocks.Length() > 0 {
		if markup, err := goquery.OuterHtml(blocks.First()); err == nil {
			sb.WriteString("SAMPLE MARKUP OF FIRST ARTICLE:\n")
			sb.WriteString(scrape.Truncate(strings.Join(strings.Fields(markup), " "), sampleMarkupLength))
			sb.WriteString("\n\n")
		}
		blocks.Each(func(i int, s *goquery.Selection) {
			sb.WriteString(describeBlock(i+1, s, pageURL))
		})
		return scrape.Truncate(sb.String(), maxLen)
	}

	sb.WriteString("CONTENT:\n")
	sb.WriteString(mainText(content, doc, pageURL))
	return scrape.Truncate(sb.String(), maxLen)
}

func describeBlock(n int, s *goquery.Selection, pageURL string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ARTICLE %d:\n", n))
	if h := scrape.CleanText(s.Find("h1, h2, h3, h4, h5, h6").First().Text()); h != "" {
		sb.WriteString("TITLE: " + h + "\n")
	}
	href := s.Find("h1 a[href], h2 a[href], h3 a[href], h4 a[href]").First().AttrOr("href", "")
	if href == "" {
		href = s.Find("a[href]").First().AttrOr("href", "")
	}
	if l := scrape.CanonicalLink(href, pageURL); l != "" {
		sb.WriteString("LINK: " + l + "\n")
	}
	if tm := s.Find("time").First(); tm.Length() > 0 {
		sb.WriteString("DATE: " + tm.AttrOr("datetime", scrape.CleanText(tm.Text())) + "\n")
	}
	img := s.Find("img").First()
	if src := img.AttrOr("src", img.AttrOr("data-src", "")); src != "" {
		if l := scrape.CanonicalLink(src, pageURL); l != "" {
			sb.WriteString("IMAGE: " + l + "\n")
		}
	}
	sb.WriteString("CONTENT: " + scrape.Truncate(scrape.CleanText(s.Text()), 300) + "\n\n")
	return sb.String()
}

// mainText extracts readable text with trafilatura, falling back to the body text
func mainText(content []byte, doc *goquery.Document, pageURL string) string {
	opts := trafilatura.Options{EnableFallback: true, ExcludeComments: true, IncludeLinks: true, Deduplicate: true}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}
	if res, err := trafilatura.Extract(bytes.NewReader(content), opts); err == nil && res != nil && res.ContentText != "" {
		return res.ContentText
	}
	return scrape.CleanText(doc.Find("body").Text())
}

// buildPrompt asks for page metadata, articles and a css recipe reproducing them
func buildPrompt(pageURL, prepared string, maxItems int) string {
	return fmt.Sprintf(`Analyze this website content and extract the latest articles to build an RSS feed.

URL: %s

%s

Return a JSON object with:
- "title": site title
- "description": short site description
- "items": up to %d articles, each with "title", "link" (full URL), "description" (100-200 words about what the article covers),
  "image" (full URL or empty) and "pubDate" (YYYY-MM-DD or empty)
- "recipe": CSS selectors reproducing the list from the page markup, with "container" matching each article block and
  "title", "link", "date", "description", "image" relative to the container (empty if unknown)

Example:
{
  "title": "Site Title",
  "description": "Site description",
  "items": [
    {"title": "Article Title", "link": "https://example.com/article", "description": "What the article covers...",
     "image": "https://example.com/image.jpg", "pubDate": "2024-10-01"}
  ],
  "recipe": {"container": "article.post", "title": "h2", "link": "h2 a", "date": "time", "description": "p", "image": "img"}
}

Make sure each article has a UNIQUE title and link. Use only articles present in the content.`, pageURL, prepared, maxItems)
}

// aiResponse is the json answer expected from the model
type aiResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []aiItem `json:"items"`
	Recipe      struct {
		Container   string `json:"container"`
		Title       string `json:"title"`
		Link        string `json:"link"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Image       string `json:"image"`
	} `json:"recipe"`
}

type aiItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PubDate     string `json:"pubDate"`
}

var errMalformed = errors.New("malformed ai response")

// parseResponse extracts json object from model output, tolerating code fences and surrounding text
func parseResponse(raw string) (*aiResponse, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start, end := strings.Index(s, "{"), strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no json object found: %w", errMalformed)
	}

	var resp aiResponse
	if err := json.Unmarshal([]byte(s[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse json: %v: %w", err, errMalformed)
	}
	return &resp, nil
}
