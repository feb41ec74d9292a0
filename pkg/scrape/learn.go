package scrape

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/sitefeed/pkg/domain"
)

// containerSel finds article-like blocks on pages with common markup
const containerSel = `article, div[class*="post"], div[class*="article"], div[class*="news"], div[class*="entry"], ` +
	`div[class*="item"], div[class*="story"], div[class*="blog"], li[class*="post"], li[class*="article"], ` +
	`li[class*="news"], li[class*="entry"], li[class*="item"]`

var classNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// GenericRecipe returns heuristic recipe matching common article markup
func GenericRecipe() domain.Recipe {
	return domain.Recipe{Container: containerSel}
}

// Containers returns up to max article-like blocks of the document. Wrappers holding several
// blocks and blocks nested inside other kept blocks are skipped.
func Containers(doc *goquery.Document, max int) *goquery.Selection {
	kept := doc.Find(containerSel).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find(containerSel).Length() < 2
	})
	kept = kept.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Parents().FilterSelection(kept).Length() == 0
	})
	if max > 0 && kept.Length() > max {
		kept = kept.Slice(0, max)
	}
	return kept
}

type candidate struct {
	selector string
	depth    int // distance from article link, larger is outer
	matched  int // elements matched by selector
	good     int // matched elements holding exactly one known link
	sample   *goquery.Selection
}

// Learn derives a recipe from the page and articles known to be on it, e.g. returned by AI.
// The container is the element signature most consistently wrapping exactly one known link.
func Learn(content []byte, baseURL string, known []domain.Article) (*domain.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	links := map[string]bool{}
	for _, a := range known {
		if l := CanonicalLink(a.Link, baseURL); l != "" {
			links[ContentHash(l, "")] = true
		}
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("no known links: %w", domain.ErrPatternMismatch)
	}

	isKnown := func(a *goquery.Selection) bool {
		l := CanonicalLink(a.AttrOr("href", ""), baseURL)
		return l != "" && links[ContentHash(l, "")]
	}

	candidates := map[string]*candidate{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if !isKnown(a) {
			return
		}
		a.Parents().EachWithBreak(func(depth int, p *goquery.Selection) bool {
			name := goquery.NodeName(p)
			if name == "body" || name == "html" {
				return false
			}
			sig := signature(p)
			if sig == "" {
				return depth < 6
			}
			if c, ok := candidates[sig]; !ok || c.depth < depth {
				candidates[sig] = &candidate{selector: sig, depth: depth}
			}
			return depth < 6
		})
	})

	var best *candidate
	for _, c := range candidates {
		matched := doc.Find(c.selector)
		c.matched = matched.Length()
		matched.Each(func(_ int, m *goquery.Selection) {
			uniq := map[string]bool{}
			m.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
				if isKnown(a) {
					uniq[CanonicalLink(a.AttrOr("href", ""), baseURL)] = true
				}
			})
			if len(uniq) == 1 {
				c.good++
				if c.sample == nil {
					c.sample = m
				}
			}
		})
		if c.good == 0 {
			continue
		}
		if best == nil || better(c, best) {
			best = c
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no container wraps known links: %w", domain.ErrPatternMismatch)
	}

	recipe := &domain.Recipe{Container: best.selector}
	fillFieldRules(recipe, best.sample, isKnown)
	return recipe, nil
}

// better compares candidates by covered links, then prefers outer elements, then precision
func better(a, b *candidate) bool {
	if a.good != b.good {
		return a.good > b.good
	}
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	pa, pb := float64(a.good)/float64(a.matched), float64(b.good)/float64(b.matched)
	if pa != pb {
		return pa > pb
	}
	return a.selector < b.selector
}

// fillFieldRules sets field selectors relative to the sample container
func fillFieldRules(recipe *domain.Recipe, sample *goquery.Selection, isKnown func(*goquery.Selection) bool) {
	heading := sample.Find("h1, h2, h3, h4, h5, h6").First()
	if heading.Length() > 0 {
		recipe.Title = domain.FieldRule{Selector: signatureOr(heading)}
	}

	var anchor *goquery.Selection
	sample.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if isKnown(a) {
			anchor = a
			return false
		}
		return true
	})
	if anchor != nil {
		sel := signatureOr(anchor)
		if heading.Length() > 0 && anchor.ParentsFiltered(goquery.NodeName(heading)).Length() > 0 {
			sel = recipe.Title.Selector + " a"
		}
		recipe.Link = domain.FieldRule{Selector: sel + "[href]", Attr: "href"}
		if recipe.Title.Selector == "" {
			recipe.Title = domain.FieldRule{Selector: sel}
		}
	}

	if sample.Find("time[datetime]").Length() > 0 {
		recipe.Date = domain.FieldRule{Selector: "time[datetime]", Attr: "datetime"}
	} else if el := sample.Find(`[class*="date"], [class*="published"]`).First(); el.Length() > 0 {
		recipe.Date = domain.FieldRule{Selector: signatureOr(el)}
	}

	if el := sample.Find(`[class*="excerpt"], [class*="summary"], [class*="description"]`).First(); el.Length() > 0 {
		recipe.Description = domain.FieldRule{Selector: signatureOr(el)}
	} else if sample.Find("p").Length() > 0 {
		recipe.Description = domain.FieldRule{Selector: "p"}
	}

	sample.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if !significantImage(img) {
			return true
		}
		recipe.Image = domain.FieldRule{Selector: signatureOr(img)}
		return false
	})
}

// signature returns tag.class selector for element, empty if element has no usable class
// and its tag alone is too generic
func signature(sel *goquery.Selection) string {
	name := goquery.NodeName(sel)
	classes := usableClasses(sel)
	if len(classes) > 0 {
		return name + "." + classes[0]
	}
	switch name {
	case "article", "li", "tr":
		return name
	}
	return ""
}

// signatureOr returns signature or the bare tag name
func signatureOr(sel *goquery.Selection) string {
	if sig := signature(sel); sig != "" {
		return sig
	}
	return goquery.NodeName(sel)
}

// usableClasses returns css-safe classes, article-like ones first
func usableClasses(sel *goquery.Selection) []string {
	var res []string
	for _, c := range strings.Fields(sel.AttrOr("class", "")) {
		if classNameRe.MatchString(c) {
			res = append(res, c)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return articleLike(res[i]) && !articleLike(res[j]) })
	return res
}

func articleLike(class string) bool {
	lower := strings.ToLower(class)
	for _, k := range []string{"post", "article", "news", "entry", "item", "story", "blog", "card"} {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
