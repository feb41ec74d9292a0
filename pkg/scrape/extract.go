package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/sitefeed/pkg/domain"
)

var (
	bgImageRe     = regexp.MustCompile(`background-image:\s*url\(["']?([^"')]+)["']?\)`)
	skipImageKeys = []string{"icon", "logo", "avatar", "emoji", "spinner", "pixel", "1x1", "button"}
	featuredSel   = strings.Join([]string{
		"img.featured-image", "img.hero-image", "img.thumbnail", "img.cover-image",
		".featured-image img", ".hero-image img", ".thumbnail img", ".cover img",
		".image-wrapper img", ".post-image img",
		`img[class*="featured"]`, `img[class*="thumbnail"]`, `img[class*="cover"]`, `img[class*="hero"]`,
	}, ", ")
)

// extractDate applies date rule, then time elements, then date-like classes
func extractDate(sel *goquery.Selection, rule domain.FieldRule) *time.Time {
	if rule.Selector != "" && rule.Attr == "" {
		if dt, ok := sel.Find(rule.Selector).First().Attr("datetime"); ok {
			if t := ParseDate(dt); t != nil {
				return t
			}
		}
	}
	if v := ruleValue(sel, rule, ""); v != "" {
		if t := ParseDate(v); t != nil {
			return t
		}
	}
	if tm := sel.Find("time").First(); tm.Length() > 0 {
		if dt, ok := tm.Attr("datetime"); ok {
			if t := ParseDate(dt); t != nil {
				return t
			}
		}
		if t := ParseDate(CleanText(tm.Text())); t != nil {
			return t
		}
	}
	el := sel.Find(`[class*="date"], [class*="published"], [class*="created"]`).First()
	if el.Length() > 0 {
		if dt, ok := el.Attr("datetime"); ok {
			if t := ParseDate(dt); t != nil {
				return t
			}
		}
		return ParseDate(CleanText(el.Text()))
	}
	return nil
}

// extractImage applies image rule, then tries featured images, first significant image,
// picture sources, inline background images and lazy-loading data attributes
func extractImage(sel *goquery.Selection, rule domain.FieldRule, baseURL string) string {
	if rule.Selector != "" || rule.Attr != "" {
		nodes := sel
		if rule.Selector != "" {
			nodes = sel.Find(rule.Selector)
		}
		var res string
		nodes.EachWithBreak(func(_ int, node *goquery.Selection) bool {
			if goquery.NodeName(node) == "img" && !significantImage(node) {
				return true
			}
			if rule.Attr != "" {
				res = imageLink(node.AttrOr(rule.Attr, ""), baseURL)
			} else {
				res = imageSource(node, baseURL)
			}
			return res == ""
		})
		if res != "" {
			return res
		}
	}

	if src := imageSource(sel.Find(featuredSel).First(), baseURL); src != "" {
		return src
	}

	var res string
	sel.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if !significantImage(img) {
			return true
		}
		res = imageSource(img, baseURL)
		return res == ""
	})
	if res != "" {
		return res
	}

	if srcset, ok := sel.Find("picture source[srcset]").First().Attr("srcset"); ok {
		if src := imageLink(firstSrcset(srcset), baseURL); src != "" {
			return src
		}
	}

	sel.Find("[style]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if m := bgImageRe.FindStringSubmatch(el.AttrOr("style", "")); len(m) > 1 {
			res = imageLink(m[1], baseURL)
		}
		return res == ""
	})
	if res != "" {
		return res
	}

	sel.Find("[data-src], [data-image], [data-bg]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		for _, attr := range []string{"data-src", "data-image", "data-bg"} {
			if v := el.AttrOr(attr, ""); v != "" {
				if res = imageLink(v, baseURL); res != "" {
					return false
				}
			}
		}
		return true
	})
	return res
}

// imageSource returns image url of an img element checking lazy-loading attributes and srcset
func imageSource(img *goquery.Selection, baseURL string) string {
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"src", "data-src", "data-lazy-src", "data-original"} {
		if src := imageLink(img.AttrOr(attr, ""), baseURL); src != "" {
			return src
		}
	}
	if srcset := img.AttrOr("srcset", ""); srcset != "" {
		return imageLink(firstSrcset(srcset), baseURL)
	}
	return ""
}

// significantImage filters out icons, logos, tracking pixels and tiny images
func significantImage(img *goquery.Selection) bool {
	src := strings.ToLower(img.AttrOr("src", "") + " " + img.AttrOr("data-src", ""))
	alt := strings.ToLower(img.AttrOr("alt", ""))
	cls := strings.ToLower(img.AttrOr("class", ""))
	for _, k := range skipImageKeys {
		if strings.Contains(src, k) || strings.Contains(alt, k) || strings.Contains(cls, k) {
			return false
		}
	}
	w, werr := strconv.Atoi(strings.TrimSuffix(img.AttrOr("width", ""), "px"))
	h, herr := strconv.Atoi(strings.TrimSuffix(img.AttrOr("height", ""), "px"))
	if werr == nil && herr == nil && (w < 80 || h < 80) {
		return false
	}
	return true
}

func firstSrcset(srcset string) string {
	first := strings.TrimSpace(strings.Split(srcset, ",")[0])
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	return first
}

func imageLink(src, baseURL string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	return CanonicalLink(src, baseURL)
}
