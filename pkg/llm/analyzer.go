// Package llm analyzes page content with AI providers, producing articles and a recipe
// reproducing them without AI on later updates.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/umputun/sitefeed/pkg/credentials"
	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/scrape"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// Completer makes a chat completion
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// KeyPool hands out provider credentials and takes back the outcome of their use
type KeyPool interface {
	Acquire(ctx context.Context, provider string) (*credentials.Credential, error)
	ReportOutcome(ctx context.Context, cred *credentials.Credential, success bool)
}

// Params for the analyzer
type Params struct {
	Timeout          time.Duration // per provider call
	Attempts         int           // calls with different keys before giving up
	MaxContentLength int
	MaxItems         int
	Temperature      float64
	MaxTokens        int
}

// Request to analyze a page
type Request struct {
	URL      string
	Content  []byte
	Provider string
}

// Analysis is the result of a successful AI analysis
type Analysis struct {
	Title       string
	Description string
	Articles    []domain.Article
	Recipe      domain.Recipe
	RecipeFrom  string // ai, learned or generic
	Credential  string // provider#index of the key used
}

// Analyzer extracts articles from page content with an AI provider
type Analyzer struct {
	completer Completer
	pool      KeyPool
	scraper   *scrape.Scraper
	params    Params
}

// NewAnalyzer makes analyzer, zero params replaced by defaults
func NewAnalyzer(completer Completer, pool KeyPool, params Params) *Analyzer {
	if params.Timeout <= 0 {
		params.Timeout = 60 * time.Second
	}
	if params.Attempts <= 0 {
		params.Attempts = 2
	}
	if params.MaxContentLength <= 0 {
		params.MaxContentLength = 5000
	}
	if params.MaxItems <= 0 {
		params.MaxItems = 20
	}
	if params.Temperature == 0 {
		params.Temperature = 0.3
	}
	if params.MaxTokens <= 0 {
		params.MaxTokens = 4000
	}
	return &Analyzer{
		completer: completer,
		pool:      pool,
		scraper:   scrape.NewScraper(scrape.Params{MinItems: 1, MaxItems: params.MaxItems}),
		params:    params,
	}
}

// Analyze sends prepared page content to the provider. A failed call is reported against the key
// and retried with the next key. Returns domain.ErrExhaustedCredentials if no key is available at all
// and domain.ErrAIAnalysisFailed if all attempts failed.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	prepared := PrepareContent(req.Content, req.URL, a.params.MaxContentLength)
	prompt := buildPrompt(req.URL, prepared, a.params.MaxItems)

	var lastErr error
	for attempt := 1; attempt <= a.params.Attempts; attempt++ {
		cred, err := a.pool.Acquire(ctx, req.Provider)
		if err != nil {
			if attempt == 1 {
				return nil, fmt.Errorf("acquire %s key: %w", req.Provider, err)
			}
			lastErr = errors.Join(lastErr, err)
			break
		}

		resp, err := a.call(ctx, cred, prompt)
		if err != nil {
			a.pool.ReportOutcome(ctx, cred, false)
			lastErr = fmt.Errorf("attempt %d with %s: %w", attempt, cred, err)
			log.Printf("[WARN] ai analysis of %s failed, %v", req.URL, lastErr)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		a.pool.ReportOutcome(ctx, cred, true)

		res := a.buildAnalysis(req, resp)
		res.Credential = cred.String()
		log.Printf("[INFO] ai analysis of %s with %s: %d articles, recipe from %s",
			req.URL, cred, len(res.Articles), res.RecipeFrom)
		return res, nil
	}
	return nil, fmt.Errorf("%w: %s: %w", domain.ErrAIAnalysisFailed, req.URL, lastErr)
}

func (a *Analyzer) call(ctx context.Context, cred *credentials.Credential, prompt string) (*aiResponse, error) {
	secret, err := cred.Secret()
	if err != nil {
		return nil, err
	}
	callCtx, cancel := context.WithTimeout(ctx, a.params.Timeout)
	defer cancel()

	raw, err := a.completer.Complete(callCtx, CompletionRequest{
		Provider:    cred.Provider(),
		APIKey:      secret,
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: a.params.Temperature,
		MaxTokens:   a.params.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return parseResponse(raw)
}

// buildAnalysis normalizes ai items and picks the recipe: the one suggested by the model if it
// reproduces articles on the page, else learned from returned articles, else the generic one
func (a *Analyzer) buildAnalysis(req Request, resp *aiResponse) *Analysis {
	res := &Analysis{Title: scrape.CleanText(resp.Title), Description: scrape.CleanText(resp.Description)}

	seen := map[string]bool{}
	for _, it := range resp.Items {
		title := scrape.CleanText(it.Title)
		link := scrape.CanonicalLink(it.Link, req.URL)
		if title == "" || link == "" {
			continue
		}
		hash := scrape.ContentHash(link, title)
		if seen[hash] {
			continue
		}
		seen[hash] = true
		res.Articles = append(res.Articles, domain.Article{
			Title:       title,
			Link:        link,
			Description: scrape.CleanText(it.Description),
			Image:       scrape.CanonicalLink(it.Image, req.URL),
			Published:   scrape.ParseDate(it.PubDate),
			Hash:        hash,
		})
		if len(res.Articles) >= a.params.MaxItems {
			break
		}
	}

	suggested := domain.Recipe{
		Container:   resp.Recipe.Container,
		Title:       domain.FieldRule{Selector: resp.Recipe.Title},
		Link:        domain.FieldRule{Selector: resp.Recipe.Link, Attr: "href"},
		Date:        domain.FieldRule{Selector: resp.Recipe.Date},
		Description: domain.FieldRule{Selector: resp.Recipe.Description},
		Image:       domain.FieldRule{Selector: resp.Recipe.Image},
	}
	if suggested.Link.Selector == "" {
		suggested.Link.Attr = ""
	}
	if suggested.Valid() {
		if _, err := a.scraper.Extract(req.Content, req.URL, suggested); err == nil {
			res.Recipe, res.RecipeFrom = suggested, "ai"
			return res
		}
	}

	if learned, err := scrape.Learn(req.Content, req.URL, res.Articles); err == nil {
		if _, err := a.scraper.Extract(req.Content, req.URL, *learned); err == nil {
			res.Recipe, res.RecipeFrom = *learned, "learned"
			return res
		}
	}

	res.Recipe, res.RecipeFrom = scrape.GenericRecipe(), "generic"
	return res
}
