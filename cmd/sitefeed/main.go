package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/umputun/sitefeed/pkg/cache"
	"github.com/umputun/sitefeed/pkg/config"
	"github.com/umputun/sitefeed/pkg/credentials"
	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/fetch"
	"github.com/umputun/sitefeed/pkg/llm"
	"github.com/umputun/sitefeed/pkg/metrics"
	"github.com/umputun/sitefeed/pkg/orchestrator"
	"github.com/umputun/sitefeed/pkg/pattern"
	"github.com/umputun/sitefeed/pkg/repository"
	"github.com/umputun/sitefeed/pkg/scheduler"
	"github.com/umputun/sitefeed/pkg/scrape"
	"github.com/umputun/sitefeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"sitefeed.yml" description:"configuration file"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	log.Printf("[INFO] starting sitefeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components from the config and serves http api until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	SetupLog(opts.Debug, cfg.Secrets()...) // api keys from config never reach the logs

	cipher, err := credentials.LoadOrCreateCipher(cfg.Credentials.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to load encryption key: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		Cipher:          cipher,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if err := seedKeys(ctx, repos.Credential, cfg); err != nil {
		return fmt.Errorf("failed to store api keys: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	var pageCache fetch.Cache = cache.NewMemory()
	if cfg.Cache.Type == "sqlite" {
		pageCache = repos.Cache
		go purgeCache(ctx, repos.Cache, cfg.Cache.PurgeInterval)
	}

	fetcher := fetch.NewChain(collector.Cache(pageCache), fetch.Params{
		Timeout:              cfg.Fetch.Timeout,
		Attempts:             cfg.Fetch.Attempts,
		RetryDelay:           cfg.Fetch.RetryDelay,
		MinBodyLength:        cfg.Fetch.MinBodyLength,
		ChallengeMarkers:     cfg.Fetch.ChallengeMarkers,
		HostInterval:         cfg.Fetch.HostInterval,
		DelayedWait:          cfg.Fetch.DelayedWait,
		BlockPrivateNetworks: cfg.Fetch.BlockPrivateNetworks,
	})

	providers := make(map[string]llm.Provider, len(cfg.LLM.Providers))
	for name, p := range cfg.LLM.Providers {
		providers[name] = llm.Provider{Endpoint: p.Endpoint, Model: p.Model, JSONMode: p.JSONMode}
	}
	aiClient := llm.NewOpenAIClient(providers, &http.Client{Timeout: cfg.LLM.Timeout})
	pool := credentials.NewPool(repos.Credential, cipher, credentials.Params{
		FailureThreshold: cfg.Credentials.FailureThreshold,
		Cooldown:         cfg.Credentials.Cooldown,
	})
	analyzer := llm.NewAnalyzer(aiClient, pool, llm.Params{
		Timeout:          cfg.LLM.Timeout,
		Attempts:         cfg.LLM.Attempts,
		MaxContentLength: cfg.LLM.MaxContentLength,
		MaxItems:         cfg.Extraction.MaxItems,
		Temperature:      cfg.LLM.Temperature,
		MaxTokens:        cfg.LLM.MaxTokens,
	})

	patterns := pattern.NewStore(repos.Pattern)
	orch := orchestrator.New(orchestrator.Deps{
		Fetcher: collector.Fetcher(fetcher),
		Scraper: scrape.NewScraper(scrape.Params{
			MinItems:          cfg.Extraction.MinSmartItems,
			MaxItems:          cfg.Extraction.MaxItems,
			DescriptionLength: cfg.Extraction.DescriptionLength,
		}),
		Patterns: patterns,
		Analyzer: analyzer,
		Feeds:    repos.Feed,
		Sessions: repos.Session,
		Metrics:  collector,
	}, orchestrator.Params{
		MinSmartItems:   cfg.Extraction.MinSmartItems,
		MinAIItems:      cfg.Extraction.MinAIItems,
		MaxItems:        cfg.Extraction.MaxItems,
		DefaultProvider: cfg.LLM.DefaultProvider,
	})

	sched := scheduler.NewScheduler(repos.Feed, orch, scheduler.Params{
		UpdateInterval: time.Duration(cfg.Schedule.UpdateInterval) * time.Minute,
		MaxWorkers:     cfg.Schedule.MaxWorkers,
	})
	if cfg.Schedule.AutoStart {
		sched.Start(ctx)
	}
	defer sched.Stop()

	srv := server.New(server.Deps{
		Orchestrator: orch,
		Feeds:        repos.Feed,
		Patterns: struct {
			*repository.PatternRepository
			*pattern.Store
		}{repos.Pattern, patterns},
		Scheduler: sched,
		Keys:      repos.Credential,
		Sessions:  repos.Session,
		Providers: aiClient,
		Metrics:   metrics.Handler(registry),
	}, server.Params{
		Listen:  cfg.Server.Listen,
		Timeout: cfg.Server.Timeout,
		BaseURL: cfg.Server.BaseURL,
		Version: revision,
		Debug:   opts.Debug,
	})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

type keyAdder interface {
	AddKey(ctx context.Context, provider, secret string) (*domain.APIKeyRecord, error)
}

// seedKeys stores api keys listed in config, already stored keys are skipped
func seedKeys(ctx context.Context, keys keyAdder, cfg *config.Config) error {
	for provider, p := range cfg.LLM.Providers {
		added := 0
		for _, key := range p.Keys {
			if key == "" {
				continue
			}
			if _, err := keys.AddKey(ctx, provider, key); err != nil {
				if errors.Is(err, domain.ErrDuplicateKey) {
					continue
				}
				return fmt.Errorf("add key for %s: %w", provider, err)
			}
			added++
		}
		if added > 0 {
			log.Printf("[INFO] stored %d new api keys for %s", added, provider)
		}
	}
	return nil
}

type cachePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// purgeCache removes expired cache entries on start and then every interval
func purgeCache(ctx context.Context, purger cachePurger, interval time.Duration) {
	purge := func() {
		removed, err := purger.PurgeExpired(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[WARN] failed to purge page cache: %v", err)
			}
			return
		}
		if removed > 0 {
			log.Printf("[DEBUG] purged %d expired cache entries", removed)
		}
	}

	purge()
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}

// SetupLog configures lgr and the standard logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
