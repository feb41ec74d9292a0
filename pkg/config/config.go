package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go -o schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"description=Public base URL used in generated RSS channel links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:sitefeed.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		UpdateInterval int  `yaml:"update_interval" json:"update_interval" jsonschema:"default=60,description=Feed update interval in minutes"`
		MaxWorkers     int  `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent feed updates"`
		AutoStart      bool `yaml:"auto_start" json:"auto_start" jsonschema:"default=false,description=Start scheduler on application start"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Page fetching configuration"`

	Cache CacheConfig `yaml:"cache" json:"cache" jsonschema:"description=Page content cache configuration"`

	Credentials CredentialsConfig `yaml:"credentials" json:"credentials" jsonschema:"description=API key storage and rotation"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=AI analysis configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article extraction thresholds"`
}

// FetchConfig holds fetch strategy chain settings
type FetchConfig struct {
	Timeout              time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Timeout of a single strategy attempt"`
	Attempts             int           `yaml:"attempts" json:"attempts" jsonschema:"default=3,minimum=1,description=Attempts of the whole strategy chain"`
	RetryDelay           time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Initial delay between chain attempts"`
	MinBodyLength        int           `yaml:"min_body_length" json:"min_body_length" jsonschema:"default=500,description=Shorter pages are treated as challenge stubs"`
	HostInterval         time.Duration `yaml:"host_interval" json:"host_interval" jsonschema:"default=1s,description=Minimal interval between requests to the same host"`
	DelayedWait          time.Duration `yaml:"delayed_wait" json:"delayed_wait" jsonschema:"default=3s,description=Wait before the delayed strategy"`
	BlockPrivateNetworks bool          `yaml:"block_private_networks" json:"block_private_networks" jsonschema:"default=true,description=Refuse to fetch private and loopback addresses"`
	ChallengeMarkers     []string      `yaml:"challenge_markers" json:"challenge_markers" jsonschema:"description=Extra page markers of anti-bot challenges"`
}

// CacheConfig holds content cache settings
type CacheConfig struct {
	Type          string        `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=memory,description=Cache storage"`
	PurgeInterval time.Duration `yaml:"purge_interval" json:"purge_interval" jsonschema:"default=1h,description=Interval of expired entries removal for sqlite cache"`
}

// CredentialsConfig holds api key encryption and rotation settings
type CredentialsConfig struct {
	KeyFile          string        `yaml:"key_file" json:"key_file" jsonschema:"default=sitefeed.key,description=File with the encryption key of stored api keys (created if missing)"`
	FailureThreshold int           `yaml:"failure_threshold" json:"failure_threshold" jsonschema:"default=3,minimum=1,description=Consecutive failures disabling a key"`
	Cooldown         time.Duration `yaml:"cooldown" json:"cooldown" jsonschema:"default=15m,description=How long a disabled key stays out of rotation"`
}

// ProviderConfig holds settings of a single OpenAI-compatible AI provider
type ProviderConfig struct {
	Endpoint string   `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	Model    string   `yaml:"model" json:"model" jsonschema:"description=Model name"`
	JSONMode bool     `yaml:"json_mode" json:"json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
	Keys     []string `yaml:"keys" json:"keys" jsonschema:"description=API keys stored encrypted on start (can use environment variables)"`
}

// LLMConfig holds AI analysis settings
type LLMConfig struct {
	DefaultProvider  string                    `yaml:"default_provider" json:"default_provider" jsonschema:"default=openai,description=Provider used when a feed has none"`
	Timeout          time.Duration             `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	Attempts         int                       `yaml:"attempts" json:"attempts" jsonschema:"default=2,minimum=1,description=Calls with different keys before giving up"`
	Temperature      float64                   `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens        int                       `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=4000,description=Maximum tokens in response"`
	MaxContentLength int                       `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=5000,description=Maximum length of page content sent to the model"`
	Providers        map[string]ProviderConfig `yaml:"providers" json:"providers" jsonschema:"description=Provider overrides and keys by provider name"`
}

// ExtractionConfig holds article extraction thresholds
type ExtractionConfig struct {
	MinSmartItems     int `yaml:"min_smart_items" json:"min_smart_items" jsonschema:"default=1,minimum=1,description=Fewer items from a learned pattern fall back to AI"`
	MinAIItems        int `yaml:"min_ai_items" json:"min_ai_items" jsonschema:"default=1,minimum=1,description=Fewer items from AI fail the update"`
	MaxItems          int `yaml:"max_items" json:"max_items" jsonschema:"default=20,minimum=1,description=Maximum items extracted per update"`
	DescriptionLength int `yaml:"description_length" json:"description_length" jsonschema:"default=400,description=Maximum length of item description"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	cfg.Fetch.BlockPrivateNetworks = true // unless explicitly disabled
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// verify keys of the file against embedded schema
	if err := VerifyAgainstEmbeddedSchema([]byte(expanded)); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:sitefeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 60
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	// set defaults for fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 15 * time.Second
	}
	if cfg.Fetch.Attempts == 0 {
		cfg.Fetch.Attempts = 3
	}
	if cfg.Fetch.MinBodyLength == 0 {
		cfg.Fetch.MinBodyLength = 500
	}
	if cfg.Fetch.RetryDelay == 0 {
		cfg.Fetch.RetryDelay = time.Second
	}
	if cfg.Fetch.HostInterval == 0 {
		cfg.Fetch.HostInterval = time.Second
	}
	if cfg.Fetch.DelayedWait == 0 {
		cfg.Fetch.DelayedWait = 3 * time.Second
	}

	// set defaults for cache
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = "sqlite"
	}
	cfg.Cache.Type = strings.ToLower(cfg.Cache.Type)
	if cfg.Cache.PurgeInterval == 0 {
		cfg.Cache.PurgeInterval = time.Hour
	}

	// set defaults for credentials
	if cfg.Credentials.KeyFile == "" {
		cfg.Credentials.KeyFile = "sitefeed.key"
	}
	if cfg.Credentials.FailureThreshold == 0 {
		cfg.Credentials.FailureThreshold = 3
	}
	if cfg.Credentials.Cooldown == 0 {
		cfg.Credentials.Cooldown = 15 * time.Minute
	}

	// set defaults for LLM
	if cfg.LLM.DefaultProvider == "" {
		cfg.LLM.DefaultProvider = "openai"
	}
	cfg.LLM.DefaultProvider = strings.ToLower(cfg.LLM.DefaultProvider)
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.Attempts == 0 {
		cfg.LLM.Attempts = 2
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4000
	}
	if cfg.LLM.MaxContentLength == 0 {
		cfg.LLM.MaxContentLength = 5000
	}

	// set defaults for extraction
	if cfg.Extraction.MinSmartItems == 0 {
		cfg.Extraction.MinSmartItems = 1
	}
	if cfg.Extraction.MinAIItems == 0 {
		cfg.Extraction.MinAIItems = 1
	}
	if cfg.Extraction.MaxItems == 0 {
		cfg.Extraction.MaxItems = 20
	}
	if cfg.Extraction.DescriptionLength == 0 {
		cfg.Extraction.DescriptionLength = 400
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Schedule.UpdateInterval < 1 {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}
	if cfg.Fetch.Attempts < 1 {
		return fmt.Errorf("fetch.attempts must be at least 1")
	}
	if cfg.Cache.Type != "sqlite" && cfg.Cache.Type != "memory" {
		return fmt.Errorf("cache.type must be sqlite or memory, got %q", cfg.Cache.Type)
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Attempts < 1 {
		return fmt.Errorf("llm.attempts must be at least 1")
	}
	for name, p := range cfg.LLM.Providers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("llm.providers has provider with empty name")
		}
		if p.Endpoint != "" && !strings.HasPrefix(p.Endpoint, "http://") && !strings.HasPrefix(p.Endpoint, "https://") {
			return fmt.Errorf("llm.providers.%s.endpoint must be http(s) url", name)
		}
	}
	if cfg.Extraction.MinSmartItems < 1 || cfg.Extraction.MinAIItems < 1 {
		return fmt.Errorf("extraction min items must be at least 1")
	}
	if cfg.Extraction.MaxItems < cfg.Extraction.MinSmartItems || cfg.Extraction.MaxItems < cfg.Extraction.MinAIItems {
		return fmt.Errorf("extraction.max_items must not be less than min items")
	}
	return nil
}

// Secrets returns all api keys from the configuration, used to hide them in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, p := range c.LLM.Providers {
		for _, k := range p.Keys {
			if k = strings.TrimSpace(k); k != "" {
				res = append(res, k)
			}
		}
	}
	return res
}
