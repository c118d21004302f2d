// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/lead-radar/internal/enrichment"
	"github.com/jonathan/lead-radar/internal/llm"
	"github.com/jonathan/lead-radar/internal/refresh"
)

// Config represents the application configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from the environment.
type Config struct {
	// API keys
	PlacesAPIKey    string `json:"places_api_key,omitempty" yaml:"places_api_key,omitempty"`
	PageSpeedAPIKey string `json:"pagespeed_api_key,omitempty" yaml:"pagespeed_api_key,omitempty"`
	LLMAPIKey       string `json:"llm_api_key,omitempty" yaml:"llm_api_key,omitempty"`

	// LLM
	LLMProvider string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty" validate:"omitempty,oneof=anthropic gemini openai"`
	LLMModel    string `json:"llm_model,omitempty" yaml:"llm_model,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty" validate:"omitempty,url"`

	// Server
	Port           int      `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`

	// Enrichment, in seconds
	PageTimeoutSec   int    `json:"page_timeout_sec,omitempty" yaml:"page_timeout_sec,omitempty" validate:"omitempty,min=1,max=120"`
	DetailTimeoutSec int    `json:"detail_timeout_sec,omitempty" yaml:"detail_timeout_sec,omitempty" validate:"omitempty,min=1,max=120"`
	SpeedTimeoutSec  int    `json:"speed_timeout_sec,omitempty" yaml:"speed_timeout_sec,omitempty" validate:"omitempty,min=1,max=300"`
	MaxBatch         int    `json:"max_batch,omitempty" yaml:"max_batch,omitempty" validate:"omitempty,min=1,max=100"`
	MaxConcurrency   int    `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty" validate:"omitempty,min=1"`
	UserAgent        string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	UseBrowser       bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Render JavaScript-only homepages

	// Scheduled refresh
	RefreshSchedule  string `json:"refresh_schedule,omitempty" yaml:"refresh_schedule,omitempty"`
	RefreshBatchSize int    `json:"refresh_batch_size,omitempty" yaml:"refresh_batch_size,omitempty" validate:"omitempty,min=1,max=500"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// DefaultPort is used when no port is configured.
const DefaultPort = 8080

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables.
func FromEnv() Config {
	cfg := Config{
		PlacesAPIKey:    os.Getenv("GOOGLE_PLACES_API_KEY"),
		PageSpeedAPIKey: os.Getenv("PAGESPEED_API_KEY"),
		LLMProvider:     strings.ToLower(os.Getenv("LLM_PROVIDER")),
		LLMModel:        os.Getenv("LLM_MODEL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RefreshSchedule: os.Getenv("REFRESH_SCHEDULE"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	cfg.LLMAPIKey = llmKeyFromEnv(cfg.LLMProvider)
	return cfg
}

// llmKeyFromEnv picks the API key variable matching the provider.
func llmKeyFromEnv(provider string) string {
	switch llm.Provider(provider) {
	case llm.ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	case llm.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("ANTHROPIC_API_KEY")
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required keys since each command needs a different set.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.RefreshSchedule != "" {
		if _, err := refresh.ParseSchedule(c.RefreshSchedule); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer file values under environment values and CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PlacesAPIKey == "" {
		result.PlacesAPIKey = defaults.PlacesAPIKey
	}
	if result.PageSpeedAPIKey == "" {
		result.PageSpeedAPIKey = defaults.PageSpeedAPIKey
	}
	if result.LLMAPIKey == "" {
		result.LLMAPIKey = defaults.LLMAPIKey
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.LLMModel == "" {
		result.LLMModel = defaults.LLMModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.RefreshSchedule == "" {
		result.RefreshSchedule = defaults.RefreshSchedule
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PageTimeoutSec == 0 {
		result.PageTimeoutSec = defaults.PageTimeoutSec
	}
	if result.DetailTimeoutSec == 0 {
		result.DetailTimeoutSec = defaults.DetailTimeoutSec
	}
	if result.SpeedTimeoutSec == 0 {
		result.SpeedTimeoutSec = defaults.SpeedTimeoutSec
	}
	if result.MaxBatch == 0 {
		result.MaxBatch = defaults.MaxBatch
	}
	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = defaults.MaxConcurrency
	}
	if result.RefreshBatchSize == 0 {
		result.RefreshBatchSize = defaults.RefreshBatchSize
	}

	// Bool fields: true on either side wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Load reads the optional config file and overlays the environment on top of it.
func Load(path string) (*Config, error) {
	file := &Config{}
	if path != "" {
		var err error
		if file, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	env := FromEnv()
	merged := env.MergeWithDefaults(*file)
	if merged.Port == 0 {
		merged.Port = DefaultPort
	}
	// The provider may come from the file, so pick the key variable after merging.
	if key := llmKeyFromEnv(merged.LLMProvider); key != "" {
		merged.LLMAPIKey = key
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Enrichment returns the orchestrator config.
func (c *Config) Enrichment() enrichment.Config {
	return enrichment.Config{
		PageTimeout:    seconds(c.PageTimeoutSec),
		DetailTimeout:  seconds(c.DetailTimeoutSec),
		SpeedTimeout:   seconds(c.SpeedTimeoutSec),
		UserAgent:      c.UserAgent,
		MaxBatch:       c.MaxBatch,
		MaxConcurrency: c.MaxConcurrency,
	}
}

// LLM returns the model config for the configured provider.
func (c *Config) LLM() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return nil, err
	}
	cfg := llm.ConfigFor(provider)
	if c.LLMModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.LLMModel)
	}
	return cfg, nil
}

// Refresh returns the scheduled refresh config.
func (c *Config) Refresh() refresh.Config {
	return refresh.Config{
		Schedule:  c.RefreshSchedule,
		BatchSize: c.RefreshBatchSize,
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf(":%d", port)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
