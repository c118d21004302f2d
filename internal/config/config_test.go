package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-radar/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_PLACES_API_KEY", "PAGESPEED_API_KEY", "LLM_PROVIDER", "LLM_MODEL",
		"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "DATABASE_URL",
		"REFRESH_SCHEDULE", "PORT", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"places_api_key": "places-key",
		"llm_provider": "gemini",
		"max_batch": 5,
		"page_timeout_sec": 4,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "places-key", cfg.PlacesAPIKey)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, 5, cfg.MaxBatch)
	assert.Equal(t, 4, cfg.PageTimeoutSec)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
places_api_key: places-key
refresh_schedule: "30 2 * * *"
allowed_origins:
  - http://localhost:3000
  - https://leads.example.ee
use_browser: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "places-key", cfg.PlacesAPIKey)
	assert.Equal(t, "30 2 * * *", cfg.RefreshSchedule)
	assert.Equal(t, []string{"http://localhost:3000", "https://leads.example.ee"}, cfg.AllowedOrigins)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yml", "port: [1, 2"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"full", Config{LLMProvider: "openai", Port: 9000, DatabaseURL: "postgres://u:p@localhost:5432/leads", RefreshSchedule: "0 4 * * 1"}, false},
		{"bad provider", Config{LLMProvider: "mistral"}, true},
		{"bad port", Config{Port: 70000}, true},
		{"bad batch", Config{MaxBatch: 1000}, true},
		{"bad schedule", Config{RefreshSchedule: "nightly"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{PlacesAPIKey: "from-env", Port: 9000}
	defaults := Config{
		PlacesAPIKey:    "from-file",
		PageSpeedAPIKey: "ps-file",
		Port:            8080,
		MaxBatch:        7,
		UseBrowser:      true,
		AllowedOrigins:  []string{"http://localhost:3000"},
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "from-env", merged.PlacesAPIKey)
	assert.Equal(t, "ps-file", merged.PageSpeedAPIKey)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 7, merged.MaxBatch)
	assert.True(t, merged.UseBrowser)
	assert.Equal(t, []string{"http://localhost:3000"}, merged.AllowedOrigins)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_PLACES_API_KEY", "gp")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ant")
	t.Setenv("PORT", "3001")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := FromEnv()

	assert.Equal(t, "gp", cfg.PlacesAPIKey)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_PLACES_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "gem")
	path := writeFile(t, "config.json", `{"places_api_key": "file-key", "llm_provider": "gemini", "max_batch": 3}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.PlacesAPIKey)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "gem", cfg.LLMAPIKey)
	assert.Equal(t, 3, cfg.MaxBatch)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_InvalidMerged(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "mistral")
	_, err := Load("")
	assert.Error(t, err)
}

func TestEnrichment(t *testing.T) {
	cfg := Config{PageTimeoutSec: 4, DetailTimeoutSec: 6, SpeedTimeoutSec: 20, MaxBatch: 5, MaxConcurrency: 3, UserAgent: "bot"}
	e := cfg.Enrichment()

	assert.Equal(t, 4*time.Second, e.PageTimeout)
	assert.Equal(t, 6*time.Second, e.DetailTimeout)
	assert.Equal(t, 20*time.Second, e.SpeedTimeout)
	assert.Equal(t, 5, e.MaxBatch)
	assert.Equal(t, 3, e.MaxConcurrency)
	assert.Equal(t, "bot", e.UserAgent)
}

func TestLLM(t *testing.T) {
	cfg := Config{}
	lc, err := cfg.LLM()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, lc.Provider)

	cfg = Config{LLMProvider: "openai", LLMModel: "gpt-4.1-mini"}
	lc, err = cfg.LLM()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, lc.Provider)
	assert.Equal(t, "gpt-4.1-mini", lc.GetModel(llm.TierStandard))

	_, err = (&Config{LLMProvider: "nope"}).LLM()
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	cfg := Config{RefreshSchedule: "0 5 * * *", RefreshBatchSize: 40}
	r := cfg.Refresh()
	assert.Equal(t, "0 5 * * *", r.Schedule)
	assert.Equal(t, 40, r.BatchSize)
}
