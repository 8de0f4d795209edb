package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
http:
  address: ":9090"
routing:
  expressThreshold: 0.75
checkout:
  advisorConcurrency: 8
storage:
  backend: sqlite
  sqlite:
    path: /tmp/ethix.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("API_KEY", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 0.75, cfg.Routing.ExpressThreshold)
	require.Equal(t, 0.40, cfg.Routing.FastThreshold)
	require.Equal(t, 0.40, cfg.Routing.Weights.Medical.UrgencyTime)
	require.Equal(t, 8, cfg.Checkout.AdvisorConcurrency)
	require.Equal(t, "h1", cfg.Checkout.HubID)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, "/tmp/ethix.db", cfg.Storage.SQLite.Path)
	require.Equal(t, "gm-key", cfg.LLM.APIKey)
	require.Equal(t, 3*time.Second, cfg.LLM.Timeout)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLLMKeyPrecedence(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := Default()
	t.Setenv("API_KEY", "legacy")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "preferred")
	applyEnvOverrides(cfg)
	require.Equal(t, "preferred", cfg.LLM.APIKey)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":       func(c *Config) { c.HTTP.Address = "" },
		"bad provider":        func(c *Config) { c.LLM.Provider = "claude" },
		"empty prompt":        func(c *Config) { c.Advisor.Prompt = " " },
		"weights off":         func(c *Config) { c.Routing.Weights.Standard.BusinessValue = 0.9 },
		"zero concurrency":    func(c *Config) { c.Checkout.AdvisorConcurrency = 0 },
		"unknown backend":     func(c *Config) { c.Storage.Backend = "dynamo" },
		"valkey without addr": func(c *Config) { c.Storage.Backend = BackendValkey },
		"postgres no dsn":     func(c *Config) { c.Storage.Backend = BackendPostgres },
		"minio no endpoint":   func(c *Config) { c.Storage.Backend = BackendMinio },
		"rate limit burst":    func(c *Config) { c.HTTP.RateLimit.Burst = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
