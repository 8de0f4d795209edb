package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/ethix-logistics/internal/domain/checkout"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig      `yaml:"http"`
	Log      LogConfig       `yaml:"log"`
	LLM      LLMConfig       `yaml:"llm"`
	Advisor  AdvisorConfig   `yaml:"advisor"`
	Routing  routing.Config  `yaml:"routing"`
	Checkout checkout.Config `yaml:"checkout"`
	Storage  StorageConfig   `yaml:"storage"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Supported advisor providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig contains the advisor model settings. An empty APIKey disables
// the remote advisor and every evaluation uses the heuristic.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// AdvisorConfig holds the prompt used to derive routing signals.
type AdvisorConfig struct {
	Prompt string `yaml:"prompt"`
}

// Supported snapshot backends.
const (
	BackendMemory   = "memory"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendMinio    = "minio"
	BackendSQLite   = "sqlite"
)

// StorageConfig selects where the storefront snapshot lives.
type StorageConfig struct {
	Backend   string         `yaml:"backend"`
	Namespace string         `yaml:"namespace"`
	Valkey    ValkeyConfig   `yaml:"valkey"`
	Postgres  PostgresConfig `yaml:"postgres"`
	Minio     MinioConfig    `yaml:"minio"`
	SQLite    SQLiteConfig   `yaml:"sqlite"`
}

// ValkeyConfig contains connection information for the valkey backend.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// MinioConfig targets any S3 compatible object store, R2 included.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// SQLiteConfig points at a local database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(v)
	}
	// The storefront historically read API_KEY; the provider specific names win.
	for _, name := range []string{"API_KEY", "GEMINI_API_KEY", "LLM_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			cfg.LLM.APIKey = v
		}
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("ADVISOR_PROMPT"); v != "" {
		cfg.Advisor.Prompt = v
	}
	if v := os.Getenv("CHECKOUT_HUB_ID"); v != "" {
		cfg.Checkout.HubID = v
	}
	if v := os.Getenv("CHECKOUT_ADVISOR_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Checkout.AdvisorConcurrency = parsed
		}
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("STORAGE_NAMESPACE"); v != "" {
		cfg.Storage.Namespace = v
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Storage.Valkey.Addr = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.Storage.Minio.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.Storage.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Storage.Minio.SecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.Storage.Minio.Bucket = v
	}
	if v := os.Getenv("MINIO_REGION"); v != "" {
		cfg.Storage.Minio.Region = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLite.Path = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Log: LogConfig{Level: "info"},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Model:       "gemini-3-flash-preview",
			Temperature: 0.2,
			Timeout:     8 * time.Second,
		},
		Advisor: AdvisorConfig{
			Prompt: "You are an ethical logistics advisor. Analyze the product and its medical context and return normalized scores between 0 and 1 for medical urgency, time sensitivity, ethical risk and business relevance, with a one sentence explanation.",
		},
		Routing:  routing.DefaultConfig(),
		Checkout: checkout.DefaultConfig(),
		Storage: StorageConfig{
			Backend:   BackendMemory,
			Namespace: "ethix",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			Minio: MinioConfig{
				Bucket: "ethix-snapshots",
				Region: "auto",
			},
			SQLite: SQLiteConfig{
				Path: "data/ethix.db",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if strings.TrimSpace(c.Advisor.Prompt) == "" {
		return errors.New("advisor.prompt cannot be empty")
	}
	if err := c.Routing.Validate(); err != nil {
		return fmt.Errorf("routing: %w", err)
	}
	if c.Checkout.AdvisorConcurrency <= 0 {
		return errors.New("checkout.advisorConcurrency must be positive")
	}
	if c.Checkout.ExpressProfitImpact < 0 {
		return errors.New("checkout.expressProfitImpact cannot be negative")
	}
	if c.Checkout.Region.LatSpan <= 0 || c.Checkout.Region.LonSpan <= 0 {
		return errors.New("checkout.region spans must be positive")
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendValkey:
		if strings.TrimSpace(c.Storage.Valkey.Addr) == "" {
			return errors.New("storage.valkey.addr cannot be empty when valkey is selected")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return errors.New("storage.postgres.dsn cannot be empty when postgres is selected")
		}
	case BackendMinio:
		if strings.TrimSpace(c.Storage.Minio.Endpoint) == "" || strings.TrimSpace(c.Storage.Minio.Bucket) == "" {
			return errors.New("storage.minio endpoint and bucket are required when minio is selected")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLite.Path) == "" {
			return errors.New("storage.sqlite.path cannot be empty when sqlite is selected")
		}
	default:
		return fmt.Errorf("storage.backend %q is not supported", c.Storage.Backend)
	}
	return nil
}
