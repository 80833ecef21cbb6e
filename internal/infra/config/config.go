package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Session    SessionConfig    `yaml:"session"`
	Drafts     DraftsConfig     `yaml:"drafts"`
	History    HistoryConfig    `yaml:"history"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SummarizerConfig points at the external summarization service.
type SummarizerConfig struct {
	Endpoint         string        `yaml:"endpoint"`
	Timeout          time.Duration `yaml:"timeout"`
	MinSentences     int           `yaml:"minSentences"`
	DefaultLanguage  string        `yaml:"defaultLanguage"`
	DefaultSentences int           `yaml:"defaultSentences"`
}

// SessionConfig controls in-memory session retention.
type SessionConfig struct {
	IdleTTL time.Duration `yaml:"idleTtl"`
}

// DraftsConfig controls where session drafts are kept.
type DraftsConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for draft storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// HistoryConfig controls submission history storage.
type HistoryConfig struct {
	ListLimit int            `yaml:"listLimit"`
	MemoryCap int            `yaml:"memoryCap"`
	Postgres  PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

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
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
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
	if v := os.Getenv("SUMMARIZER_ENDPOINT"); v != "" {
		cfg.Summarizer.Endpoint = v
	}
	if v := os.Getenv("SUMMARIZER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Summarizer.Timeout = parsed
		}
	}
	if v := os.Getenv("SUMMARIZER_DEFAULT_LANGUAGE"); v != "" {
		cfg.Summarizer.DefaultLanguage = v
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.IdleTTL = parsed
		}
	}
	if v := os.Getenv("DRAFTS_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Drafts.TTL = parsed
		}
	}
	if v := os.Getenv("DRAFTS_VALKEY_ENABLED"); v != "" {
		cfg.Drafts.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("DRAFTS_VALKEY_ADDR"); v != "" {
		cfg.Drafts.Valkey.Addr = v
	}
	if v := os.Getenv("HISTORY_LIST_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.ListLimit = parsed
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_DSN"); v != "" {
		cfg.History.Postgres.DSN = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MinConns = int32(parsed)
		}
	}
}

func defaultConfig() *Config {
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
		},
		Summarizer: SummarizerConfig{
			Endpoint:         "http://127.0.0.1:5000/summarize",
			Timeout:          15 * time.Second,
			MinSentences:     2,
			DefaultLanguage:  "en",
			DefaultSentences: 3,
		},
		Session: SessionConfig{
			IdleTTL: 30 * time.Minute,
		},
		Drafts: DraftsConfig{
			TTL: 24 * time.Hour,
			Valkey: ValkeyConfig{
				Enabled: false,
				Prefix:  "summarizer",
			},
		},
		History: HistoryConfig{
			ListLimit: 20,
			MemoryCap: 50,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Summarizer.Endpoint) == "" {
		return errors.New("summarizer.endpoint cannot be empty")
	}
	if c.Summarizer.Timeout <= 0 {
		return errors.New("summarizer.timeout must be positive")
	}
	if c.HTTP.WriteTimeout > 0 && c.HTTP.WriteTimeout <= c.Summarizer.Timeout {
		return errors.New("http.writeTimeout must exceed summarizer.timeout")
	}
	if c.Summarizer.MinSentences < 1 {
		return errors.New("summarizer.minSentences must be at least 1")
	}
	switch c.Summarizer.DefaultLanguage {
	case "en", "hi", "mr":
	default:
		return fmt.Errorf("summarizer.defaultLanguage %q is not supported", c.Summarizer.DefaultLanguage)
	}
	if c.Summarizer.DefaultSentences < 1 {
		return errors.New("summarizer.defaultSentences must be at least 1")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idleTtl must be positive")
	}
	if c.Drafts.TTL < 0 {
		return errors.New("drafts.ttl cannot be negative")
	}
	if c.Drafts.Valkey.Enabled && strings.TrimSpace(c.Drafts.Valkey.Addr) == "" {
		return errors.New("drafts.valkey.addr cannot be empty when valkey drafts are enabled")
	}
	if c.History.ListLimit < 0 {
		return errors.New("history.listLimit cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
