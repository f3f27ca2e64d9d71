package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
)

// DefaultAPIBaseURL is the production ArkIDE API host.
const DefaultAPIBaseURL = "https://arkideapi.arc360hub.com"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// ArkIDE API
	APIBaseURL    string        `envconfig:"ARKIDE_API_BASE_URL" default:"https://arkideapi.arc360hub.com"`
	FetchTimeout  time.Duration `envconfig:"ARKIDE_FETCH_TIMEOUT" default:"10s"`
	FetchAttempts int           `envconfig:"ARKIDE_FETCH_ATTEMPTS" default:"1"`

	// Viewer page
	PageCacheControl string `envconfig:"PAGE_CACHE_CONTROL" default:"public, max-age=3600"`

	// HTTP server
	CORSOrigins    string `envconfig:"CORS_ORIGINS"`
	RateLimitRPS   int    `envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst int    `envconfig:"RATE_LIMIT_BURST" default:"100"`
}

// IsDevelopment reports whether console logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required, validation.By(absoluteHTTPURL)),
		validation.Field(&c.FetchTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.FetchAttempts, validation.Required, validation.Min(1), validation.Max(10)),
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.RateLimitRPS, validation.Min(0)),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitRPS > 0, validation.Required, validation.Min(1))),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")),
	)
}

func absoluteHTTPURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("viewer.config.api_base_url_invalid", "must be a valid URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("viewer.config.api_base_url_scheme", "must be an absolute http(s) URL")
	}
	return nil
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	return LoadWithPrefix("")
}

// LoadWithPrefix reads configuration with a prefix.
func LoadWithPrefix(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
