package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the full application configuration, loaded from the
// environment (flat variable names, lowercased into koanf keys).
type Config struct {
	Addr string `koanf:"addr"`

	DatabaseURL    string `koanf:"database_url"`
	DBMaxOpenConns int    `koanf:"db_max_open_conns"`
	DBMaxIdleConns int    `koanf:"db_max_idle_conns"`

	// Shared secret for the public form endpoints. Empty disables the check.
	PublicAPIKey string `koanf:"public_api_key"`

	HubspotAccessToken string `koanf:"hubspot_access_token"`
	HubspotBaseURL     string `koanf:"hubspot_base_url"`

	BrevoAPIKey        string `koanf:"brevo_api_key"`
	BrevoNurtureListID int    `koanf:"brevo_nurture_list_id"`
	BrevoBaseURL       string `koanf:"brevo_base_url"`

	SMTPHost   string `koanf:"smtp_host"`
	SMTPPort   int    `koanf:"smtp_port"`
	SMTPUser   string `koanf:"smtp_user"`
	SMTPPass   string `koanf:"smtp_pass"`
	NotifyFrom string `koanf:"notify_from"`
	NotifyTo   string `koanf:"notify_to"`

	RateLimitMax    int    `koanf:"rate_limit_max"`
	RateLimitWindow string `koanf:"rate_limit_window"`

	// Timeout applied to outbound HubSpot/Brevo calls.
	HTTPTimeout string `koanf:"http_timeout"`

	AllowedOrigins string `koanf:"allowed_origins"`

	LogLevel string `koanf:"log_level"`
	LogMode  string `koanf:"log_mode"` // production | development
}

// Load reads the environment into a Config and applies defaults.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DBMaxOpenConns == 0 {
		c.DBMaxOpenConns = 10
	}
	if c.DBMaxIdleConns == 0 {
		c.DBMaxIdleConns = 5
	}
	if c.HubspotBaseURL == "" {
		c.HubspotBaseURL = "https://api.hubapi.com"
	}
	if c.BrevoBaseURL == "" {
		c.BrevoBaseURL = "https://api.brevo.com"
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	if c.RateLimitMax == 0 {
		c.RateLimitMax = 10
	}
	if c.RateLimitWindow == "" {
		c.RateLimitWindow = "10m"
	}
	if c.HTTPTimeout == "" {
		c.HTTPTimeout = "10s"
	}
	if c.AllowedOrigins == "" {
		c.AllowedOrigins = "*"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMode == "" {
		c.LogMode = "production"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.DBMaxOpenConns <= 0 || c.DBMaxIdleConns <= 0 {
		return fmt.Errorf("db pool sizes must be > 0")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("rate_limit_max must be > 0")
	}
	if _, err := time.ParseDuration(c.RateLimitWindow); err != nil {
		return fmt.Errorf("invalid rate_limit_window %q: %w", c.RateLimitWindow, err)
	}
	if _, err := time.ParseDuration(c.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid http_timeout %q: %w", c.HTTPTimeout, err)
	}
	if c.LogMode != "production" && c.LogMode != "development" {
		return fmt.Errorf("invalid log_mode %q (must be production or development)", c.LogMode)
	}
	return nil
}

// Window returns the parsed rate-limit window. Validate has already
// checked the duration string.
func (c *Config) Window() time.Duration {
	d, _ := time.ParseDuration(c.RateLimitWindow)
	return d
}

// OutboundTimeout returns the parsed outbound HTTP timeout.
func (c *Config) OutboundTimeout() time.Duration {
	d, _ := time.ParseDuration(c.HTTPTimeout)
	return d
}

// Origins splits the comma-separated allowed origins list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// InitLogger builds the global zap logger from the log config.
func InitLogger(c *Config) error {
	var zapCfg zap.Config
	if c.LogMode == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}
