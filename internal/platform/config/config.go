// Package config loads gateway configuration from the environment and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	devAdminSecret = "dev-admin-session-secret-change-me"
)

// Config captures everything main needs to wire the gateway.
type Config struct {
	// HTTPAddr is the address the gateway listens on.
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// APIBaseURL is the content/donor REST API every collaborator call goes to.
	APIBaseURL string        `mapstructure:"API_BASE_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	// RedisURL selects Redis-backed stores; empty keeps everything in memory.
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisPoolSize int    `mapstructure:"REDIS_POOL_SIZE"`

	// SessionTTL bounds how long an idle donation form session is kept.
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	AdminSessionSecret string        `mapstructure:"ADMIN_SESSION_SECRET"`
	AdminSessionTTL    time.Duration `mapstructure:"ADMIN_SESSION_TTL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	Env       string `mapstructure:"APP_ENV"`

	// UploadMaxBytes caps multipart uploads forwarded to the API.
	UploadMaxBytes int64 `mapstructure:"UPLOAD_MAX_BYTES"`

	// Per-client-IP budgets for passkey attempts and OTP issuance.
	RateLimitEnabled      bool          `mapstructure:"RATE_LIMIT_ENABLED"`
	AdminLoginLimit       int           `mapstructure:"RATE_LIMIT_ADMIN_LOGIN"`
	AdminLoginLimitWindow time.Duration `mapstructure:"RATE_LIMIT_ADMIN_LOGIN_WINDOW"`
	OTPLimit              int           `mapstructure:"RATE_LIMIT_OTP"`
	OTPLimitWindow        time.Duration `mapstructure:"RATE_LIMIT_OTP_WINDOW"`

	// TrustedProxies lists comma-separated IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means the peer address is the client.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// OTLPEndpoint receives traces over OTLP/gRPC; empty keeps spans in-process.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// RedisConfig is the subset the redis client needs.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads .env (if present), then builds and validates Config from the environment.
// Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.AdminSessionSecret == "" {
		cfg.AdminSessionSecret = devAdminSecret
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("API_BASE_URL", "http://localhost:5000")
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("ADMIN_SESSION_SECRET", "")
	v.SetDefault("ADMIN_SESSION_TTL", "2h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_ADMIN_LOGIN", 10)
	v.SetDefault("RATE_LIMIT_ADMIN_LOGIN_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_OTP", 5)
	v.SetDefault("RATE_LIMIT_OTP_WINDOW", "10m")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("config: API_BASE_URL must be an absolute URL")
	}
	if c.APITimeout <= 0 {
		return errors.New("config: API_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 || c.AdminSessionTTL <= 0 {
		return errors.New("config: SESSION_TTL and ADMIN_SESSION_TTL must be positive")
	}
	if c.IsProduction() && len(c.AdminSessionSecret) < 32 {
		return errors.New("config: ADMIN_SESSION_SECRET must be at least 32 bytes when APP_ENV=production")
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("config: UPLOAD_MAX_BYTES must be positive")
	}
	if c.RateLimitEnabled && (c.AdminLoginLimit <= 0 || c.OTPLimit <= 0 ||
		c.AdminLoginLimitWindow <= 0 || c.OTPLimitWindow <= 0) {
		return errors.New("config: rate limits and windows must be positive when RATE_LIMIT_ENABLED")
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return errors.New("config: LOG_FORMAT must be json or text")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// TrustedProxyPrefixes parses TrustedProxies. Bare addresses become single-host prefixes.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, raw := range strings.Split(c.TrustedProxies, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Redis returns the redis client settings; URL is empty when Redis is not configured.
func (c *Config) Redis() RedisConfig {
	return RedisConfig{
		URL:          c.RedisURL,
		PoolSize:     c.RedisPoolSize,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
