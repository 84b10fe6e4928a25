package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/catalog"
	"github.com/jonwraymond/mealscout/observe"
	"github.com/jonwraymond/mealscout/pipeline"
	"github.com/jonwraymond/mealscout/secret"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MEALSCOUT"

// Sentinel errors for configuration loading.
var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrRead is returned when the config file exists but cannot be read.
	ErrRead = errors.New("config: read failed")
)

// Config is the complete mealscout configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Observe  ObserveConfig  `mapstructure:"observe"`
	Admin    AdminConfig    `mapstructure:"admin"`

	// Secrets configures extra secret providers by name, e.g.
	// secrets.file.dir. The env provider is always available.
	Secrets map[string]map[string]any `mapstructure:"secrets"`
}

// CatalogConfig configures the remote catalog client.
type CatalogConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	APIKey    string        `mapstructure:"api_key" validate:"required"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"` // 0 means none
	Rate      float64       `mapstructure:"rate" validate:"gte=0"`    // requests per second, 0 means unlimited
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the catalog circuit breaker.
type BreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxFailures  int           `mapstructure:"max_failures" validate:"gte=1"`
	ResetTimeout time.Duration `mapstructure:"reset_timeout" validate:"gt=0"`
}

// CacheConfig configures the detail cache.
type CacheConfig struct {
	// Policy is "default" (remember misses and failures) or "strict"
	// (remember misses only).
	Policy string `mapstructure:"policy" validate:"oneof=default strict"`
}

// PipelineConfig configures filter runs.
type PipelineConfig struct {
	Mode        string `mapstructure:"mode" validate:"oneof=sequential concurrent"`
	Concurrency int    `mapstructure:"concurrency" validate:"gte=1,lte=64"`

	// Debounce delays runs after an exclusion edit. The terminal reads
	// whole lines, so it defaults to 0, which disables it.
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
}

// ObserveConfig configures logging, tracing and metrics.
type ObserveConfig struct {
	ServiceName string  `mapstructure:"service_name" validate:"required"`
	LogLevel    string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string  `mapstructure:"log_format" validate:"oneof=json console"`
	Tracing     string  `mapstructure:"tracing" validate:"oneof=none stdout otlp jaeger"`
	SamplePct   float64 `mapstructure:"sample_pct" validate:"gte=0,lte=1"`
	Metrics     string  `mapstructure:"metrics" validate:"oneof=none stdout otlp prometheus"`
}

// AdminConfig configures the admin HTTP server.
type AdminConfig struct {
	// Addr is the listen address; empty disables the server.
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`

	// APIKeys and JWTSecret guard every admin route except the probes.
	// Both accept secret references such as secretref:env:ADMIN_KEY.
	// With neither set the admin surface is open.
	APIKeys   []string `mapstructure:"api_keys"`
	JWTSecret string   `mapstructure:"jwt_secret"`
	JWTIssuer string   `mapstructure:"jwt_issuer"`

	// RateLimit caps requests per client IP per minute; 0 disables it.
	RateLimit int `mapstructure:"rate_limit" validate:"gte=0"`
}

// AuthEnabled reports whether admin credentials are configured.
func (a AdminConfig) AuthEnabled() bool {
	return len(a.APIKeys) > 0 || a.JWTSecret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.base_url", catalog.DefaultBaseURL)
	v.SetDefault("catalog.api_key", catalog.DefaultAPIKey)
	v.SetDefault("catalog.user_agent", catalog.DefaultUserAgent)
	v.SetDefault("catalog.timeout", 0)
	v.SetDefault("catalog.rate", 0)
	v.SetDefault("catalog.burst", 5)
	v.SetDefault("catalog.breaker.enabled", true)
	v.SetDefault("catalog.breaker.max_failures", 5)
	v.SetDefault("catalog.breaker.reset_timeout", "30s")

	v.SetDefault("cache.policy", "default")

	v.SetDefault("pipeline.mode", "sequential")
	v.SetDefault("pipeline.concurrency", pipeline.DefaultConcurrency)
	v.SetDefault("pipeline.debounce", "0s")

	v.SetDefault("observe.service_name", "mealscout")
	v.SetDefault("observe.log_level", "warn")
	v.SetDefault("observe.log_format", "json")
	v.SetDefault("observe.tracing", "none")
	v.SetDefault("observe.sample_pct", 1.0)
	v.SetDefault("observe.metrics", "none")

	v.SetDefault("admin.addr", "")
	v.SetDefault("admin.rate_limit", 120)
}

// Load reads configuration. An empty path searches for mealscout.yaml in
// the working directory and $HOME/.config/mealscout; a missing file is not
// an error. The result is validated but secrets are not yet resolved.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mealscout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mealscout")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint and reports all violations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// ResolveSecrets resolves the catalog API key and admin credentials through
// the env provider and any providers configured under Secrets, created from
// reg.
func (c *Config) ResolveSecrets(ctx context.Context, reg *secret.Registry) error {
	resolver := secret.NewResolver(true, secret.EnvProvider{})
	defer resolver.Close()

	for name, section := range c.Secrets {
		if name == "env" {
			continue
		}
		p, err := reg.Create(name, section)
		if err != nil {
			return fmt.Errorf("config: secret provider %s: %w", name, err)
		}
		resolver.Register(p)
	}

	key, err := resolver.ResolveValue(ctx, c.Catalog.APIKey)
	if err != nil {
		return fmt.Errorf("config: catalog.api_key: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: catalog.api_key resolved to an empty value", ErrInvalidConfig)
	}
	c.Catalog.APIKey = key

	for i, ref := range c.Admin.APIKeys {
		v, err := resolver.ResolveValue(ctx, ref)
		if err != nil {
			return fmt.Errorf("config: admin.api_keys[%d]: %w", i, err)
		}
		c.Admin.APIKeys[i] = v
	}
	if c.Admin.JWTSecret != "" {
		v, err := resolver.ResolveValue(ctx, c.Admin.JWTSecret)
		if err != nil {
			return fmt.Errorf("config: admin.jwt_secret: %w", err)
		}
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: admin.jwt_secret resolved to an empty value", ErrInvalidConfig)
		}
		c.Admin.JWTSecret = v
	}
	return nil
}

// CachePolicy returns the configured negative-caching policy.
func (c *Config) CachePolicy() cache.Policy {
	if c.Cache.Policy == "strict" {
		return cache.StrictPolicy()
	}
	return cache.DefaultPolicy()
}

// PipelineMode returns the configured resolution mode.
func (c *Config) PipelineMode() pipeline.Mode {
	mode, err := pipeline.ParseMode(c.Pipeline.Mode)
	if err != nil {
		return pipeline.ModeSequential
	}
	return mode
}

// ObserveConfig converts the observe section. Logs go to logs and stdout
// exporter output to exports; either may be nil for the defaults.
func (c *Config) ObserveConfig(version string, logs, exports io.Writer) observe.Config {
	return observe.Config{
		ServiceName: c.Observe.ServiceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Observe.Tracing != "none",
			Exporter:  c.Observe.Tracing,
			SamplePct: c.Observe.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Observe.Metrics != "none",
			Exporter: c.Observe.Metrics,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.Observe.LogLevel,
			Format:  c.Observe.LogFormat,
			Writer:  logs,
		},
		ExportWriter: exports,
	}
}
