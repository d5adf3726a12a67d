package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "LESSON"

// Load configuration from environment variables and an optional config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile is Load with an explicit config file. Unlike Load, a missing file
// is an error.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{
		"database.url",
		"redis.url",
		"llm.gemini_api_key",
		"telemetry.otlp_endpoint",
		"curriculum.dir",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("curriculum.source", SourceEmbedded)

	v.SetDefault("cache.capacity", 1000)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)

	v.SetDefault("budget.daily", 50.0)
	v.SetDefault("budget.monthly", 200.0)
	v.SetDefault("budget.max_cost_per_lesson", 0.05)
	v.SetDefault("budget.price_per_1k_tokens", 0.015)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.per_minute", 60)
	v.SetDefault("rate_limit.per_hour", 1000)
	v.SetDefault("rate_limit.per_day", 10000)
	v.SetDefault("rate_limit.trust_proxy_headers", false)

	v.SetDefault("telemetry.service_name", "mynextlesson-synthesis")

	v.SetDefault("synthesis.external_timeout", 5*time.Second)
	v.SetDefault("synthesis.selector", SelectorRandom)
	v.SetDefault("synthesis.seed", 0)
	v.SetDefault("synthesis.warm_curriculum", false)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the rules that span sections.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if cfg.Curriculum.Source == SourcePostgres && cfg.Database.URL == "" {
		return fmt.Errorf("configuration validation failed: database.url is required for the %s curriculum source",
			SourcePostgres)
	}
	return nil
}
