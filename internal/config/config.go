package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Curriculum CurriculumConfig `mapstructure:"curriculum" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Redis      RedisConfig      `mapstructure:"redis"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Budget     BudgetConfig     `mapstructure:"budget" validate:"required"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit" validate:"required"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Synthesis  SynthesisConfig  `mapstructure:"synthesis" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the Postgres connection used by the postgres
// curriculum source and the migrate command.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// Curriculum sources.
const (
	SourceEmbedded = "embedded"
	SourceDir      = "dir"
	SourcePostgres = "postgres"
)

// CurriculumConfig selects where curriculum shards are read from.
type CurriculumConfig struct {
	Source string `mapstructure:"source" validate:"required,oneof=embedded dir postgres"`
	Dir    string `mapstructure:"dir" validate:"required_if=Source dir"`
}

// CacheConfig sizes the in-process lesson cache.
type CacheConfig struct {
	Capacity int `mapstructure:"capacity" validate:"required,gt=0"`
}

// RedisConfig configures the optional shared lesson cache. An empty URL disables it.
type RedisConfig struct {
	URL string        `mapstructure:"url" validate:"omitempty,url"`
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
// External generation is disabled when GeminiAPIKey is empty.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// Enabled reports whether an external generator should be built.
func (c LLMConfig) Enabled() bool {
	return c.GeminiAPIKey != ""
}

// BudgetConfig bounds spending on external generation.
type BudgetConfig struct {
	Daily            float64 `mapstructure:"daily" validate:"gt=0"`
	Monthly          float64 `mapstructure:"monthly" validate:"gt=0,gtefield=Daily"`
	MaxCostPerLesson float64 `mapstructure:"max_cost_per_lesson" validate:"gt=0"`
	PricePer1KTokens float64 `mapstructure:"price_per_1k_tokens" validate:"gte=0"`
}

// RateLimitConfig bounds lesson requests per client. Clients are keyed by
// the connection's address unless TrustProxyHeaders is set.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	PerMinute         int  `mapstructure:"per_minute" validate:"gt=0"`
	PerHour           int  `mapstructure:"per_hour" validate:"gt=0,gtefield=PerMinute"`
	PerDay            int  `mapstructure:"per_day" validate:"gt=0,gtefield=PerHour"`
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// TelemetryConfig configures trace export. An empty endpoint disables it.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" validate:"required"`
}

// Tone selectors.
const (
	SelectorRandom = "random"
	SelectorFirst  = "first"
	SelectorSeeded = "seeded"
)

// SynthesisConfig tunes the synthesis engine.
type SynthesisConfig struct {
	ExternalTimeout time.Duration `mapstructure:"external_timeout" validate:"gt=0"`
	Selector        string        `mapstructure:"selector" validate:"required,oneof=random first seeded"`
	Seed            uint64        `mapstructure:"seed"`
	WarmCurriculum  bool          `mapstructure:"warm_curriculum"`
}
