package config

import "time"

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	HTTP           HTTPConfig           `mapstructure:"http"`
	OpenAI         OpenAIConfig         `mapstructure:"openai"`
	Catalog        CatalogConfig        `mapstructure:"catalog"`
	Assistant      AssistantConfig      `mapstructure:"assistant"`
	Cache          CacheConfig          `mapstructure:"cache"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Events         EventsConfig         `mapstructure:"events"`
	Vault          VaultConfig          `mapstructure:"vault"`
	OpenTelemetry  OpenTelemetryConfig  `mapstructure:"opentelemetry"`
	Prometheus     PrometheusConfig     `mapstructure:"prometheus"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	CORS           CORSConfig           `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	StaticDir    string        `mapstructure:"static_dir"`
	BodyLimit    int           `mapstructure:"body_limit"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type OpenAIConfig struct {
	APIKey       string `mapstructure:"api_key" validate:"required"`
	BaseURL      string `mapstructure:"base_url" validate:"omitempty,url"`
	ChatModel    string `mapstructure:"chat_model" validate:"required"`
	SpeechModel  string `mapstructure:"speech_model" validate:"required"`
	Voice        string `mapstructure:"voice" validate:"required"`
	SpeechFormat string `mapstructure:"speech_format" validate:"required"`
}

type CatalogConfig struct {
	StoreName   string        `mapstructure:"store_name" validate:"required"`
	APIKey      string        `mapstructure:"api_key" validate:"required"`
	APISecret   string        `mapstructure:"api_secret" validate:"required"`
	APIVersion  string        `mapstructure:"api_version" validate:"required"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	ResultLimit int           `mapstructure:"result_limit" validate:"min=1,max=250"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type AssistantConfig struct {
	Persona string `mapstructure:"persona" validate:"required"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend" validate:"oneof=local redis"`
	RedisURL        string        `mapstructure:"redis_url" validate:"required_if=Enabled true Backend redis"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	KeyPrefix       string        `mapstructure:"key_prefix"`
}

type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold" validate:"gte=0,lte=1"`
}

type EventsConfig struct {
	Backend       string `mapstructure:"backend" validate:"oneof=none nats rabbitmq"`
	URL           string `mapstructure:"url" validate:"required_unless=Backend none"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type VaultConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address" validate:"required_if=Enabled true"`
	Token   string `mapstructure:"token" validate:"required_if=Enabled true"`
	Path    string `mapstructure:"path"`
}

type OpenTelemetryConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	Jaeger      JaegerConfig `mapstructure:"jaeger"`
	ServiceName string       `mapstructure:"service_name"`
}

type JaegerConfig struct {
	Endpoint     string  `mapstructure:"endpoint"`
	SamplerParam float64 `mapstructure:"sampler_param"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposeHeaders  []string `mapstructure:"expose_headers"`
	MaxAge         int      `mapstructure:"max_age"`
	Credentials    bool     `mapstructure:"credentials"`
}
