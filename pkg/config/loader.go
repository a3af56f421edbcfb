package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPersona is the role text given to the assistant when none is configured.
const DefaultPersona = `Bạn là một trợ lý ảo tư vấn sản phẩm của website lyuongruouvang.com, nói chuyện thân thiện, giọng nữ miền Nam.
Chỉ trả lời các câu hỏi liên quan đến sản phẩm ly uống rượu vang và các phụ kiện liên quan.
Nếu khách hỏi ngoài phạm vi, hãy trả lời lịch sự: "Dạ, em xin lỗi, em chỉ có thể hỗ trợ các thông tin về sản phẩm tại lyuongruouvang.com thôi ạ."`

// StartupConfigError lists every configuration key that failed validation.
type StartupConfigError struct {
	Fields []string
}

func (e *StartupConfigError) Error() string {
	return "invalid configuration: " + strings.Join(e.Fields, ", ")
}

// Load reads .env, an optional config.yaml and the environment. The result is not validated;
// call Validate once every secret source has been applied.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("/app/configs")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return loadFrom(v)
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare names kept for existing deployments
	bindings := map[string][]string{
		"http.port":          {"PORT", "APP_HTTP_PORT"},
		"openai.api_key":     {"OPENAI_API_KEY", "APP_OPENAI_API_KEY"},
		"catalog.store_name": {"SAPO_STORE_NAME", "APP_CATALOG_STORE_NAME"},
		"catalog.api_key":    {"SAPO_API_KEY", "APP_CATALOG_API_KEY"},
		"catalog.api_secret": {"SAPO_API_SECRET", "APP_CATALOG_API_SECRET"},
		"cache.redis_url":    {"REDIS_URL", "APP_CACHE_REDIS_URL"},
		"events.url":         {"EVENTS_URL", "APP_EVENTS_URL"},
		"vault.address":      {"VAULT_ADDR", "APP_VAULT_ADDRESS"},
		"vault.token":        {"VAULT_TOKEN", "APP_VAULT_TOKEN"},
		"app.environment":    {"APP_ENVIRONMENT"},
		"logging.level":      {"LOG_LEVEL", "APP_LOGGING_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shop-assistant")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 10000)
	v.SetDefault("http.static_dir", "./public")
	v.SetDefault("http.body_limit", 1024*1024)
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.idle_timeout", 120*time.Second)

	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.speech_model", "tts-1")
	v.SetDefault("openai.voice", "nova")
	v.SetDefault("openai.speech_format", "mp3")

	v.SetDefault("catalog.api_version", "2025-09")
	v.SetDefault("catalog.result_limit", 5)
	v.SetDefault("catalog.timeout", 10*time.Second)

	v.SetDefault("assistant.persona", DefaultPersona)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.backend", "local")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", time.Minute)
	v.SetDefault("cache.key_prefix", "catalog:search:")

	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval", time.Minute)
	v.SetDefault("circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("circuit_breaker.min_requests", 3)
	v.SetDefault("circuit_breaker.failure_threshold", 0.6)

	v.SetDefault("events.backend", "none")
	v.SetDefault("events.subject_prefix", "assistant")

	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.path", "secret/data/shop-assistant")

	v.SetDefault("opentelemetry.enabled", false)
	v.SetDefault("opentelemetry.service_name", "shop-assistant")
	v.SetDefault("opentelemetry.jaeger.endpoint", "http://jaeger:14268/api/traces")
	v.SetDefault("opentelemetry.jaeger.sampler_param", 1.0)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Validate checks cfg against its validate tags. Every failing key is reported at once,
// named by its config path (e.g. openai.api_key).
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.<path>"; drop the root type name
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, fmt.Sprintf("%s (%s)", ns, fe.Tag()))
	}
	sort.Strings(fields)

	return &StartupConfigError{Fields: fields}
}
