package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации клиента дашборда
type Config struct {
	APIURL    string `env:"API_URL" envDefault:"http://localhost:8000"`
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Gateway Config
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	HealthCacheTTL time.Duration `env:"HEALTH_CACHE_TTL" envDefault:"5s"`

	// Push Config
	PushReconnectAttempts int           `env:"PUSH_RECONNECT_ATTEMPTS" envDefault:"3"`
	PushReconnectDelay    time.Duration `env:"PUSH_RECONNECT_DELAY" envDefault:"1s"`
	PushTimeout           time.Duration `env:"PUSH_TIMEOUT" envDefault:"5s"`

	// Redis Config. Пустой адрес отключает кеш снимков и рассылку алертов.
	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	SnapshotCacheTTL time.Duration `env:"SNAPSHOT_CACHE_TTL" envDefault:"24h"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for mutating local routes
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		APIURL:                strings.TrimRight(getEnv("API_URL", "http://localhost:8000"), "/"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		RequestTimeout:        getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		HealthCacheTTL:        getEnvAsDuration("HEALTH_CACHE_TTL", 5*time.Second),
		PushReconnectAttempts: getEnvAsInt("PUSH_RECONNECT_ATTEMPTS", 3),
		PushReconnectDelay:    getEnvAsDuration("PUSH_RECONNECT_DELAY", time.Second),
		PushTimeout:           getEnvAsDuration("PUSH_TIMEOUT", 5*time.Second),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		SnapshotCacheTTL:      getEnvAsDuration("SNAPSHOT_CACHE_TTL", 24*time.Hour),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	if apiKeysStr := os.Getenv("API_KEYS"); apiKeysStr != "" {
		for _, key := range strings.Split(apiKeysStr, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.PushReconnectAttempts < 1 {
		return fmt.Errorf("PUSH_RECONNECT_ATTEMPTS must be positive, got %d", c.PushReconnectAttempts)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
