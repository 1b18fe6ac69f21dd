package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console gateway.
type Config struct {
	App     AppConfig
	Remote  RemoteConfig
	Session SessionConfig
	Storage StorageConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Console ConsoleConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RemoteConfig points at the staff-management API the console fronts.
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SessionConfig defines session token parameters.
type SessionConfig struct {
	TokenSecret     string
	TokenTTLMinutes int
	CookieName      string
}

// StorageConfig selects the durable session storage backend.
type StorageConfig struct {
	Backend string // memory | file | sqlite | redis
	Dir     string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ConsoleConfig tunes the paginated resource managers.
type ConsoleConfig struct {
	PerPage        int
	DebounceMillis int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "staff-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8090"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Remote: RemoteConfig{
			BaseURL:        getEnv("REMOTE_API_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds: getEnvAsInt("REMOTE_API_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			TokenSecret:     getEnv("SESSION_TOKEN_SECRET", "dev-secret"),
			TokenTTLMinutes: getEnvAsInt("SESSION_TOKEN_TTL_MINUTES", 480),
			CookieName:      getEnv("SESSION_COOKIE_NAME", "console_session"),
		},
		Storage: StorageConfig{
			Backend: getEnv("SESSION_STORAGE_BACKEND", "file"),
			Dir:     getEnv("SESSION_STORAGE_DIR", "./data"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Console: ConsoleConfig{
			PerPage:        getEnvAsInt("CONSOLE_PER_PAGE", 8),
			DebounceMillis: getEnvAsInt("CONSOLE_SEARCH_DEBOUNCE_MS", 250),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the remote API call timeout.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// TokenTTL returns the session token lifetime.
func (s SessionConfig) TokenTTL() time.Duration {
	if s.TokenTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}

// Debounce returns the search debounce interval.
func (c ConsoleConfig) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
