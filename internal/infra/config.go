package infra

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	LogLevel    string
	Port        string
	DatabaseURL string

	StoragePath   string
	PublicBaseURL string
	FontDir       string

	FetchTimeout      time.Duration
	MaxFetchBytes     int64
	MaxImagePixels    int64
	RenderConcurrency int

	GeoIPDBPath        string
	DefaultLocale      string
	CORSAllowedOrigins []string
	RateLimitPerMin    int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	WorkerPollInterval time.Duration
	WorkerStaleAfter   time.Duration
}

// LoadConfig reads .env files when present, then the environment, and
// applies defaults. Variables already set in the environment win over .env.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		StoragePath:        getEnv("STORAGE_PATH", "./public"),
		PublicBaseURL:      strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		FontDir:            os.Getenv("FONT_DIR"),
		FetchTimeout:       time.Second * time.Duration(getEnvInt("RENDER_FETCH_TIMEOUT_SECONDS", 15)),
		MaxFetchBytes:      int64(getEnvInt("RENDER_MAX_FETCH_BYTES", 25<<20)),
		MaxImagePixels:     int64(getEnvInt("RENDER_MAX_IMAGE_PIXELS", 40_000_000)),
		RenderConcurrency:  getEnvInt("RENDER_CONCURRENCY", 1),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		WorkerPollInterval: time.Second * time.Duration(getEnvInt("WORKER_POLL_INTERVAL_SECONDS", 2)),
		WorkerStaleAfter:   time.Second * time.Duration(getEnvInt("WORKER_STALE_AFTER_SECONDS", 600)),
	}

	if cfg.RenderConcurrency < 1 {
		cfg.RenderConcurrency = 1
	}
	if cfg.FetchTimeout <= 0 {
		return nil, errors.New("RENDER_FETCH_TIMEOUT_SECONDS must be positive")
	}
	if cfg.MaxFetchBytes <= 0 {
		return nil, errors.New("RENDER_MAX_FETCH_BYTES must be positive")
	}

	if cfg.MaxImagePixels <= 0 {
		return nil, errors.New("RENDER_MAX_IMAGE_PIXELS must be positive")
	}

	return cfg, nil
}

// RequireDatabase reports an error when no database is configured. Binaries
// that talk to Postgres call it right after LoadConfig.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
