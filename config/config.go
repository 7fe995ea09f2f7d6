package config

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"urlqa/utils"
)

// Config holds all application configuration
type Config struct {
	// HTTP Settings
	Timeout time.Duration
	Port    string

	// Scraper Settings
	MaxPageBytes int64
	UserAgent    string

	// Gemini Settings
	GeminiAPIKey string
	GeminiAPIURL string

	// Redis Settings (optional failure log)
	RedisAddr     string
	RedisPassword string

	// HTTP Clients
	HTTPClient   *http.Client
	GeminiClient *http.Client

	// CORS
	AllowedOrigin string

	// Logging
	LogLevel  string
	LogFormat string
}

// Init loads configuration from the environment (and .env when present)
func Init() *Config {
	godotenv.Load()

	cfg := &Config{
		Timeout:       time.Duration(utils.EnvInt("TIMEOUT_SECS", 20)) * time.Second,
		Port:          utils.GetEnv("PORT", "8080"),
		MaxPageBytes:  int64(utils.EnvInt("MAX_PAGE_BYTES", 2*1024*1024)),
		UserAgent:     utils.GetEnv("USER_AGENT", defaultUserAgent),
		GeminiAPIKey:  utils.GetEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:  utils.GetEnv("GEMINI_API_URL", defaultGeminiURL),
		RedisAddr:     utils.GetEnv("REDIS_ADDR", ""),
		RedisPassword: utils.GetEnv("REDIS_PASSWORD", ""),
		AllowedOrigin: utils.GetEnv("ALLOWED_ORIGIN", "*"),
		LogLevel:      utils.GetEnv("LOG_LEVEL", "info"),
		LogFormat:     utils.GetEnv("LOG_FORMAT", "json"),
	}

	cfg.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	// The generation endpoint is slower than page fetches; give it more room.
	cfg.GeminiClient = &http.Client{
		Timeout: 120 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        16,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return cfg
}

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"
)
