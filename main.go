package main

import (
	"net/http"

	"github.com/redis/go-redis/v9"

	"urlqa/config"
	"urlqa/lib"
	"urlqa/logger"
)

func main() {
	cfg := config.Init()

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()
	log := zlog.Sugar()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		log.Infow("scrape failure log enabled", "redis_addr", cfg.RedisAddr)
	}

	eventHub := lib.NewEventHub()
	failureLog := lib.NewFailureLog(redisClient, "", 0, log)
	fetcher := lib.NewPageFetcher(cfg.HTTPClient, cfg.UserAgent, cfg.MaxPageBytes, lib.DefaultProxyStrategies(), log)
	scraper := lib.NewScraper(fetcher, eventHub, failureLog, log)
	gemini := lib.NewGeminiClient(cfg.GeminiClient, cfg.GeminiAPIKey, cfg.GeminiAPIURL, log)
	answerer := lib.NewAnswerer(gemini, log)
	handler := lib.NewHandler(scraper, answerer, eventHub, failureLog)

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; /api/ask will report a configuration error")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ingest", lib.WithCORS(cfg.AllowedOrigin, handler.HandleIngest))
	mux.HandleFunc("/api/ask", lib.WithCORS(cfg.AllowedOrigin, handler.HandleAsk))
	mux.HandleFunc("/api/requests", lib.WithCORS(cfg.AllowedOrigin, handler.HandleActiveRequests))
	mux.HandleFunc("/api/failures", lib.WithCORS(cfg.AllowedOrigin, handler.HandleFailures))
	mux.HandleFunc("/events", lib.WithCORS(cfg.AllowedOrigin, handler.HandleSSEAll))
	mux.HandleFunc("/events/", lib.WithCORS(cfg.AllowedOrigin, handler.HandleSSEByRequest))
	mux.HandleFunc("/healthz", handler.HandleHealthz)

	log.Infow("urlqa running", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
