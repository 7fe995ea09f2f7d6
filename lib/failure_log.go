package lib

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ScrapeFailure records one page that could not be scraped during an
// ingestion batch
type ScrapeFailure struct {
	RequestID string    `json:"request_id"`
	URL       string    `json:"url"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// FailureLog keeps recent per-page scrape failures in a capped Redis
// list for operator inspection. The ingestion pipeline swallows these
// failures from the user-facing result; this log is the place they
// remain visible. Nil-safe: without a Redis client every method is a
// no-op.
type FailureLog struct {
	redisClient *redis.Client
	key         string
	maxEntries  int64
	logger      *zap.SugaredLogger
}

// NewFailureLog creates a new failure log. redisClient may be nil.
func NewFailureLog(redisClient *redis.Client, key string, maxEntries int64, logger *zap.SugaredLogger) *FailureLog {
	if key == "" {
		key = "urlqa:scrape-failures"
	}
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &FailureLog{
		redisClient: redisClient,
		key:         key,
		maxEntries:  maxEntries,
		logger:      logger,
	}
}

// Record appends a failure and trims the list to its cap
func (fl *FailureLog) Record(ctx context.Context, failure ScrapeFailure) {
	if fl.redisClient == nil {
		return
	}

	data, err := json.Marshal(failure)
	if err != nil {
		fl.logger.Warnw("failed to marshal scrape failure", "error", err)
		return
	}

	if err := fl.redisClient.LPush(ctx, fl.key, data).Err(); err != nil {
		fl.logger.Warnw("failed to record scrape failure", "url", failure.URL, "error", err)
		return
	}
	fl.redisClient.LTrim(ctx, fl.key, 0, fl.maxEntries-1)
	fl.redisClient.Expire(ctx, fl.key, 7*24*time.Hour)
}

// Recent returns up to n most recent failures, newest first
func (fl *FailureLog) Recent(ctx context.Context, n int64) ([]ScrapeFailure, error) {
	if fl.redisClient == nil {
		return nil, nil
	}

	entries, err := fl.redisClient.LRange(ctx, fl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	failures := make([]ScrapeFailure, 0, len(entries))
	for _, entry := range entries {
		var f ScrapeFailure
		if err := json.Unmarshal([]byte(entry), &f); err != nil {
			fl.logger.Warnw("failed to unmarshal scrape failure", "error", err)
			continue
		}
		failures = append(failures, f)
	}
	return failures, nil
}
