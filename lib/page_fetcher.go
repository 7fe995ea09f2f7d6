package lib

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// PageFetcher retrieves raw HTML through a chain of CORS-relay
// strategies, falling back to the next relay on any failure
type PageFetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxPageBytes int64
	strategies   []ProxyStrategy
	logger       *zap.SugaredLogger
}

// NewPageFetcher creates a new page fetcher
func NewPageFetcher(httpClient *http.Client, userAgent string, maxPageBytes int64, strategies []ProxyStrategy, logger *zap.SugaredLogger) *PageFetcher {
	return &PageFetcher{
		httpClient:   httpClient,
		userAgent:    userAgent,
		maxPageBytes: maxPageBytes,
		strategies:   strategies,
		logger:       logger,
	}
}

// Fetch tries each proxy strategy in order until one returns a 2xx
// response, and returns that response's body. Non-2xx statuses count as
// attempt failures and advance the chain. When every strategy fails the
// returned FetchError carries the last underlying failure.
func (pf *PageFetcher) Fetch(ctx context.Context, target string) (string, error) {
	target = NormalizeScheme(target)

	var lastErr error
	for _, strategy := range pf.strategies {
		html, err := pf.fetchOnce(ctx, strategy.Wrap(target))
		if err == nil {
			return html, nil
		}
		lastErr = err
		pf.logger.Debugw("proxy attempt failed",
			"strategy", strategy.Name,
			"url", target,
			"error", err)
	}

	return "", &FetchError{URL: target, Err: lastErr}
}

func (pf *PageFetcher) fetchOnce(ctx context.Context, wrapped string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wrapped, nil)
	if err != nil {
		return "", err
	}
	// A realistic browser identity reduces anti-bot rejections.
	req.Header.Set("User-Agent", pf.userAgent)

	resp, err := pf.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("failed to fetch content: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, pf.maxPageBytes)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
