package lib

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"urlqa/utils"
)

// Scraper runs the URL ingestion pipeline: validate the batch, fan out
// fetch-and-extract per URL, and aggregate the successful subset into
// one context string plus per-page metadata
type Scraper struct {
	fetcher    *PageFetcher
	eventHub   *EventHub
	failureLog *FailureLog
	logger     *zap.SugaredLogger
}

// NewScraper creates a new scraper
func NewScraper(fetcher *PageFetcher, eventHub *EventHub, failureLog *FailureLog, logger *zap.SugaredLogger) *Scraper {
	return &Scraper{
		fetcher:    fetcher,
		eventHub:   eventHub,
		failureLog: failureLog,
		logger:     logger,
	}
}

// Ingest validates rawUrls and scrapes every valid URL concurrently.
// Validation failures abort the whole batch before any fetch; scrape
// failures are tolerated per page as long as at least one URL succeeds.
// Successful contents are joined with a blank line in input order.
func (s *Scraper) Ingest(ctx context.Context, requestID string, rawUrls []string) (*IngestResult, error) {
	urls, err := ValidateUrls(rawUrls)
	if err != nil {
		return nil, err
	}

	s.eventHub.Publish(ProgressEvent{Type: "start", RequestID: requestID, Total: len(urls)})

	// Fan out one task per URL; results land positionally so input
	// order survives the unordered completion.
	pages := make([]ScrapedPage, len(urls))
	var done int64
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			pages[idx] = s.scrapeOne(ctx, target)

			n := int(atomic.AddInt64(&done, 1))

			ev := ProgressEvent{
				Type:      "page_scraped",
				RequestID: requestID,
				URL:       target,
				Done:      n,
				Total:     len(urls),
				Percent:   utils.Percent(n, len(urls)),
			}
			if pages[idx].Error != "" {
				ev.Type = "page_failed"
				ev.Message = pages[idx].Error
				s.failureLog.Record(ctx, ScrapeFailure{
					RequestID: requestID,
					URL:       target,
					Error:     pages[idx].Error,
					Timestamp: time.Now().UTC(),
				})
			}
			s.eventHub.Publish(ev)
		}(i, u)
	}
	wg.Wait()

	var contents []string
	var metadata []WebsiteMetadata
	now := time.Now().UTC()
	for _, page := range pages {
		if page.Error != "" {
			continue
		}
		contents = append(contents, page.Content)
		metadata = append(metadata, WebsiteMetadata{
			URL:         page.URL,
			Title:       page.Title,
			Description: page.Description,
			LastScraped: now,
		})
	}

	s.eventHub.Publish(ProgressEvent{
		Type:      "complete",
		RequestID: requestID,
		Done:      len(urls),
		Total:     len(urls),
		Percent:   100,
	})

	if len(contents) == 0 {
		return nil, ErrAllScrapesFailed
	}

	return &IngestResult{
		Content:  strings.Join(contents, "\n\n"),
		Metadata: metadata,
	}, nil
}

// scrapeOne runs fetch -> parse -> extract -> format for a single URL.
// Failures are captured in the page's Error field, never propagated.
func (s *Scraper) scrapeOne(ctx context.Context, target string) ScrapedPage {
	rawHTML, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		s.logger.Warnw("scrape failed", "url", target, "error", err)
		return ScrapedPage{URL: target, Error: err.Error()}
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		s.logger.Warnw("parse failed", "url", target, "error", err)
		return ScrapedPage{URL: target, Error: "failed to parse HTML: " + err.Error()}
	}

	title, description := ExtractMetadata(doc)
	text := ExtractText(doc)

	return ScrapedPage{
		URL:         target,
		Title:       title,
		Description: description,
		Content:     FormatForLLM(target, title, description, text),
	}
}
