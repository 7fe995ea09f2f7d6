package lib

import (
	"errors"
	"fmt"
	"strings"
)

// Pipeline and client errors. Every message is written to be shown to
// the user directly; nothing here leaks stack traces or internals.

var (
	// ErrNoValidUrls means the batch was empty after trimming blanks.
	ErrNoValidUrls = errors.New("please enter at least one valid URL")

	// ErrAllScrapesFailed means every URL in the batch failed to scrape.
	ErrAllScrapesFailed = errors.New("failed to scrape content from any of the provided URLs; try URLs from different domains")

	// ErrEmptyQuestion rejects a blank question before any network call.
	ErrEmptyQuestion = errors.New("please enter a question")

	// ErrNoContext rejects answering before any URL has been ingested.
	ErrNoContext = errors.New("no context available; please ingest at least one URL first")

	// ErrMissingCredential means no API key is configured for the LLM.
	ErrMissingCredential = errors.New("Gemini API key is not configured")
)

// InvalidURLError reports every syntactically invalid entry in a batch.
// Validation is all-or-nothing: when this error is returned no fetching
// has happened.
type InvalidURLError struct {
	Urls []string
}

func (e *InvalidURLError) Error() string {
	return "invalid URL format: " + strings.Join(e.Urls, ", ")
}

// FetchError is a per-page failure carrying the last proxy attempt's
// underlying error. It is swallowed into partial-failure aggregation.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RemoteError is a non-success response from the generation endpoint.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Gemini API error: %s", e.Message)
}

// MalformedResponseError means the generation endpoint returned 200 but
// the expected candidates/content/parts structure was absent.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return "unexpected response structure from Gemini API: " + e.Detail
}
