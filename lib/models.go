package lib

import "time"

// IngestRequest represents an incoming ingestion request
type IngestRequest struct {
	Urls []string `json:"urls"`
}

// IngestResponse is the terminal result of an ingestion request
type IngestResponse struct {
	Success   bool              `json:"success"`
	RequestID string            `json:"request_id"`
	Content   string            `json:"content,omitempty"`
	Error     string            `json:"error,omitempty"`
	Metadata  []WebsiteMetadata `json:"metadata,omitempty"`
}

// ScrapedPage is the per-URL outcome of a fetch-and-extract attempt.
// Error is set when the page could not be scraped; callers consult
// Content only when Error is empty.
type ScrapedPage struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	Error       string `json:"error,omitempty"`
}

// WebsiteMetadata is a display record derived from a successful scrape
type WebsiteMetadata struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	LastScraped time.Time `json:"last_scraped"`
}

// IngestResult aggregates the successful subset of a batch
type IngestResult struct {
	Content  string
	Metadata []WebsiteMetadata
}

// ChatTurn is one message in the conversation log
type ChatTurn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AskRequest represents an incoming question
type AskRequest struct {
	Question    string     `json:"question"`
	Context     string     `json:"context"`
	ChatHistory []ChatTurn `json:"chat_history,omitempty"`
}

// LlmResponse carries either an answer or a display-ready error
type LlmResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
}

// ProgressEvent is published on the event hub while a batch is ingested
type ProgressEvent struct {
	Type      string  `json:"type"`
	RequestID string  `json:"request_id"`
	URL       string  `json:"url,omitempty"`
	Done      int     `json:"done,omitempty"`
	Total     int     `json:"total,omitempty"`
	Percent   float64 `json:"percent,omitempty"`
	Message   string  `json:"message,omitempty"`
}
