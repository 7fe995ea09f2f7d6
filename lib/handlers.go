package lib

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler contains HTTP handlers
type Handler struct {
	scraper        *Scraper
	answerer       *Answerer
	eventHub       *EventHub
	failureLog     *FailureLog
	activeRequests sync.Map
}

// NewHandler creates a new handler
func NewHandler(scraper *Scraper, answerer *Answerer, eventHub *EventHub, failureLog *FailureLog) *Handler {
	return &Handler{
		scraper:    scraper,
		answerer:   answerer,
		eventHub:   eventHub,
		failureLog: failureLog,
	}
}

type ActiveRequest struct {
	RequestID string    `json:"request_id"`
	StartedAt time.Time `json:"started_at"`
	UrlCount  int       `json:"url_count"`
}

// HandleIngest handles POST /api/ingest. The call is single-shot: it
// runs the whole pipeline and returns one terminal result. Progress is
// observable separately on the SSE endpoints.
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	h.activeRequests.Store(requestID, ActiveRequest{
		RequestID: requestID,
		StartedAt: time.Now().UTC(),
		UrlCount:  len(req.Urls),
	})
	defer h.activeRequests.Delete(requestID)

	result, err := h.scraper.Ingest(r.Context(), requestID, req.Urls)
	if err != nil {
		writeJSON(w, http.StatusOK, IngestResponse{
			Success:   false,
			RequestID: requestID,
			Error:     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Success:   true,
		RequestID: requestID,
		Content:   result.Content,
		Metadata:  result.Metadata,
	})
}

// HandleAsk handles POST /api/ask
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	resp := h.answerer.Answer(r.Context(), req.Question, req.Context, req.ChatHistory)
	writeJSON(w, http.StatusOK, resp)
}

// HandleSSEAll streams events for all requests
func (h *Handler) HandleSSEAll(w http.ResponseWriter, r *http.Request) {
	h.streamSSE(w, r, "")
}

// HandleSSEByRequest streams events for a specific request
func (h *Handler) HandleSSEByRequest(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/events/")
	if id == "" {
		http.Error(w, "missing request_id", http.StatusBadRequest)
		return
	}
	h.streamSSE(w, r, id)
}

// streamSSE streams SSE events
func (h *Handler) streamSSE(w http.ResponseWriter, r *http.Request, requestID string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	sub := h.eventHub.Subscribe(requestID)
	defer h.eventHub.Unsubscribe(requestID, sub)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "event: connected\ndata: {}\n\n")
	bw.Flush()
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-sub.Events():
			data, _ := json.Marshal(ev)
			fmt.Fprintf(bw, "event: %s\ndata: %s\n\n", ev.Type, data)
			bw.Flush()
			flusher.Flush()
		}
	}
}

// HandleActiveRequests returns the currently running ingestions
func (h *Handler) HandleActiveRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requests := []ActiveRequest{}
	h.activeRequests.Range(func(_, value any) bool {
		if ar, ok := value.(ActiveRequest); ok {
			requests = append(requests, ar)
		}
		return true
	})

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// HandleFailures returns recent per-page scrape failures
func (h *Handler) HandleFailures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	failures, err := h.failureLog.Recent(r.Context(), 50)
	if err != nil {
		http.Error(w, "failure log unavailable", http.StatusServiceUnavailable)
		return
	}
	if failures == nil {
		failures = []ScrapeFailure{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"failures": failures})
}

// HandleHealthz reports liveness
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
