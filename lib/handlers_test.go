package lib_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"urlqa/lib"
)

func newTestHandler(t *testing.T) *lib.Handler {
	t.Helper()
	log := zap.NewNop().Sugar()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageHTML("handler test page content")))
	}))
	t.Cleanup(upstream.Close)

	strategies := []lib.ProxyStrategy{{
		Name: "test-relay",
		Wrap: func(target string) string { return upstream.URL },
	}}
	fetcher := lib.NewPageFetcher(upstream.Client(), "test-agent", 1024*1024, strategies, log)
	hub := lib.NewEventHub()
	failures := lib.NewFailureLog(nil, "", 0, log)
	scraper := lib.NewScraper(fetcher, hub, failures, log)
	answerer := lib.NewAnswerer(lib.NewGeminiClient(http.DefaultClient, "", "http://unused.invalid", log), log)
	return lib.NewHandler(scraper, answerer, hub, failures)
}

func TestHandleIngest_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleIngest(rec, httptest.NewRequest(http.MethodGet, "/api/ingest", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleIngest_InvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIngest_TerminalErrorResult(t *testing.T) {
	h := newTestHandler(t)

	body := strings.NewReader(`{"urls": ["not a url"]}`)
	rec := httptest.NewRecorder()
	h.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp lib.IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.RequestID)
	assert.Contains(t, resp.Error, "invalid URL format: not a url")
	assert.Empty(t, resp.Content)
}

func TestHandleIngest_TerminalSuccessResult(t *testing.T) {
	h := newTestHandler(t)

	body := strings.NewReader(`{"urls": ["example.com"]}`)
	rec := httptest.NewRecorder()
	h.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp lib.IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Content, "handler test page content")
	require.Len(t, resp.Metadata, 1)
	assert.Equal(t, "https://example.com", resp.Metadata[0].URL)
}

func TestHandleAsk_UniformErrorShape(t *testing.T) {
	h := newTestHandler(t)

	body := strings.NewReader(`{"question": "", "context": "some context"}`)
	rec := httptest.NewRecorder()
	h.HandleAsk(rec, httptest.NewRequest(http.MethodPost, "/api/ask", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp lib.LlmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Answer)
	assert.Equal(t, lib.ErrEmptyQuestion.Error(), resp.Error)
}

func TestHandleFailures_EmptyWithoutRedis(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleFailures(rec, httptest.NewRequest(http.MethodGet, "/api/failures", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Failures []lib.ScrapeFailure `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Failures)
}

func TestWithCORS_Preflight(t *testing.T) {
	handler := lib.WithCORS("https://app.example", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run for preflight")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodOptions, "/api/ingest", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithCORS_PassesThrough(t *testing.T) {
	var called bool
	handler := lib.WithCORS("*", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.True(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleHealthz(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
