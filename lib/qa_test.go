package lib_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"urlqa/lib"
)

func newAnswerer(client *http.Client, apiKey, apiURL string) *lib.Answerer {
	log := zap.NewNop().Sugar()
	return lib.NewAnswerer(lib.NewGeminiClient(client, apiKey, apiURL, log), log)
}

func TestAnswer_EmptyQuestionNoNetwork(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	answerer := newAnswerer(server.Client(), "test-key", server.URL)

	resp := answerer.Answer(context.Background(), "   ", "some context", nil)
	assert.Empty(t, resp.Answer)
	assert.Equal(t, lib.ErrEmptyQuestion.Error(), resp.Error)
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestAnswer_NoContextNoNetwork(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	answerer := newAnswerer(server.Client(), "test-key", server.URL)

	resp := answerer.Answer(context.Background(), "What is X?", "", nil)
	assert.Empty(t, resp.Answer)
	assert.Equal(t, lib.ErrNoContext.Error(), resp.Error)
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestAnswer_HistoryReachesPrompt(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		prompt = req.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(geminiSuccessBody("an answer"))
	}))
	defer server.Close()

	answerer := newAnswerer(server.Client(), "test-key", server.URL)

	history := []lib.ChatTurn{
		{ID: "1", Role: "user", Content: "what is foo?", Timestamp: time.Now()},
		{ID: "2", Role: "assistant", Content: "foo is bar", Timestamp: time.Now()},
	}
	resp := answerer.Answer(context.Background(), "and baz?", "the context", history)

	require.Empty(t, resp.Error)
	assert.Equal(t, "an answer", resp.Answer)
	assert.Contains(t, prompt, "PREVIOUS CONVERSATION:\nUser: what is foo?\nAssistant: foo is bar")
	assert.Contains(t, prompt, "USER QUESTION: and baz?")
	assert.Contains(t, prompt, "CONTEXT:\nthe context")
}

func TestAnswer_ClientErrorFoldedIntoResponse(t *testing.T) {
	answerer := newAnswerer(http.DefaultClient, "", "http://unused.invalid")

	resp := answerer.Answer(context.Background(), "What is X?", "ctx", nil)
	assert.Empty(t, resp.Answer)
	assert.Equal(t, lib.ErrMissingCredential.Error(), resp.Error)
}

func TestAnswer_RemoteErrorFoldedIntoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid request"},
		})
	}))
	defer server.Close()

	answerer := newAnswerer(server.Client(), "test-key", server.URL)

	resp := answerer.Answer(context.Background(), "What is X?", "ctx", nil)
	assert.Empty(t, resp.Answer)
	assert.Contains(t, resp.Error, "invalid request")
}
