package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// maxResponseBytes caps the generation endpoint's response body.
const maxResponseBytes = 10 * 1024 * 1024

// GeminiClient sends prompts to the Gemini generation endpoint. The
// credential is an explicit constructor argument rather than process
// state, so its absence is a constructible, testable condition.
type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	logger     *zap.SugaredLogger
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(httpClient *http.Client, apiKey, apiURL string, logger *zap.SugaredLogger) *GeminiClient {
	return &GeminiClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		apiURL:     apiURL,
		logger:     logger,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask sends the prompt as a single non-streaming request and extracts
// the generated text. No retries; the transport's timeout is the only
// deadline.
func (gc *GeminiClient) Ask(ctx context.Context, prompt string) (string, error) {
	if gc.apiKey == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+gc.apiKey)

	resp, err := gc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(resp, respBody),
		}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &MalformedResponseError{Detail: "response is not valid JSON"}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedResponseError{Detail: "no generated text in candidates"}
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// remoteMessage prefers the remote-reported error message, falling back
// to the HTTP status line
func remoteMessage(resp *http.Response, body []byte) string {
	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
