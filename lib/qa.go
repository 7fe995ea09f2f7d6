package lib

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Answerer validates a question against the current context, builds the
// prompt, invokes the Gemini client, and folds every failure into the
// uniform LlmResponse shape - callers never see a raised fault
type Answerer struct {
	client *GeminiClient
	logger *zap.SugaredLogger
}

// NewAnswerer creates a new answerer
func NewAnswerer(client *GeminiClient, logger *zap.SugaredLogger) *Answerer {
	return &Answerer{client: client, logger: logger}
}

// Answer responds to a question about previously ingested context.
// Blank questions and missing context are rejected before any network
// activity.
func (a *Answerer) Answer(ctx context.Context, question, contextText string, history []ChatTurn) LlmResponse {
	if strings.TrimSpace(question) == "" {
		return LlmResponse{Error: ErrEmptyQuestion.Error()}
	}
	if strings.TrimSpace(contextText) == "" {
		return LlmResponse{Error: ErrNoContext.Error()}
	}

	prompt := BuildPrompt(question, contextText, SerializeHistory(history))

	answer, err := a.client.Ask(ctx, prompt)
	if err != nil {
		a.logger.Warnw("answer generation failed", "error", err)
		return LlmResponse{Error: err.Error()}
	}

	return LlmResponse{Answer: answer}
}
