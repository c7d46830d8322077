package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

var (
	ErrEmptyResponse = errors.New("model returned no candidates")
	ErrEmptyText     = errors.New("model returned no text")
)

// Client turns a prompt into generated text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
}

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *slog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	c.logger.Debug("Gemini call finished",
		"model", c.model,
		"duration", time.Since(start).String(),
		"failed", err != nil)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}

	return responseText(resp)
}

// responseText joins the first candidate's text parts. A candidate without
// text (stopped for safety, recitation and so on) is an error carrying the
// finish reason.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	if candidate != nil && candidate.Content != nil {
		for _, p := range candidate.Content.Parts {
			if p != nil {
				sb.WriteString(p.Text)
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		reason := "unspecified"
		if candidate != nil && candidate.FinishReason != "" {
			reason = string(candidate.FinishReason)
		}
		return "", fmt.Errorf("%w (finish reason: %s)", ErrEmptyText, reason)
	}
	return text, nil
}
