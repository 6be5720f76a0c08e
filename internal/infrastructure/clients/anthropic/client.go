package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/facilityqualityinsights/internal/domain/entities"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
	apperrors "github.com/zatekoja/facilityqualityinsights/pkg/errors"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	defaultModel   = "claude-sonnet-4-5-20250929"
)

// Client implements the narrative provider against the Anthropic Messages
// API. The outbound call is a single blocking request: no retry, no breaker,
// only the HTTP client timeout.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a new Anthropic client. A missing API key is not an
// error here; it surfaces as a configuration error on first use so the
// service can report it as a display string.
func NewClient(cfg *config.AnthropicConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 900
	}

	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateNarrative sends the compact report to the Messages API and returns
// the generated text.
func (c *Client) GenerateNarrative(ctx context.Context, report *entities.QualityReport) (string, error) {
	if report == nil {
		return "", errors.New("report is required")
	}
	if c.apiKey == "" {
		return "", apperrors.NewConfigurationError("ANTHROPIC_API_KEY is not set")
	}

	compact, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	prompt := buildSummaryPrompt(report.Facility, string(compact))

	body, err := json.Marshal(messagesRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordAnthropicMetric(ctx, c.model, 0, time.Since(start), err)
		return "", apperrors.NewExternalError("anthropic request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		recordAnthropicMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))

		detail := envelope.Error.Message
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		kind := envelope.Error.Type
		if kind == "" {
			kind = "api_error"
		}
		return "", apperrors.NewExternalError(
			fmt.Sprintf("anthropic request failed with status %d: %s: %s", resp.StatusCode, kind, detail),
			nil,
		)
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		recordAnthropicMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", apperrors.NewExternalError("failed to decode anthropic response", err)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			text = block.Text
			break
		}
	}

	recordAnthropicMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return strings.TrimSpace(text), nil
}
