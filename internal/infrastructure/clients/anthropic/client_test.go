package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/facilityqualityinsights/internal/domain/entities"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
	apperrors "github.com/zatekoja/facilityqualityinsights/pkg/errors"
)

func testReport() *entities.QualityReport {
	value := 0.852
	return &entities.QualityReport{
		Facility:          "Mercy General Hospital",
		PatientExperience: []entities.ExperienceEntry{},
		Infections: []entities.InfectionEntry{
			{Name: "HAI_1_SIR", Value: value, Unit: entities.UnitSIR, Better: entities.BetterLower},
		},
		Readmissions:           []entities.ReadmissionEntry{},
		MortalityComplications: []entities.OutcomeEntry{},
		TimelyCare:             []entities.TimelyCareEntry{},
	}
}

func TestGenerateNarrative_Success(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "  AI-Assisted Performance Summary...  "},
			},
		})
	}))
	defer server.Close()

	client := NewClient(&config.AnthropicConfig{
		APIKey:      "test-key",
		Model:       "claude-test",
		BaseURL:     server.URL,
		MaxTokens:   900,
		Temperature: 0.3,
	})

	text, err := client.GenerateNarrative(context.Background(), testReport())
	require.NoError(t, err)
	assert.Equal(t, "AI-Assisted Performance Summary...", text)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, apiVersion, gotVersion)
	assert.Equal(t, "claude-test", gotBody["model"])
	assert.Equal(t, float64(900), gotBody["max_tokens"])

	messages, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "user", first["role"])

	prompt := first["content"].(string)
	assert.Contains(t, prompt, "Mercy General Hospital")
	assert.Contains(t, prompt, "Metric interpretation rules:")
	assert.Contains(t, prompt, `"facility":"Mercy General Hospital"`)
	assert.Contains(t, prompt, "Do not exceed 200-250 words.")
}

func TestGenerateNarrative_MissingAPIKey(t *testing.T) {
	client := NewClient(&config.AnthropicConfig{})

	_, err := client.GenerateNarrative(context.Background(), testReport())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
	assert.Contains(t, appErr.Message, "ANTHROPIC_API_KEY")
}

func TestGenerateNarrative_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"type":    "rate_limit_error",
				"message": "Number of requests has exceeded your rate limit",
			},
		})
	}))
	defer server.Close()

	client := NewClient(&config.AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.GenerateNarrative(context.Background(), testReport())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
	assert.Contains(t, appErr.Message, "429")
	assert.Contains(t, appErr.Message, "rate_limit_error")
}

func TestGenerateNarrative_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(&config.AnthropicConfig{APIKey: "test-key", BaseURL: server.URL})

	text, err := client.GenerateNarrative(context.Background(), testReport())
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(&config.AnthropicConfig{APIKey: "k"})

	assert.Equal(t, defaultModel, client.model)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, 900, client.maxTokens)
}
