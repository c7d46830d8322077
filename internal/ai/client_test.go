package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, timeout time.Duration, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), GeminiConfig{
		APIKey:     "test-key",
		Model:      "gemini-1.5-flash",
		BaseURL:    server.URL + "/",
		APIVersion: "v1beta",
		Timeout:    timeout,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestGeminiClient_Generate(t *testing.T) {
	client := newTestClient(t, 2*time.Second, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-1.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		respondJSON(http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"  Hi "},{"text":"there \n"}]},"finishReason":"STOP"}]}`)(w, r)
	})

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", text)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error body",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			wantErr: "API key not valid",
		},
		{
			name:    "upstream failure",
			status:  http.StatusBadGateway,
			body:    `{"error":{"code":502,"message":"upstream down","status":"UNAVAILABLE"}}`,
			wantErr: "upstream down",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: ErrEmptyResponse.Error(),
		},
		{
			name:    "blocked prompt",
			status:  http.StatusOK,
			body:    `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantErr: "prompt blocked: SAFETY",
		},
		{
			name:    "candidate stopped for safety",
			status:  http.StatusOK,
			body:    `{"candidates":[{"finishReason":"SAFETY","content":{"parts":[]}}]}`,
			wantErr: "finish reason: SAFETY",
		},
		{
			name:    "whitespace only text",
			status:  http.StatusOK,
			body:    `{"candidates":[{"finishReason":"STOP","content":{"parts":[{"text":"  \n"}]}}]}`,
			wantErr: "finish reason: STOP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, 2*time.Second, respondJSON(tt.status, tt.body))

			text, err := client.Generate(context.Background(), "x")
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGeminiClient_Timeout(t *testing.T) {
	client := newTestClient(t, 20*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	_, err := client.Generate(context.Background(), "x")
	assert.Error(t, err)
}
