package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicClient(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAnthropicClient(DefaultAnthropicConfig(), "test-key")
	require.NoError(t, err)
	client.endpoint = server.URL
	return client
}

func TestAnthropicGenerateContent(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("Anthropic-Version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-3-5-haiku-latest", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "hello"}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "say hello", TierLite)

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestAnthropicGenerateJSONStripsFences(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "` + "```json\\n{\\\"a\\\": 1}\\n```" + `"}]}`))
	})

	text, err := client.GenerateJSON(context.Background(), "emit json", TierStandard)

	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, text)
}

func TestAnthropicErrorStatus(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
	})

	_, err := client.GenerateContent(context.Background(), "anything", TierLite)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAnthropicEmptyContent(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	})

	_, err := client.GenerateContent(context.Background(), "anything", TierLite)

	assert.Error(t, err)
}

func TestNewAnthropicClientRequiresKey(t *testing.T) {
	_, err := NewAnthropicClient(DefaultAnthropicConfig(), "")
	assert.Error(t, err)
}
