package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherbot/config"
	"weatherbot/manager"
	"weatherbot/observability"
)

func testClient(t *testing.T, handler http.HandlerFunc) *AIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Enrichment.APIKey = "test-key"
	cfg.Enrichment.BaseURL = srv.URL
	cfg.Enrichment.Timeout = 5 * time.Second

	client, err := New(context.Background(), cfg, observability.NewMetricsForTesting())
	require.NoError(t, err)
	return client
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), &config.Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNew_DefaultModel(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {})
	assert.Equal(t, defaultModel, client.model)
}

func TestGenerate_Success(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "zip code - 560006")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"10-----10 Parks 10-----10"}]}}]}`))
	})

	text, err := client.Generate(context.Background(), "suggest places in zip code - 560006")
	require.NoError(t, err)
	assert.Equal(t, "10-----10 Parks 10-----10", text)
}

func TestGenerate_APIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Generate(context.Background(), "prompt")
	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, providerName, perr.Provider)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Generate(context.Background(), "prompt")
	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "empty response")
}
