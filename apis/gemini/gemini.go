package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"weatherbot/config"
	"weatherbot/manager"
	"weatherbot/observability"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.0-flash"
)

type AIClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	metrics *observability.Metrics
}

func New(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (*AIClient, error) {
	if cfg.Enrichment.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.Enrichment.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Enrichment.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Enrichment.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Enrichment.Model
	if model == "" {
		model = defaultModel
	}

	return &AIClient{
		client:  client,
		model:   model,
		timeout: cfg.Enrichment.Timeout,
		metrics: metrics,
	}, nil
}

// Generate sends prompt as a single user turn and returns the text of the answer.
func (ai *AIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if ai.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), nil)
	if err != nil {
		ai.metrics.ObserveProvider(providerName, "error", start)
		return "", &manager.ProviderError{Provider: providerName, Err: err}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		ai.metrics.ObserveProvider(providerName, "error", start)
		return "", &manager.ProviderError{Provider: providerName, Err: errors.New("empty response")}
	}

	ai.metrics.ObserveProvider(providerName, "success", start)
	return text, nil
}
