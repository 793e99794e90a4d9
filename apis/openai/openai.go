package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"weatherbot/config"
	"weatherbot/manager"
	"weatherbot/observability"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o-mini"
)

type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	metrics *observability.Metrics
}

// New builds a chat-completion client. ENRICHMENT_BASE_URL points it at a
// proxy or a self-hosted compatible endpoint.
func New(cfg *config.Config, metrics *observability.Metrics) (*Client, error) {
	key := strings.TrimSpace(cfg.Enrichment.APIKey)
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	clientConfig := openai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.Enrichment.BaseURL); base != "" {
		clientConfig.BaseURL = base
	}

	model := cfg.Enrichment.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: cfg.Enrichment.Timeout,
		metrics: metrics,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.metrics.ObserveProvider(providerName, "error", start)
		return "", &manager.ProviderError{Provider: providerName, StatusCode: statusCode(err), Err: fmt.Errorf("completion: %w", err)}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.metrics.ObserveProvider(providerName, "error", start)
		return "", &manager.ProviderError{Provider: providerName, Err: errors.New("empty response")}
	}

	c.metrics.ObserveProvider(providerName, "success", start)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
