package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"weatherbot/config"
	"weatherbot/manager"
	"weatherbot/observability"
)

const providerName = "geocoding"

func New(cfg *config.Config, metrics *observability.Metrics) *geocoding {
	return &geocoding{
		apiKey:  cfg.Weather.APIKey,
		client:  resty.New().SetBaseURL(cfg.Weather.BaseURL).SetTimeout(cfg.Weather.Timeout),
		metrics: metrics,
	}
}

type geocoding struct {
	apiKey  string
	client  *resty.Client
	metrics *observability.Metrics
}

// Get returns the coordinates of the best match for name.
func (g *geocoding) Get(ctx context.Context, name string) (manager.Coordinates, error) {
	params := map[string]string{
		"q":     name,
		"limit": "1",
		"appid": g.apiKey,
	}

	start := time.Now()
	coord, err := g.processRequest(ctx, "/geo/1.0/direct", params)
	g.metrics.ObserveProvider(providerName, outcome(err), start)

	return coord, err
}

func (g *geocoding) processRequest(ctx context.Context, path string, params map[string]string) (manager.Coordinates, error) {
	type responseStruct struct {
		Name string   `json:"name"`
		Lat  *float64 `json:"lat"`
		Lon  *float64 `json:"lon"`
	}

	response, err := g.client.R().SetContext(ctx).SetQueryParams(params).Get(path)
	if err != nil {
		return manager.Coordinates{}, &manager.ProviderError{Provider: providerName, Err: err}
	}

	if !response.IsSuccess() {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, response.Body(), "", "  "); err != nil {
			buf.Reset()
			buf.Write(response.Body())
		}

		return manager.Coordinates{}, &manager.ProviderError{
			Provider:   providerName,
			StatusCode: response.StatusCode(),
			Err:        errors.New(buf.String()),
		}
	}

	responseStr := make([]responseStruct, 0, 1)
	if err := json.Unmarshal(response.Body(), &responseStr); err != nil {
		return manager.Coordinates{}, &manager.ProviderError{Provider: providerName, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(responseStr) == 0 {
		return manager.Coordinates{}, manager.ErrNotFound
	}

	first := responseStr[0]
	if first.Lat == nil || first.Lon == nil {
		return manager.Coordinates{}, &manager.ProviderError{Provider: providerName, Err: fmt.Errorf("match %q has no coordinates", first.Name)}
	}

	return manager.Coordinates{
		Latitude:  *first.Lat,
		Longitude: *first.Lon,
	}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, manager.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
