package openweather

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"weatherbot/config"
	"weatherbot/manager"
	"weatherbot/observability"
)

const (
	providerName = "openweather"
	notFoundCode = "404"
)

func New(cfg *config.Config, metrics *observability.Metrics) *weatherApi {
	return &weatherApi{
		apiKey:  cfg.Weather.APIKey,
		client:  resty.New().SetBaseURL(cfg.Weather.BaseURL).SetTimeout(cfg.Weather.Timeout),
		metrics: metrics,
	}
}

type weatherApi struct {
	apiKey  string
	client  *resty.Client
	metrics *observability.Metrics
}

func (w *weatherApi) ByCoordinates(ctx context.Context, coord manager.Coordinates) (manager.Current, error) {
	return w.get(ctx, map[string]string{
		"lat":   strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
		"lon":   strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
		"appid": w.apiKey,
	})
}

// ByPostalCode queries by "<code>,<country>", e.g. "560006,in".
func (w *weatherApi) ByPostalCode(ctx context.Context, code, country string) (manager.Current, error) {
	return w.get(ctx, map[string]string{
		"zip":   code + "," + country,
		"appid": w.apiKey,
	})
}

func (w *weatherApi) get(ctx context.Context, params map[string]string) (manager.Current, error) {
	start := time.Now()
	current, err := w.processRequest(ctx, "/data/2.5/weather", params)

	switch {
	case err == nil:
		w.metrics.ObserveProvider(providerName, "success", start)
	case errors.Is(err, manager.ErrNotFound):
		w.metrics.ObserveProvider(providerName, "not_found", start)
	default:
		w.metrics.ObserveProvider(providerName, "error", start)
	}
	return current, err
}

func (w *weatherApi) processRequest(ctx context.Context, path string, params map[string]string) (manager.Current, error) {
	response, err := w.client.R().SetContext(ctx).SetQueryParams(params).Get(path)
	if err != nil {
		return manager.Current{}, &manager.ProviderError{Provider: providerName, Err: err}
	}

	var r result
	decodeErr := json.Unmarshal(response.Body(), &r)

	if decodeErr == nil && r.Cod.String() == notFoundCode {
		return manager.Current{}, manager.ErrNotFound
	}

	if !response.IsSuccess() {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, response.Body(), "", "  "); err != nil {
			buf.Reset()
			buf.Write(response.Body())
		}

		return manager.Current{}, &manager.ProviderError{
			Provider:   providerName,
			StatusCode: response.StatusCode(),
			Err:        errors.New(buf.String()),
		}
	}

	if decodeErr != nil {
		return manager.Current{}, &manager.ProviderError{Provider: providerName, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	return r.current()
}

// cod is an int on success and a string on errors ("404").
type cod string

func (c *cod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = cod(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cod: %w", err)
	}
	*c = cod(n.String())
	return nil
}

func (c cod) String() string {
	return string(c)
}

type result struct {
	Cod   cod    `json:"cod"`
	Name  string `json:"name"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Visibility *int `json:"visibility"`
}

func (r result) current() (manager.Current, error) {
	var missing []string
	if r.Coord == nil {
		missing = append(missing, "coord")
	}
	if len(r.Weather) == 0 {
		missing = append(missing, "weather")
	}
	if r.Main == nil {
		missing = append(missing, "main")
	}
	if r.Visibility == nil {
		missing = append(missing, "visibility")
	}
	if len(missing) > 0 {
		return manager.Current{}, &manager.ProviderError{
			Provider: providerName,
			Err:      fmt.Errorf("response missing fields: %s", strings.Join(missing, ", ")),
		}
	}

	return manager.Current{
		Name:        r.Name,
		Coordinates: manager.Coordinates{Latitude: r.Coord.Lat, Longitude: r.Coord.Lon},
		Climate:     r.Weather[0].Main,
		TempKelvin:  r.Main.Temp,
		Humidity:    r.Main.Humidity,
		Visibility:  *r.Visibility,
	}, nil
}
