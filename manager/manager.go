package manager

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func New(mode Mode, country string) *weather {
	return &weather{
		mode:    mode,
		country: country,
	}
}

type weather struct {
	mode      Mode
	country   string
	api       Weather
	geocoding Geocoding
}

// Resolve turns raw user input into a Report. Place names go through the
// geocoding provider first; postal codes are sent to the weather provider as is.
func (w *weather) Resolve(ctx context.Context, query string) (Report, error) {
	if w.api == nil {
		return Report{}, fmt.Errorf("weather api not registered")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return Report{}, ErrNotFound
	}

	switch w.mode {
	case ModePostalCode:
		return w.byPostalCode(ctx, query)
	default:
		return w.byName(ctx, query)
	}
}

func (w *weather) byName(ctx context.Context, query string) (Report, error) {
	if w.geocoding == nil {
		return Report{}, fmt.Errorf("geocoding not registered")
	}

	name := cases.Title(language.Und).String(query)

	coord, err := w.geocoding.Get(ctx, name)
	if err != nil {
		return Report{}, err
	}

	current, err := w.api.ByCoordinates(ctx, coord)
	if err != nil {
		return Report{}, err
	}

	report := newReport(ModeCity, query, current)
	report.Area = name
	return report, nil
}

func (w *weather) byPostalCode(ctx context.Context, query string) (Report, error) {
	current, err := w.api.ByPostalCode(ctx, query, w.country)
	if err != nil {
		return Report{}, err
	}

	return newReport(ModePostalCode, query, current), nil
}

func newReport(mode Mode, query string, current Current) Report {
	return Report{
		Mode:        mode,
		Query:       query,
		Area:        current.Name,
		Coordinates: current.Coordinates,
		Climate:     current.Climate,
		TempKelvin:  current.TempKelvin,
		Humidity:    current.Humidity,
		Visibility:  current.Visibility,
	}
}

func (w *weather) RegisterAPI(api Weather) {
	w.api = api
}

func (w *weather) SetGeocoding(geocoding Geocoding) {
	w.geocoding = geocoding
}
