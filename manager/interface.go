package manager

import (
	"context"
)

type Lookup interface {
	Resolve(ctx context.Context, query string) (Report, error)
}

// Geocoding resolves a place name to coordinates. It returns ErrNotFound
// when the provider has no match.
type Geocoding interface {
	Get(ctx context.Context, name string) (Coordinates, error)
}

// Weather fetches current conditions from the weather provider.
type Weather interface {
	ByCoordinates(ctx context.Context, coord Coordinates) (Current, error)
	ByPostalCode(ctx context.Context, code, country string) (Current, error)
}

type Mode int

const (
	ModeCity Mode = iota
	ModePostalCode
)

func (m Mode) String() string {
	if m == ModePostalCode {
		return "zip"
	}
	return "city"
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Current is the provider-neutral view of a current weather response.
type Current struct {
	Name        string
	Coordinates Coordinates
	Climate     string
	TempKelvin  float64
	Humidity    int
	Visibility  int
}
