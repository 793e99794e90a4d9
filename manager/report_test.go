package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsius(t *testing.T) {
	assert.InDelta(t, 26.85, Celsius(300.0), 1e-9)
	assert.InDelta(t, 0.0, Celsius(273.15), 1e-9)
}

func TestReport_String_PostalCode(t *testing.T) {
	r := Report{
		Mode:        ModePostalCode,
		Area:        "Vijayanagar",
		Coordinates: Coordinates{Latitude: 12.9, Longitude: 77.5},
		Climate:     "Clear",
		TempKelvin:  300.0,
		Humidity:    40,
		Visibility:  6000,
	}

	want := "Weather Report:\nArea : Vijayanagar\nLatitude : 12.9\nLongitude : 77.5\nClimate : Clear\n" +
		"Temperature : 26.85 °C\nHumidity : 40 %\nVisibility : 6000 metres\n"
	assert.Equal(t, want, r.String())
}

func TestReport_String_City(t *testing.T) {
	r := Report{
		Mode:       ModeCity,
		Area:       "London",
		Climate:    "Rain",
		TempKelvin: 281.46,
		Humidity:   87,
		Visibility: 9000,
	}

	want := "Weather Report:\n\nCity : London\nDesc : Rain\nTemp : 281.46 K\nHumidity : 87 %\nVisibility : 9000 metres"
	assert.Equal(t, want, r.String())
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "300.0", formatFloat(300))
	assert.Equal(t, "12.9", formatFloat(12.9))
	assert.Equal(t, "-0.5", formatFloat(-0.5))
}
