package manager

import (
	"fmt"
	"strconv"
	"strings"
)

const absoluteZero = 273.15

// Report is a single weather answer, rendered into the reply text by String.
type Report struct {
	Mode        Mode
	Query       string
	Area        string
	Coordinates Coordinates
	Climate     string
	TempKelvin  float64
	Humidity    int
	Visibility  int
}

func Celsius(kelvin float64) float64 {
	return kelvin - absoluteZero
}

func (r Report) String() string {
	if r.Mode == ModePostalCode {
		return fmt.Sprintf("Weather Report:\nArea : %s\nLatitude : %s\nLongitude : %s\nClimate : %s\nTemperature : %.2f °C\nHumidity : %d %%\nVisibility : %d metres\n",
			r.Area,
			formatFloat(r.Coordinates.Latitude),
			formatFloat(r.Coordinates.Longitude),
			r.Climate,
			Celsius(r.TempKelvin),
			r.Humidity,
			r.Visibility,
		)
	}

	return fmt.Sprintf("Weather Report:\n\nCity : %s\nDesc : %s\nTemp : %s K\nHumidity : %d %%\nVisibility : %d metres",
		r.Area,
		r.Climate,
		formatFloat(r.TempKelvin),
		r.Humidity,
		r.Visibility,
	)
}

// formatFloat prints the shortest exact representation, keeping one decimal
// for whole numbers (300 -> "300.0").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
