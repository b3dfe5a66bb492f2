package advisor

import (
	"fmt"
	"math"
	"strconv"

	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
)

// WeatherUnavailable replaces the weather sentence when no report exists.
const WeatherUnavailable = "Weather data unavailable, using general seasonal recommendations."

// WeatherContext renders the current conditions as one sentence and, when a
// forecast is available, appends whether the next three forecast points are
// warmer or cooler on average. A nil report yields "".
func WeatherContext(current *weather.Report, forecast []weather.ForecastPoint) string {
	if current == nil {
		return ""
	}
	out := fmt.Sprintf("Current weather in %s: %s°C, %s. %s",
		current.Location, formatTemp(current.Temperature), current.Description, current.Impact)

	if len(forecast) == 0 {
		return out
	}
	next := forecast[1:min(4, len(forecast))]
	if len(next) == 0 {
		return out
	}
	var sum float64
	for _, p := range next {
		sum += p.Temperature
	}
	avg := sum / float64(len(next))
	trend := "cooler"
	if avg > current.Temperature {
		trend = "warmer"
	}
	return out + fmt.Sprintf(" Weather forecast: Next 3 days will be %s (avg %s°C).", trend, formatTemp(roundHalfUp(avg)))
}

func formatTemp(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
