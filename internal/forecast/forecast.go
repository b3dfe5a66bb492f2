package forecast

import (
	"math"
	"time"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
)

const (
	// MinPoints is the shortest history that yields a forecast.
	MinPoints = 3
	// MaxPoints caps how much history contributes to the average.
	MaxPoints = 12
	// Horizon is the fixed distance from generation time to the forecast date.
	Horizon = 30 * 24 * time.Hour

	recentWindow = 3
	trendWeight  = 0.5

	MinConfidence = 0.3
	MaxConfidence = 0.95
)

type Forecast struct {
	PredictedAmount float64 `json:"predicted_amount"`
	Confidence      float64 `json:"confidence"`
	Average         float64 `json:"average"`
	Trend           float64 `json:"trend"`
	Seasonal        float64 `json:"seasonal_multiplier"`
	Points          int     `json:"points"`
}

// Predict forecasts the next period for one resource. series is ordered most
// recent first; only the first MaxPoints values are used. ok is false when
// fewer than MinPoints values are available.
func Predict(series []float64, r consumption.Resource, month time.Month) (Forecast, bool) {
	if len(series) < MinPoints {
		return Forecast{}, false
	}
	if len(series) > MaxPoints {
		series = series[:MaxPoints]
	}

	average := mean(series)
	recentAvg := mean(series[:recentWindow])
	olderAvg := recentAvg
	if len(series) > recentWindow {
		end := 2 * recentWindow
		if end > len(series) {
			end = len(series)
		}
		olderAvg = mean(series[recentWindow:end])
	}
	trend := recentAvg - olderAvg
	seasonal := SeasonalFactor(r, SeasonOf(month))

	return Forecast{
		PredictedAmount: round((average+trend*trendWeight)*seasonal, 2),
		Confidence:      round(Confidence(series, average), 4),
		Average:         average,
		Trend:           trend,
		Seasonal:        seasonal,
		Points:          len(series),
	}, true
}

// Confidence is a data-consistency proxy: 1 - 2*variance/average, clamped to
// [MinConfidence, MaxConfidence]. A non-positive average yields MinConfidence.
func Confidence(series []float64, average float64) float64 {
	if average <= 0 || len(series) == 0 {
		return MinConfidence
	}
	var sq float64
	for _, v := range series {
		d := v - average
		sq += d * d
	}
	variance := sq / float64(len(series))
	c := 1 - (variance/average)*2
	if math.IsNaN(c) {
		return MinConfidence
	}
	return math.Max(MinConfidence, math.Min(MaxConfidence, c))
}

// PredictionDate is the instant a forecast generated at now refers to.
func PredictionDate(now time.Time) time.Time {
	return now.Add(Horizon)
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
