package advisor

import (
	"math"
	"strconv"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
)

const (
	// SummaryWindow is how many recent monthly readings feed the AI prompt.
	SummaryWindow = 6
	// HeuristicWindow is how many recent readings the fallback inspects.
	HeuristicWindow = 30
	// InsightWindow is how many recent readings feed the insight prompt.
	InsightWindow = 10
)

// Summary totals the quantities of a set of readings.
type Summary struct {
	Electricity float64 `json:"electricity"`
	Water       float64 `json:"water"`
	Gas         float64 `json:"gas"`
	Readings    int     `json:"readings"`
}

func Summarize(readings []*consumption.Reading) Summary {
	var s Summary
	for _, r := range readings {
		if r == nil {
			continue
		}
		s.Electricity += r.Amount(consumption.Electricity)
		s.Water += r.Amount(consumption.Water)
		s.Gas += r.Amount(consumption.Gas)
		s.Readings++
	}
	return s
}

// formatQuantity renders v with at most 2 decimals and no trailing zeros.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
