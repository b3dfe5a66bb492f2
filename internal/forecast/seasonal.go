package forecast

import (
	"time"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
)

type Season string

const (
	Winter   Season = "winter"
	Summer   Season = "summer"
	Shoulder Season = "shoulder"
)

// SeasonOf maps a calendar month onto the demand season used by the
// multiplier table. Winter runs December through March, summer June
// through September.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February, time.March:
		return Winter
	case time.June, time.July, time.August, time.September:
		return Summer
	default:
		return Shoulder
	}
}

type seasonKey struct {
	resource consumption.Resource
	season   Season
}

// seasonalFactors scales a baseline forecast for predictable seasonal demand.
// Missing combinations are 1.0.
var seasonalFactors = map[seasonKey]float64{
	{consumption.Electricity, Winter}: 1.2,
	{consumption.Electricity, Summer}: 1.1,

	{consumption.Gas, Winter}:   1.4,
	{consumption.Gas, Summer}:   0.8,
	{consumption.Gas, Shoulder}: 0.8,

	{consumption.Water, Summer}: 1.1,
}

func SeasonalFactor(r consumption.Resource, s Season) float64 {
	if f, ok := seasonalFactors[seasonKey{r, s}]; ok {
		return f
	}
	return 1.0
}
