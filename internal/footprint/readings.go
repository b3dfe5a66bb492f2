package footprint

import "github.com/yungbote/ecotrack-backend/internal/domain/consumption"

func FromReading(r *consumption.Reading) Consumption {
	if r == nil {
		return Consumption{}
	}
	return Consumption{
		Electricity: r.Amount(consumption.Electricity),
		Gas:         r.Amount(consumption.Gas),
		Water:       r.Amount(consumption.Water),
	}
}

// Sum totals the quantities of every reading.
func Sum(readings []*consumption.Reading) Consumption {
	var total Consumption
	for _, r := range readings {
		total = total.Add(FromReading(r))
	}
	return total
}
