package analytics

import (
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
)

// Changes is the percent change per resource and in CO2 between two readings.
// A nil entry means there is nothing to compare against.
type Changes struct {
	Electricity *float64 `json:"electricity"`
	Water       *float64 `json:"water"`
	Gas         *float64 `json:"gas"`
	CO2         *float64 `json:"co2"`
}

// Compare computes current against previous. Either reading may be nil.
func Compare(current, previous *consumption.Reading, f footprint.FactorSet) Changes {
	if current == nil || previous == nil {
		return Changes{}
	}
	return Changes{
		Electricity: percentChange(current.Amount(consumption.Electricity), previous.Amount(consumption.Electricity)),
		Water:       percentChange(current.Amount(consumption.Water), previous.Amount(consumption.Water)),
		Gas:         percentChange(current.Amount(consumption.Gas), previous.Amount(consumption.Gas)),
		CO2: percentChange(
			footprint.Kg(footprint.FromReading(current), f).Total(),
			footprint.Kg(footprint.FromReading(previous), f).Total(),
		),
	}
}

func percentChange(cur, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := footprint.Round((cur-prev)/prev*100, 1)
	return &v
}

// PreviousMonth returns the reading for the calendar month before (year, month)
// among readings, or nil.
func PreviousMonth(readings []*consumption.Reading, year, month int) *consumption.Reading {
	py, pm := year, month-1
	if pm == 0 {
		py, pm = year-1, 12
	}
	return FindMonth(readings, py, pm)
}

// FindMonth returns the first monthly reading matching (year, month). Weekly
// readings are used only when no monthly one exists.
func FindMonth(readings []*consumption.Reading, year, month int) *consumption.Reading {
	var weekly *consumption.Reading
	for _, r := range readings {
		if r == nil || r.Year != year || r.Month != month {
			continue
		}
		if r.WeekNumber == nil {
			return r
		}
		if weekly == nil {
			weekly = r
		}
	}
	return weekly
}
