package advisor

import (
	"fmt"
	"strconv"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
)

const (
	// MaxRecommendations caps a single fallback generation.
	MaxRecommendations = 5

	recentHeuristicWindow = 5
	increaseThreshold     = 1.1
	praiseThreshold       = 0.9
)

type increaseCopy struct {
	label       string
	description string
	category    string
	priority    advice.Priority
}

var increaseCatalog = map[consumption.Resource]increaseCopy{
	consumption.Electricity: {
		label:       "Electricity",
		description: "Your electricity consumption is higher than usual. Consider adjusting your thermostat by 2°C and unplugging devices when not in use.",
		category:    advice.CategoryElectricity,
		priority:    advice.PriorityHigh,
	},
	consumption.Water: {
		label:       "Water",
		description: "Your water consumption is above average. Check for leaks and consider shorter showers to reduce usage.",
		category:    advice.CategoryWater,
		priority:    advice.PriorityMedium,
	},
	consumption.Gas: {
		label:       "Gas",
		description: "Your gas consumption is higher than usual. Consider lowering your heating temperature and improving home insulation.",
		category:    advice.CategoryGas,
		priority:    advice.PriorityHigh,
	},
}

// generalTips are appended after the pattern-based entries.
var generalTips = []RecommendationDraft{
	{
		Title:            "Peak hours optimization",
		Description:      "Shift your high-energy activities to off-peak hours (11 PM - 6 AM) to save on electricity costs.",
		Category:         advice.CategoryElectricity,
		Priority:         advice.PriorityMedium,
		PotentialSavings: 15,
	},
	{
		Title:            "Smart home integration",
		Description:      "Consider installing smart thermostats and LED bulbs to automatically optimize your energy usage.",
		Category:         advice.CategoryElectricity,
		Priority:         advice.PriorityLow,
		PotentialSavings: 25,
	},
	{
		Title:            "Water-efficient appliances",
		Description:      "Upgrade to water-efficient appliances and fixtures to reduce your water consumption by up to 20%.",
		Category:         advice.CategoryWater,
		Priority:         advice.PriorityLow,
		PotentialSavings: 30,
	},
}

// Heuristic is the rule-based fallback. readings are ordered most recent
// first; at most HeuristicWindow are inspected. For each resource it compares
// the mean of the most recent five against the mean of all, warning on a rise
// above 10% and praising a drop below 10%, then appends the general tips. The
// result never exceeds MaxRecommendations.
func Heuristic(readings []*consumption.Reading) []RecommendationDraft {
	if len(readings) > HeuristicWindow {
		readings = readings[:HeuristicWindow]
	}

	out := make([]RecommendationDraft, 0, MaxRecommendations)
	if len(readings) > 0 {
		for _, res := range consumption.Resources {
			if d, ok := patternFor(res, readings); ok {
				out = append(out, d)
			}
		}
	}
	for _, tip := range generalTips {
		tip.Source = advice.SourceHeuristic
		tip.SavingsText = strconv.FormatFloat(tip.PotentialSavings, 'f', 2, 64)
		out = append(out, tip)
	}
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

func patternFor(res consumption.Resource, readings []*consumption.Reading) (RecommendationDraft, bool) {
	series := make([]float64, 0, len(readings))
	for _, r := range readings {
		if r != nil {
			series = append(series, r.Amount(res))
		}
	}
	if len(series) == 0 {
		return RecommendationDraft{}, false
	}
	average := mean(series)
	if average <= 0 {
		return RecommendationDraft{}, false
	}
	recent := mean(series[:min(recentHeuristicWindow, len(series))])

	switch {
	case recent > average*increaseThreshold:
		c := increaseCatalog[res]
		savings := round1(recent - average)
		return RecommendationDraft{
			Title:            fmt.Sprintf("%s usage increased by %s%%", c.label, fixed1((recent-average)/average*100)),
			Description:      c.description,
			Category:         c.category,
			Priority:         c.priority,
			PotentialSavings: savings,
			SavingsText:      fixed1(savings),
			Source:           advice.SourceHeuristic,
		}, true
	case recent < average*praiseThreshold:
		saved := round1(average - recent)
		return RecommendationDraft{
			Title:            fmt.Sprintf("Great job on %s conservation! 🌱", res),
			Description:      fmt.Sprintf("You've saved %s units compared to your average. Keep up the excellent work!", fixed1(saved)),
			Category:         advice.CategoryGeneral,
			Priority:         advice.PriorityLow,
			PotentialSavings: saved,
			SavingsText:      fixed1(saved),
			Source:           advice.SourceHeuristic,
		}, true
	}
	return RecommendationDraft{}, false
}

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func fixed1(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func round1(v float64) float64 {
	f, _ := strconv.ParseFloat(fixed1(v), 64)
	return f
}
