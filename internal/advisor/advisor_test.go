package advisor

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	"github.com/yungbote/ecotrack-backend/internal/platform/weather"
)

func reading(e, w, g float64) *consumption.Reading {
	return &consumption.Reading{
		Electricity: decimal.NewFromFloat(e),
		Water:       decimal.NewFromFloat(w),
		Gas:         decimal.NewFromFloat(g),
	}
}

// steady builds n readings with identical values, most recent first.
func steady(n int, e, w, g float64) []*consumption.Reading {
	out := make([]*consumption.Reading, n)
	for i := range out {
		out[i] = reading(e, w, g)
	}
	return out
}

func TestSummarize(t *testing.T) {
	s := Summarize([]*consumption.Reading{reading(300, 20, 100), reading(330, 18, 80), nil})
	assert.Equal(t, Summary{Electricity: 630, Water: 38, Gas: 180, Readings: 2}, s)
}

func TestWeatherContext(t *testing.T) {
	cur := &weather.Report{Location: "Almaty", Temperature: 28, Description: "Sunny", Impact: "Hot."}

	t.Run("nil report", func(t *testing.T) {
		assert.Equal(t, "", WeatherContext(nil, nil))
	})
	t.Run("no forecast", func(t *testing.T) {
		assert.Equal(t, "Current weather in Almaty: 28°C, Sunny. Hot.", WeatherContext(cur, nil))
	})
	t.Run("warmer", func(t *testing.T) {
		fc := []weather.ForecastPoint{{Temperature: 0}, {Temperature: 30}, {Temperature: 31}, {Temperature: 29}, {Temperature: -40}}
		got := WeatherContext(cur, fc)
		assert.True(t, strings.HasSuffix(got, " Weather forecast: Next 3 days will be warmer (avg 30°C)."), got)
	})
	t.Run("cooler with short forecast", func(t *testing.T) {
		fc := []weather.ForecastPoint{{Temperature: 28}, {Temperature: 20}, {Temperature: 25}}
		got := WeatherContext(cur, fc)
		assert.True(t, strings.HasSuffix(got, "cooler (avg 23°C)."), got)
	})
	t.Run("single point has no window", func(t *testing.T) {
		got := WeatherContext(cur, []weather.ForecastPoint{{Temperature: 28}})
		assert.NotContains(t, got, "forecast")
	})
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 23.0, roundHalfUp(22.5))
	assert.Equal(t, -2.0, roundHalfUp(-2.5))
}

func TestRecommendationPrompt(t *testing.T) {
	p := RecommendationPrompt(Summary{Electricity: 630, Water: 38.5, Gas: 180}, "")
	assert.Contains(t, p, "- Electricity: 630 kWh")
	assert.Contains(t, p, "- Water: 38.5 m³")
	assert.Contains(t, p, "Weather context: "+WeatherUnavailable)
	assert.Contains(t, p, `"recommendations"`)
}

func TestInsightPrompt(t *testing.T) {
	kg := footprint.Kg(footprint.Consumption{Electricity: 100, Gas: 20, Water: 10}, footprint.Insights())
	p := InsightPrompt(kg, "Current weather in Almaty: 28°C, Sunny. Hot.", "Equivalent to driving ~1 miles")
	assert.Contains(t, p, "- Total CO2 emissions: 89.15 kg")
	assert.Contains(t, p, "- Electricity: 45.32 kg CO2")
	assert.Contains(t, p, "- Gas: 40.85 kg CO2")
	assert.Contains(t, p, "- Water: 2.98 kg CO2")
	assert.Contains(t, p, "Current weather in Almaty")
	assert.Contains(t, p, `"insights" array`)
}

func TestParseRecommendations(t *testing.T) {
	raw := `{"recommendations":[
		{"title":"Shade windows","description":"Close blinds at noon.","category":"Electricity","potentialSavings":"15-25","priority":"high"},
		{"title":"Fix leaks","description":"Check taps.","category":"water","potentialSavings":12.5,"priority":"urgent"},
		{"title":"Misc","description":"Something.","category":"transport","potentialSavings":"about $10"}
	]}`
	got, err := ParseRecommendations(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, advice.CategoryElectricity, got[0].Category)
	assert.Equal(t, 15.0, got[0].PotentialSavings)
	assert.Equal(t, "15-25", got[0].SavingsText)
	assert.Equal(t, advice.PriorityHigh, got[0].Priority)
	assert.Equal(t, advice.SourceAI, got[0].Source)

	assert.Equal(t, 12.5, got[1].PotentialSavings)
	assert.Equal(t, advice.PriorityMedium, got[1].Priority)

	assert.Equal(t, advice.CategoryGeneral, got[2].Category)
	assert.Equal(t, 0.0, got[2].PotentialSavings)
}

func TestParseRecommendationsContract(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantLen int
	}{
		{"empty array accepted", `{"recommendations":[]}`, false, 0},
		{"missing field", `{"tips":[]}`, true, 0},
		{"not an array", `{"recommendations":{"title":"x"}}`, true, 0},
		{"null", `{"recommendations":null}`, true, 0},
		{"invalid json", `Sure! Here you go`, true, 0},
		{"entry without title", `{"recommendations":[{"description":"d"}]}`, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecommendations(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedOutput)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestParseLeadingFloat(t *testing.T) {
	cases := map[string]float64{
		"15-25":   15,
		" 20.5 ":  20.5,
		"$20":     0,
		"":        0,
		"-3 kg":   -3,
		".5":      0.5,
		"1e2 USD": 100,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLeadingFloat(in), in)
	}
}

func TestParseInsights(t *testing.T) {
	raw := `{"insights":[
		{"title":"Gas dominates","description":"Gas is 60%.","category":"gas","priority":"high","potentialSavings":"15kg CO2 per month"},
		{},
		{"title":"c","description":"c","category":"solar"},
		{"title":"d","description":"d","potentialSavings":12},
		{"title":"e","description":"e"}
	]}`
	got, err := ParseInsights(raw)
	require.NoError(t, err)
	require.Len(t, got, MaxInsights)

	assert.Equal(t, advice.CategoryGas, got[0].Category)
	require.NotNil(t, got[0].PotentialSavings)
	assert.Equal(t, "15kg CO2 per month", *got[0].PotentialSavings)

	assert.Equal(t, "Environmental Insight", got[1].Title)
	assert.Equal(t, "Analysis of your environmental impact.", got[1].Description)
	assert.Equal(t, advice.CategoryEnvironmental, got[1].Category)
	assert.Equal(t, advice.PriorityMedium, got[1].Priority)
	assert.Nil(t, got[1].PotentialSavings)

	assert.Equal(t, advice.CategoryEnvironmental, got[2].Category)
	require.NotNil(t, got[3].PotentialSavings)
	assert.Equal(t, "12", *got[3].PotentialSavings)
}

func TestParseInsightsDegrades(t *testing.T) {
	got, err := ParseInsights(`{"analysis":"none"}`)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseInsights(`[{"title":"x"}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestHeuristicIncrease(t *testing.T) {
	// five high recent readings, then a long flat history
	readings := append(steady(5, 200, 10, 50), steady(10, 100, 10, 50)...)
	got := Heuristic(readings)

	require.NotEmpty(t, got)
	first := got[0]
	assert.Equal(t, advice.CategoryElectricity, first.Category)
	assert.Equal(t, advice.PriorityHigh, first.Priority)
	// average 133.33, recent 200
	assert.Equal(t, "Electricity usage increased by 50.0%", first.Title)
	assert.Equal(t, 66.7, first.PotentialSavings)
	assert.Equal(t, advice.SourceHeuristic, first.Source)
}

func TestHeuristicPriorityByResource(t *testing.T) {
	tests := []struct {
		name     string
		recent   *consumption.Reading
		older    *consumption.Reading
		category string
		priority advice.Priority
	}{
		{"electricity", reading(300, 10, 10), reading(100, 10, 10), advice.CategoryElectricity, advice.PriorityHigh},
		{"water", reading(10, 30, 10), reading(10, 10, 10), advice.CategoryWater, advice.PriorityMedium},
		{"gas", reading(10, 10, 30), reading(10, 10, 10), advice.CategoryGas, advice.PriorityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings := []*consumption.Reading{tt.recent, tt.recent, tt.recent, tt.recent, tt.recent}
			for i := 0; i < 10; i++ {
				readings = append(readings, tt.older)
			}
			got := Heuristic(readings)
			var found bool
			for _, d := range got {
				if d.Category == tt.category && strings.Contains(d.Title, "increased") {
					found = true
					assert.Equal(t, tt.priority, d.Priority)
				}
			}
			assert.True(t, found)
		})
	}
}

func TestHeuristicPraise(t *testing.T) {
	readings := append(steady(5, 100, 10, 10), steady(10, 100, 10, 40)...)
	got := Heuristic(readings)
	require.NotEmpty(t, got)
	assert.Equal(t, "Great job on gas conservation! 🌱", got[0].Title)
	assert.Equal(t, advice.PriorityLow, got[0].Priority)
	assert.Equal(t, advice.CategoryGeneral, got[0].Category)
	// average 30, recent 10
	assert.Equal(t, "You've saved 20.0 units compared to your average. Keep up the excellent work!", got[0].Description)
}

func TestHeuristicCapsAtFive(t *testing.T) {
	// all three resources trigger, plus three tips
	readings := append(steady(5, 300, 30, 30), steady(20, 100, 10, 10)...)
	got := Heuristic(readings)
	assert.Len(t, got, MaxRecommendations)
	assert.Equal(t, "Peak hours optimization", got[3].Title)
	assert.Equal(t, "Smart home integration", got[4].Title)
}

func TestHeuristicWithoutReadingsGivesTips(t *testing.T) {
	got := Heuristic(nil)
	require.Len(t, got, 3)
	assert.Equal(t, "Water-efficient appliances", got[2].Title)
	assert.Equal(t, "30.00", got[2].SavingsText)
}

func TestHeuristicStableUsageOnlyTips(t *testing.T) {
	got := Heuristic(steady(12, 100, 10, 10))
	assert.Len(t, got, 3)
}

func TestHeuristicInspectsThirtyReadings(t *testing.T) {
	// readings beyond the window would drag the average up and hide the rise
	readings := append(steady(5, 200, 10, 10), steady(25, 100, 10, 10)...)
	readings = append(readings, steady(100, 10000, 10, 10)...)
	got := Heuristic(readings)
	assert.Contains(t, got[0].Title, "Electricity usage increased")
}
