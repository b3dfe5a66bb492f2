package weather

import (
	"sort"
	"strings"
)

type region struct {
	Name  string
	Query string
}

// regions maps a profile region key to the OpenWeather city query.
var regions = map[string]region{
	"almaty":          {Name: "Almaty", Query: "Almaty,KZ"},
	"astana":          {Name: "Astana", Query: "Nur-Sultan,KZ"},
	"shymkent":        {Name: "Shymkent", Query: "Shymkent,KZ"},
	"aktobe":          {Name: "Aktobe", Query: "Aktobe,KZ"},
	"taraz":           {Name: "Taraz", Query: "Taraz,KZ"},
	"pavlodar":        {Name: "Pavlodar", Query: "Pavlodar,KZ"},
	"ust-kamenogorsk": {Name: "Ust-Kamenogorsk", Query: "Ust-Kamenogorsk,KZ"},
	"semey":           {Name: "Semey", Query: "Semey,KZ"},
}

// Regions returns the known region keys.
func Regions() []string {
	out := make([]string, 0, len(regions))
	for k := range regions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeRegion(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// DisplayName is the human name of a region key, or the raw key when unknown.
func DisplayName(raw string) string {
	if r, ok := regions[normalizeRegion(raw)]; ok {
		return r.Name
	}
	return strings.TrimSpace(raw)
}

// fallbackReports holds typical July conditions per region, served when the
// live API is unconfigured or failing.
var fallbackReports = map[string]Report{
	"almaty": {
		Temperature: 28, Description: "Sunny", Humidity: 45, WindSpeed: 2.1,
		Impact: "Hot weather increases electricity consumption for air conditioning by 20%. Use energy-saving modes.",
	},
	"astana": {
		Temperature: 25, Description: "Clear", Humidity: 52, WindSpeed: 3.2,
		Impact: "Comfortable summer temperature. Energy consumption is normal. Ventilation recommended during cool hours.",
	},
	"shymkent": {
		Temperature: 32, Description: "Hot", Humidity: 38, WindSpeed: 1.8,
		Impact: "Very hot weather. Electricity consumption for cooling increased by 35%. Avoid peak hours.",
	},
	"aktobe": {
		Temperature: 26, Description: "Clear", Humidity: 48, WindSpeed: 3.5,
		Impact: "Warm summer weather. Moderate energy consumption for cooling. Ventilation recommended.",
	},
	"taraz": {
		Temperature: 30, Description: "Sunny", Humidity: 42, WindSpeed: 2.8,
		Impact: "Hot weather increases electricity consumption for air conditioning by 25%.",
	},
	"pavlodar": {
		Temperature: 24, Description: "Partly cloudy", Humidity: 55, WindSpeed: 3.2,
		Impact: "Comfortable summer temperature. Energy consumption is normal.",
	},
	"ust-kamenogorsk": {
		Temperature: 22, Description: "Cloudy", Humidity: 62, WindSpeed: 1.5,
		Impact: "Cool summer weather. Minimal energy consumption for cooling.",
	},
	"semey": {
		Temperature: 27, Description: "Sunny", Humidity: 46, WindSpeed: 2.8,
		Impact: "Warm sunny weather. Moderate electricity consumption for cooling.",
	},
}

var defaultFallback = Report{
	Temperature: 25, Description: "Sunny", Humidity: 50, WindSpeed: 3.0,
	Impact: "Comfortable summer weather. Energy consumption is normal.",
}

// Fallback returns the static report for a region.
func Fallback(raw string) *Report {
	key := normalizeRegion(raw)
	r, ok := fallbackReports[key]
	if !ok {
		r = defaultFallback
	}
	r.Region = key
	r.Location = DisplayName(raw)
	r.Source = SourceFallback
	return &r
}

// Impact describes the expected effect of a temperature on household demand.
func Impact(tempC float64) string {
	switch {
	case tempC < 0:
		return "Very cold weather increases heating costs by 20-30%. Consider additional insulation."
	case tempC < 10:
		return "Cold weather increases heating demand. Expected 15% increase in energy usage."
	case tempC > 30:
		return "Hot weather increases cooling costs. Consider using fans and closing blinds during peak hours."
	case tempC > 25:
		return "Warm weather may increase cooling usage. Monitor air conditioning usage."
	default:
		return "Moderate weather conditions. Good opportunity to reduce heating/cooling costs."
	}
}
