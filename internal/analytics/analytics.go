package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts week, month or year; anything else is month.
func ParsePeriod(raw string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodWeek, PeriodYear:
		return p
	}
	return PeriodMonth
}

// Window is the look-back range [start, now] the analytics view queries.
func Window(p Period, now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodYear:
		return now.AddDate(-1, 0, 0), now
	default:
		return now.AddDate(0, -1, 0), now
	}
}

const (
	ChartLine = "line"
	ChartBar  = "bar"

	SeriesCurrent  = "current"
	SeriesPrevious = "previous"
)

type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartSeries is chart-ready data. For a line chart Labels are YYYY-MM buckets
// and there is one series per resource; for a bar chart Labels are the
// resources and the series are the current and previous period.
type ChartSeries struct {
	Kind   string   `json:"kind"`
	Period Period   `json:"period"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// GroupForChart reshapes readings for charting. ok is false when there are no
// readings, which callers must report as "no data" rather than zero usage.
func GroupForChart(readings []*consumption.Reading, p Period) (ChartSeries, bool) {
	rs := compact(readings)
	if len(rs) == 0 {
		return ChartSeries{}, false
	}
	if p == PeriodYear {
		return byMonth(rs), true
	}
	return currentVsPrevious(rs, p), true
}

func byMonth(rs []*consumption.Reading) ChartSeries {
	buckets := map[string][3]float64{}
	for _, r := range rs {
		key := fmt.Sprintf("%04d-%02d", r.Year, r.Month)
		b := buckets[key]
		for i, res := range consumption.Resources {
			b[i] += r.Amount(res)
		}
		buckets[key] = b
	}
	labels := make([]string, 0, len(buckets))
	for k := range buckets {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	series := make([]Series, len(consumption.Resources))
	for i, res := range consumption.Resources {
		data := make([]float64, len(labels))
		for j, l := range labels {
			data[j] = buckets[l][i]
		}
		series[i] = Series{Name: string(res), Data: data}
	}
	return ChartSeries{Kind: ChartLine, Period: PeriodYear, Labels: labels, Series: series}
}

func currentVsPrevious(rs []*consumption.Reading, p Period) ChartSeries {
	sorted := append([]*consumption.Reading(nil), rs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	labels := make([]string, len(consumption.Resources))
	for i, res := range consumption.Resources {
		labels[i] = string(res)
	}
	cur := amounts(sorted[0])
	prev := make([]float64, len(consumption.Resources))
	if len(sorted) > 1 {
		prev = amounts(sorted[1])
	}
	return ChartSeries{
		Kind:   ChartBar,
		Period: p,
		Labels: labels,
		Series: []Series{
			{Name: SeriesCurrent, Data: cur},
			{Name: SeriesPrevious, Data: prev},
		},
	}
}

func amounts(r *consumption.Reading) []float64 {
	out := make([]float64, len(consumption.Resources))
	for i, res := range consumption.Resources {
		out[i] = r.Amount(res)
	}
	return out
}

func compact(readings []*consumption.Reading) []*consumption.Reading {
	out := make([]*consumption.Reading, 0, len(readings))
	for _, r := range readings {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
