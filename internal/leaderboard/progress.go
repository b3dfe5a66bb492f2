package leaderboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
)

const (
	minProgressMonths = 2
	// progressEpsilon hides reductions too small to matter.
	progressEpsilon = 0.1
)

type ProgressEntry struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Role             user.Role `json:"role"`
	ReductionPercent float64   `json:"reductionPercent"`
	FirstMonthCO2    float64   `json:"firstMonthCO2"`
	LastMonthCO2     float64   `json:"lastMonthCO2"`
	MonthsTracked    int       `json:"monthsTracked"`
}

// MonthlyProgress compares each user's earliest and latest tracked month.
// Users need at least two distinct months; a positive ReductionPercent means
// emissions went down. Sorted by largest reduction first.
func MonthlyProgress(users []*user.User, readings []*consumption.Reading, f footprint.FactorSet) []ProgressEntry {
	byUser := groupByUser(readings)
	out := make([]ProgressEntry, 0)

	for _, u := range users {
		if u == nil {
			continue
		}
		months := map[string]float64{}
		for _, r := range byUser[u.ID] {
			key := fmt.Sprintf("%04d-%02d", r.Year, r.Month)
			months[key] += footprint.Kg(footprint.FromReading(r), f).Total()
		}
		if len(months) < minProgressMonths {
			continue
		}
		keys := make([]string, 0, len(months))
		for k := range months {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		first := months[keys[0]]
		last := months[keys[len(keys)-1]]
		var reduction float64
		if first != 0 {
			reduction = (first - last) / first * 100
		}
		if math.Abs(reduction) <= progressEpsilon {
			continue
		}
		out = append(out, ProgressEntry{
			ID:               u.ID,
			Name:             u.DisplayName(),
			Role:             u.Role,
			ReductionPercent: footprint.Round(reduction, 2),
			FirstMonthCO2:    footprint.Round(first, 2),
			LastMonthCO2:     footprint.Round(last, 2),
			MonthsTracked:    len(keys),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReductionPercent > out[j].ReductionPercent })
	return out
}
