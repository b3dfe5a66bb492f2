package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
)

// UserEntry is one row of the user ranking. CO2 figures are kg.
type UserEntry struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Role          user.Role `json:"role"`
	Region        string    `json:"region,omitempty"`
	TotalCO2      float64   `json:"totalCO2"`
	ReadingsCount int       `json:"readingsCount"`
}

type RegionEntry struct {
	Region        string  `json:"region"`
	TotalCO2      float64 `json:"totalCO2"`
	AverageCO2    float64 `json:"averageCO2"`
	UserCount     int     `json:"userCount"`
	UsersWithData int     `json:"usersWithData"`
}

// MonthWindow is the half-open UTC range [first day of month, first day of next month).
func MonthWindow(year int, month time.Month) (time.Time, time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, fmt.Errorf("month %d out of range: %w", month, pkgerrors.ErrInvalidArgument)
	}
	if year < 1970 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("year %d out of range: %w", year, pkgerrors.ErrInvalidArgument)
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

func groupByUser(readings []*consumption.Reading) map[uuid.UUID][]*consumption.Reading {
	out := make(map[uuid.UUID][]*consumption.Reading)
	for _, r := range readings {
		if r != nil {
			out[r.UserID] = append(out[r.UserID], r)
		}
	}
	return out
}

func userKg(readings []*consumption.Reading, f footprint.FactorSet) float64 {
	return footprint.Kg(footprint.Sum(readings), f).Total()
}

// RankUsers ranks users by the footprint of the given readings, lowest first.
// Users with no positive footprint are left out. Ties keep the order of users.
func RankUsers(users []*user.User, readings []*consumption.Reading, f footprint.FactorSet) []UserEntry {
	byUser := groupByUser(readings)
	out := make([]UserEntry, 0, len(users))
	for _, u := range users {
		if u == nil {
			continue
		}
		rs := byUser[u.ID]
		kg := userKg(rs, f)
		if kg <= 0 {
			continue
		}
		out = append(out, UserEntry{
			ID:            u.ID,
			Name:          u.DisplayName(),
			Role:          u.Role,
			Region:        u.RegionKey(),
			TotalCO2:      footprint.Round(kg, 2),
			ReadingsCount: len(rs),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCO2 < out[j].TotalCO2 })
	return out
}

// RankRegions totals footprints per region, lowest total first. Every user
// with a region counts toward UserCount; only users with at least one reading
// count toward UsersWithData, which is the divisor of AverageCO2.
func RankRegions(users []*user.User, readings []*consumption.Reading, f footprint.FactorSet) []RegionEntry {
	byUser := groupByUser(readings)
	index := map[string]int{}
	var acc []RegionEntry

	for _, u := range users {
		if u == nil {
			continue
		}
		key := u.RegionKey()
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(acc)
			index[key] = i
			acc = append(acc, RegionEntry{Region: key})
		}
		rs := byUser[u.ID]
		acc[i].TotalCO2 += userKg(rs, f)
		acc[i].UserCount++
		if len(rs) > 0 {
			acc[i].UsersWithData++
		}
	}

	for i := range acc {
		if acc[i].UsersWithData > 0 {
			acc[i].AverageCO2 = footprint.Round(acc[i].TotalCO2/float64(acc[i].UsersWithData), 2)
		}
		acc[i].TotalCO2 = footprint.Round(acc[i].TotalCO2, 2)
	}
	sort.SliceStable(acc, func(i, j int) bool { return acc[i].TotalCO2 < acc[j].TotalCO2 })
	if acc == nil {
		return []RegionEntry{}
	}
	return acc
}
