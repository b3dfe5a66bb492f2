package leaderboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
	"github.com/yungbote/ecotrack-backend/internal/footprint"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
)

func newUser(first, region string) *user.User {
	u := &user.User{ID: uuid.New(), FirstName: first, Role: user.RoleIndividual}
	if region != "" {
		u.Region = &region
	}
	return u
}

func newReading(u *user.User, year, month int, e, g, w float64) *consumption.Reading {
	return &consumption.Reading{
		ID:          uuid.New(),
		UserID:      u.ID,
		Year:        year,
		Month:       month,
		Electricity: decimal.NewFromFloat(e),
		Gas:         decimal.NewFromFloat(g),
		Water:       decimal.NewFromFloat(w),
	}
}

func TestRankUsersAscendingAndExcludesZero(t *testing.T) {
	a := newUser("Ann", "almaty")
	b := newUser("Bob", "almaty")
	c := newUser("Cy", "astana")
	readings := []*consumption.Reading{
		newReading(a, 2024, 1, 300, 100, 20), // 350
		newReading(b, 2024, 1, 100, 0, 500),  // 50, water ignored
		newReading(c, 2024, 1, 0, 0, 40),     // 0
	}

	got := RankUsers([]*user.User{a, b, c}, readings, footprint.Primary())
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].Name)
	assert.Equal(t, 50.0, got[0].TotalCO2)
	assert.Equal(t, "Ann", got[1].Name)
	assert.Equal(t, 350.0, got[1].TotalCO2)
	assert.Equal(t, 1, got[1].ReadingsCount)
}

func TestRankUsersKeepsTinyPositiveFootprint(t *testing.T) {
	a := newUser("Tiny", "")
	// 0.008 kWh * 0.5 = 0.004 kg, which displays as 0.
	got := RankUsers([]*user.User{a}, []*consumption.Reading{newReading(a, 2024, 1, 0.008, 0, 0)}, footprint.Primary())
	require.Len(t, got, 1)
	assert.Equal(t, "Tiny", got[0].Name)
	assert.Equal(t, 0.0, got[0].TotalCO2)
}

func TestRankUsersStableTies(t *testing.T) {
	a := newUser("A", "")
	b := newUser("B", "")
	readings := []*consumption.Reading{
		newReading(b, 2024, 1, 100, 0, 0),
		newReading(a, 2024, 1, 100, 0, 0),
	}
	got := RankUsers([]*user.User{a, b}, readings, footprint.Primary())
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestRankUsersEmpty(t *testing.T) {
	got := RankUsers(nil, nil, footprint.Primary())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankRegionsIncludesZeroEmissionUsers(t *testing.T) {
	a := newUser("A", "almaty")
	b := newUser("B", "astana")
	// A: 100 kWh -> 50 kg. B has no readings in the window.
	readings := []*consumption.Reading{newReading(a, 2024, 3, 100, 0, 0)}

	got := RankRegions([]*user.User{a, b}, readings, footprint.Primary())
	require.Len(t, got, 2)

	assert.Equal(t, RegionEntry{Region: "astana", TotalCO2: 0, AverageCO2: 0, UserCount: 1, UsersWithData: 0}, got[0])
	assert.Equal(t, RegionEntry{Region: "almaty", TotalCO2: 50, AverageCO2: 50, UserCount: 1, UsersWithData: 1}, got[1])
}

func TestRankRegionsAverageUsesUsersWithData(t *testing.T) {
	a := newUser("A", "Almaty")
	b := newUser("B", "almaty ")
	c := newUser("C", "almaty")
	noRegion := newUser("D", "")
	readings := []*consumption.Reading{
		newReading(a, 2024, 3, 100, 0, 0), // 50
		newReading(b, 2024, 3, 0, 25, 0),  // 50
		newReading(noRegion, 2024, 3, 1000, 0, 0),
	}

	got := RankRegions([]*user.User{a, b, c, noRegion}, readings, footprint.Primary())
	require.Len(t, got, 1)
	assert.Equal(t, "almaty", got[0].Region)
	assert.Equal(t, 3, got[0].UserCount)
	assert.Equal(t, 2, got[0].UsersWithData)
	assert.Equal(t, 100.0, got[0].TotalCO2)
	assert.Equal(t, 50.0, got[0].AverageCO2)
}

func TestMonthWindow(t *testing.T) {
	start, end, err := MonthWindow(2024, time.December)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = MonthWindow(2024, 13)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
}

func TestMonthlyProgress(t *testing.T) {
	improver := newUser("Imp", "")
	worse := newUser("Wor", "")
	flat := newUser("Flat", "")
	single := newUser("One", "")
	readings := []*consumption.Reading{
		newReading(improver, 2024, 1, 200, 0, 0), // 100
		newReading(improver, 2024, 2, 150, 0, 0),
		newReading(improver, 2023, 12, 400, 0, 0), // earliest: 200
		newReading(worse, 2024, 1, 100, 0, 0),     // 50
		newReading(worse, 2024, 3, 120, 0, 0),     // 60
		newReading(flat, 2024, 1, 100, 0, 0),
		newReading(flat, 2024, 2, 100, 0, 0),
		newReading(single, 2024, 1, 100, 0, 0),
	}

	got := MonthlyProgress([]*user.User{worse, flat, single, improver}, readings, footprint.Primary())
	require.Len(t, got, 2)

	assert.Equal(t, "Imp", got[0].Name)
	assert.Equal(t, 3, got[0].MonthsTracked)
	assert.Equal(t, 200.0, got[0].FirstMonthCO2)
	assert.Equal(t, 75.0, got[0].LastMonthCO2)
	assert.Equal(t, 62.5, got[0].ReductionPercent)

	assert.Equal(t, "Wor", got[1].Name)
	assert.Equal(t, -20.0, got[1].ReductionPercent)
}
