package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *user.User {
	tb.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedReading stores a monthly reading dated on the first of the month.
func SeedReading(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, year, month int, electricity, water, gas float64) *consumption.Reading {
	tb.Helper()
	r := &consumption.Reading{
		ID:          uuid.New(),
		UserID:      userID,
		Electricity: decimal.NewFromFloat(electricity),
		Water:       decimal.NewFromFloat(water),
		Gas:         decimal.NewFromFloat(gas),
		Month:       month,
		Year:        year,
		ReadingDate: time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed reading: %v", err)
	}
	return r
}

func PtrInt(v int) *int { return &v }

func PtrString(v string) *string { return &v }
