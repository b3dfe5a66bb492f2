package consumption

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNaturalKey(t *testing.T) {
	week := 2
	tests := []struct {
		name  string
		year  int
		month int
		week  *int
		want  string
	}{
		{"monthly", 2024, 1, nil, "2024-01"},
		{"weekly", 2024, 11, &week, "2024-11-w2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NaturalKey(tt.year, tt.month, tt.week); got != tt.want {
				t.Fatalf("NaturalKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadingAmount(t *testing.T) {
	r := Reading{
		Electricity: decimal.RequireFromString("300.50"),
		Water:       decimal.RequireFromString("20"),
		Gas:         decimal.RequireFromString("100.25"),
	}
	if got := r.Amount(Electricity); got != 300.5 {
		t.Fatalf("electricity = %v", got)
	}
	if got := r.Amount(Gas); got != 100.25 {
		t.Fatalf("gas = %v", got)
	}
	if got := r.Amount(Resource("steam")); got != 0 {
		t.Fatalf("unknown resource = %v", got)
	}
}

func TestParseResource(t *testing.T) {
	if r, err := ParseResource(" Gas "); err != nil || r != Gas {
		t.Fatalf("ParseResource: %v %v", r, err)
	}
	if _, err := ParseResource("steam"); err == nil {
		t.Fatalf("expected error for unknown resource")
	}
}
