package footprint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
)

// Consumption is a quantity per utility. Zero means missing.
type Consumption struct {
	Electricity float64 `json:"electricity"`
	Gas         float64 `json:"gas"`
	Water       float64 `json:"water"`
}

func (c Consumption) Add(o Consumption) Consumption {
	return Consumption{
		Electricity: c.Electricity + o.Electricity,
		Gas:         c.Gas + o.Gas,
		Water:       c.Water + o.Water,
	}
}

type Breakdown struct {
	Electricity float64 `json:"electricity"`
	Gas         float64 `json:"gas"`
	Water       float64 `json:"water"`
}

func (b Breakdown) Total() float64 { return b.Electricity + b.Gas + b.Water }

// Result is a footprint in tonnes CO2e, every figure rounded to 3 decimals.
type Result struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	FactorSet string    `json:"factor_set"`
}

// Kg converts quantities to kg CO2e without rounding. Water contributes only
// when the set includes it. Negative quantities pass through unchanged.
func Kg(c Consumption, f FactorSet) Breakdown {
	b := Breakdown{
		Electricity: c.Electricity * f.Electricity,
		Gas:         c.Gas * f.Gas,
	}
	if f.IncludeWater {
		b.Water = c.Water * f.Water
	}
	return b
}

// ComputeFootprint reports the footprint of c in tonnes.
func ComputeFootprint(c Consumption, f FactorSet) Result {
	kg := Kg(c, f)
	return Result{
		Total: kgToTonnes(kg.Total()),
		Breakdown: Breakdown{
			Electricity: kgToTonnes(kg.Electricity),
			Gas:         kgToTonnes(kg.Gas),
			Water:       kgToTonnes(kg.Water),
		},
		FactorSet: f.Name,
	}
}

// kgToTonnes rounds at the kilogram so the tonne figure carries exactly 3 decimals.
func kgToTonnes(kg float64) float64 {
	return math.Round(kg) / 1000
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ParseQuantity validates a raw quantity at the input boundary. Blank input
// is 0; anything non-numeric is rejected with ErrInvalidArgument.
func ParseQuantity(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("quantity %q is not a number: %w", raw, pkgerrors.ErrInvalidArgument)
	}
	return v, nil
}
