package footprint

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EPA greenhouse-gas equivalency factors, kg CO2e per unit.
const (
	KgPerMileDriven        = 0.192
	KgPerSmartphoneCharge  = 0.00822
	KgPerTreeSeedling10Yrs = 60.0

	// MinEquivalencyKg suppresses equivalencies for negligible footprints.
	MinEquivalencyKg = 1.0
)

var printer = message.NewPrinter(language.English)

type Equivalency struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Equivalencies translates kg CO2e into everyday comparisons. Below
// MinEquivalencyKg, or for non-finite input, it returns nil.
func Equivalencies(kg float64) []Equivalency {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinEquivalencyKg {
		return nil
	}
	miles := kg / KgPerMileDriven
	phones := kg / KgPerSmartphoneCharge
	trees := kg / KgPerTreeSeedling10Yrs
	return []Equivalency{
		{Label: "miles driven", Value: miles, Text: "~" + formatCount(miles) + " miles driven"},
		{Label: "smartphones charged", Value: phones, Text: "~" + formatCount(phones) + " smartphones charged"},
		{Label: "tree seedlings grown for 10 years", Value: trees, Text: "~" + formatTenths(trees) + " tree seedlings grown for 10 years"},
	}
}

// Summary renders the first two equivalencies as one sentence, or "".
func Summary(kg float64) string {
	eq := Equivalencies(kg)
	if len(eq) < 2 {
		return ""
	}
	return fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		formatCount(eq[0].Value), formatCount(eq[1].Value))
}

func formatCount(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

func formatTenths(v float64) string {
	return printer.Sprintf("%.1f", v)
}
