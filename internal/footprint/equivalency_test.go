package footprint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalencies(t *testing.T) {
	eq := Equivalencies(1920)
	require.Len(t, eq, 3)
	assert.Equal(t, "~10,000 miles driven", eq[0].Text)
	assert.InDelta(t, 1920/KgPerSmartphoneCharge, eq[1].Value, 1e-6)
	assert.Equal(t, "~32.0 tree seedlings grown for 10 years", eq[2].Text)
}

func TestEquivalenciesBelowThreshold(t *testing.T) {
	assert.Nil(t, Equivalencies(0.5))
	assert.Nil(t, Equivalencies(math.NaN()))
	assert.Equal(t, "", Summary(0))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Equivalent to driving ~1,000 miles or charging ~23,358 smartphones", Summary(192))
}
