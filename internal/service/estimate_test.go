package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCostFormula(t *testing.T) {
	cases := []struct {
		name                  string
		drive, onsite, hourly float64
		crew                  int
		fuelPerMile, miles    float64
		labor, fuel, total    float64
	}{
		{"typical trip", 90, 30, 10, 2, 0.2, 24, 40, 4.8, 44.8},
		{"single crew no fuel", 50, 0, 10, 1, 0, 0, 8.333333333333334, 0, 8.33},
		{"fuel only", 0, 0, 10, 2, 0.2, 30, 0, 6, 6},
		{"all zero", 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateCost(tc.drive, tc.onsite, tc.hourly, tc.crew, tc.fuelPerMile, tc.miles)
			assert.InDelta(t, tc.labor, got.LaborCost, 1e-9)
			assert.InDelta(t, tc.fuel, got.FuelCost, 1e-9)
			assert.Equal(t, tc.total, got.Total)
		})
	}
}

func TestEstimateCostCoercesNegatives(t *testing.T) {
	got := EstimateCost(-10, -5, -1, -3, -0.5, -100)
	assert.Equal(t, CostBreakdown{}, got)
}

func TestEstimateCostRoundsHalfAwayFromZero(t *testing.T) {
	// fuel alone: 1 mile at 0.125/mile
	got := EstimateCost(0, 0, 0, 1, 0.125, 1)
	assert.Equal(t, 0.13, got.Total)
}
