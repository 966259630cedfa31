package service

import "github.com/thrifthaul/backend/internal/utils"

type CostBreakdown struct {
	LaborCost float64 `json:"labor_cost"`
	FuelCost  float64 `json:"fuel_cost"`
	Total     float64 `json:"total"`
}

// EstimateCost turns round-trip drive time, onsite time, crew size and
// round-trip mileage into a money estimate. It is total over its inputs:
// negative values are coerced to zero, never rejected.
func EstimateCost(driveMinutes, onsiteMinutes, hourlyRate float64, crewSize int, fuelPerMile, miles float64) CostBreakdown {
	driveMinutes = nonNegative(driveMinutes)
	onsiteMinutes = nonNegative(onsiteMinutes)
	hourlyRate = nonNegative(hourlyRate)
	fuelPerMile = nonNegative(fuelPerMile)
	miles = nonNegative(miles)
	if crewSize < 0 {
		crewSize = 0
	}

	labor := ((driveMinutes + onsiteMinutes) / 60.0) * hourlyRate * float64(crewSize)
	fuel := miles * fuelPerMile
	return CostBreakdown{
		LaborCost: labor,
		FuelCost:  fuel,
		Total:     utils.Round2(labor + fuel),
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
