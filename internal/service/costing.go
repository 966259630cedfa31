package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/thrifthaul/backend/internal/distance"
	"github.com/thrifthaul/backend/internal/models"
	"github.com/thrifthaul/backend/internal/utils"
)

// TicketStore is the slice of the persistence layer the costing flow needs.
type TicketStore interface {
	GetTicket(ctx context.Context, id int64) (models.Ticket, error)
	UpdateTicketMiles(ctx context.Context, id int64, miles float64) error
	UpdateCrewSize(ctx context.Context, id int64, crew int) error
	UpdateTimesAndCost(ctx context.Context, id int64, driveMinutes, onsiteMinutes, fuelPerMile, total float64) error
}

// CostService refreshes trip figures from the distance collaborator and
// recomputes estimates. A failed lookup is logged and leaves the prior
// stored figures in place; the surrounding operation still succeeds.
type CostService struct {
	Store      TicketStore
	Distance   distance.Lookup
	Origin     string
	HourlyRate float64
	Logger     zerolog.Logger
}

// Recalculate pulls one-way distance and travel time from the collaborator,
// doubles both for the round trip, re-suggests the crew size from the
// ticket's item fields and recomputes the estimate.
func (s *CostService) Recalculate(ctx context.Context, id int64) (models.Ticket, CostBreakdown, error) {
	t, err := s.Store.GetTicket(ctx, id)
	if err != nil {
		return models.Ticket{}, CostBreakdown{}, err
	}

	res, err := s.Distance.Distance(ctx, s.Origin, t.Destination())
	if err != nil {
		s.Logger.Warn().Err(err).Int64("ticket_id", id).Msg("distance lookup failed, keeping stored figures")
	} else {
		t.EstimatedMiles = utils.Round1(res.Miles * 2)
		t.DriveMinutes = utils.Round1(res.Minutes * 2)
		if err := s.Store.UpdateTicketMiles(ctx, id, t.EstimatedMiles); err != nil {
			return models.Ticket{}, CostBreakdown{}, err
		}
	}

	t.CrewSize = SuggestCrewSize(t.BagsCount, t.FurnitureCount, t.SmallDonation)
	if err := s.Store.UpdateCrewSize(ctx, id, t.CrewSize); err != nil {
		return models.Ticket{}, CostBreakdown{}, err
	}

	breakdown := EstimateCost(t.DriveMinutes, t.OnsiteMinutes, s.HourlyRate, t.CrewSize, t.FuelCostPerMile, t.EstimatedMiles)
	t.EstimatedCost = breakdown.Total
	if err := s.Store.UpdateTimesAndCost(ctx, id, t.DriveMinutes, t.OnsiteMinutes, t.FuelCostPerMile, breakdown.Total); err != nil {
		return models.Ticket{}, CostBreakdown{}, err
	}
	return t, breakdown, nil
}

// SetTimes persists staff-entered drive/onsite minutes, crew size and fuel
// rate, then recomputes the estimate against the stored mileage. Zero or
// negative crew and fuel inputs fall back to the ticket's current values.
func (s *CostService) SetTimes(ctx context.Context, id int64, driveMinutes, onsiteMinutes float64, crew int, fuelPerMile float64) (CostBreakdown, error) {
	t, err := s.Store.GetTicket(ctx, id)
	if err != nil {
		return CostBreakdown{}, err
	}

	driveMinutes = nonNegative(driveMinutes)
	onsiteMinutes = nonNegative(onsiteMinutes)
	if crew < 1 {
		crew = t.CrewSize
	}
	if crew < 1 {
		crew = 1
	}
	if fuelPerMile <= 0 {
		fuelPerMile = t.FuelCostPerMile
	}

	if err := s.Store.UpdateCrewSize(ctx, id, crew); err != nil {
		return CostBreakdown{}, err
	}
	breakdown := EstimateCost(driveMinutes, onsiteMinutes, s.HourlyRate, crew, fuelPerMile, t.EstimatedMiles)
	if err := s.Store.UpdateTimesAndCost(ctx, id, driveMinutes, onsiteMinutes, fuelPerMile, breakdown.Total); err != nil {
		return CostBreakdown{}, err
	}
	return breakdown, nil
}
