package models

import (
	"strings"
	"time"
)

const (
	StatusNew       = "new"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// ValidStatus reports whether s is one of the four known ticket statuses.
// Callers are expected to lowercase input before checking.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusScheduled, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

type Ticket struct {
	ID         int64  `json:"id"`
	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`
	DonorPhone string `json:"donor_phone"`

	PickupAddress string `json:"pickup_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`

	Categories    []string `json:"categories"`
	Condition     string   `json:"condition"`
	ItemNotes     string   `json:"item_notes"`
	PreferredDate string   `json:"preferred_date"`
	PreferredTime string   `json:"preferred_time"`

	BagsCount      int  `json:"bags_count"`
	FurnitureCount int  `json:"furniture_count"`
	SmallDonation  bool `json:"small_donation"`

	CrewSize        int     `json:"crew_size"`
	EstimatedMiles  float64 `json:"estimated_miles"`
	DriveMinutes    float64 `json:"drive_minutes"`
	OnsiteMinutes   float64 `json:"onsite_minutes"`
	FuelCostPerMile float64 `json:"fuel_cost_per_mile"`
	EstimatedCost   float64 `json:"estimated_cost"`

	Images    []string  `json:"images"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Destination joins the pickup location fields into a single
// distance-lookup query string, skipping blanks.
func (t Ticket) Destination() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{t.PickupAddress, t.City, t.State, t.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type ScheduleEntry struct {
	ID       int64     `json:"id"`
	TicketID int64     `json:"ticket_id"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`

	// Joined from the ticket for calendar display, never stored.
	DonorName     string `json:"donor_name,omitempty"`
	PickupAddress string `json:"pickup_address,omitempty"`
}

type BlackoutDate struct {
	ID   int64  `json:"id"`
	Date string `json:"date"` // civil date in the operating zone, YYYY-MM-DD
}
