package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thrifthaul/backend/internal/models"
)

var exportHeaders = []string{
	"id", "created_at", "status",
	"donor_name", "donor_email", "donor_phone",
	"pickup_address", "city", "state", "zip",
	"categories", "condition", "item_notes",
	"preferred_date", "preferred_time",
	"bags_count", "furniture_count", "small_donation",
	"crew_size", "estimated_miles", "drive_minutes", "onsite_minutes",
	"fuel_cost_per_mile", "estimated_cost",
}

// ExportCSV streams every ticket as CSV for offline reporting.
func (h *Handler) ExportCSV(c *gin.Context) {
	tickets, err := h.Store.ListTickets(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list tickets", err.Error())
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="tickets.csv"`)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(exportHeaders); err != nil {
		return
	}
	for _, t := range tickets {
		if err := w.Write(exportRow(t)); err != nil {
			return
		}
	}
	w.Flush()
}

func exportRow(t models.Ticket) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.CreatedAt.Format(time.RFC3339),
		t.Status,
		t.DonorName, t.DonorEmail, t.DonorPhone,
		t.PickupAddress, t.City, t.State, t.Zip,
		strings.Join(t.Categories, "|"),
		t.Condition, t.ItemNotes,
		t.PreferredDate, t.PreferredTime,
		strconv.Itoa(t.BagsCount),
		strconv.Itoa(t.FurnitureCount),
		strconv.FormatBool(t.SmallDonation),
		strconv.Itoa(t.CrewSize),
		formatFloat(t.EstimatedMiles),
		formatFloat(t.DriveMinutes),
		formatFloat(t.OnsiteMinutes),
		formatFloat(t.FuelCostPerMile),
		formatFloat(t.EstimatedCost),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
