package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/thrifthaul/backend/internal/notify"
	"github.com/thrifthaul/backend/internal/service"
	"github.com/thrifthaul/backend/internal/tz"
)

type bookRequest struct {
	StartISO      string  `json:"start_iso" validate:"required"`
	DurationHours float64 `json:"duration_hours"`
}

// @Summary Book a pickup slot for a ticket
// @Tags schedule
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/tickets/{id}/schedule [post]
func (h *Handler) ScheduleBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.DurationHours <= 0 {
		req.DurationHours = 1
	}

	start, err := tz.ParseISO(req.StartISO, h.Zone)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start_iso", req.StartISO)
		return
	}
	end := start.Add(time.Duration(req.DurationHours * float64(time.Hour)))

	t, err := h.Store.GetTicket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load ticket", err.Error())
		return
	}

	entryID, err := h.Scheduler.Book(c.Request.Context(), id, start, end)
	if err != nil {
		var be *service.BookingError
		if errors.As(err, &be) {
			writeError(c, http.StatusConflict, be.Code, be.Message, nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to book schedule", err.Error())
		return
	}

	if err := h.Notifier.Publish(c.Request.Context(), notify.Event{
		Type:      notify.EventTicketScheduled,
		TicketID:  id,
		DonorName: t.DonorName,
		Start:     &start,
		End:       &end,
	}); err != nil {
		h.Logger.Warn().Err(err).Int64("ticket_id", id).Msg("scheduled notification failed")
	}

	c.JSON(http.StatusOK, gin.H{"entry_id": entryID, "ticket_id": id, "status": "scheduled"})
}

type moveRequest struct {
	StartISO string `json:"start_iso" validate:"required"`
	EndISO   string `json:"end_iso" validate:"required"`
}

// ScheduleMove relocates or resizes an existing entry (calendar drag and
// drop). The entry is excluded from its own conflict check.
func (h *Handler) ScheduleMove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	start, err := tz.ParseISO(req.StartISO, h.Zone)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid start_iso", req.StartISO)
		return
	}
	end, err := tz.ParseISO(req.EndISO, h.Zone)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid end_iso", req.EndISO)
		return
	}
	if !end.After(start) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "End must be after start", nil)
		return
	}

	if err := h.Scheduler.Move(c.Request.Context(), id, start, end); err != nil {
		var be *service.BookingError
		if errors.As(err, &be) {
			writeError(c, http.StatusConflict, be.Code, be.Message, nil)
			return
		}
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Schedule entry not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to move schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ScheduleList returns booked entries start-ascending in the calendar
// event shape the admin UI consumes.
func (h *Handler) ScheduleList(c *gin.Context) {
	entries, err := h.Store.ListScheduled(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list schedule", err.Error())
		return
	}
	events := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		events = append(events, gin.H{
			"id":        e.ID,
			"ticket_id": e.TicketID,
			"title":     fmt.Sprintf("#%d - %s", e.TicketID, e.DonorName),
			"address":   e.PickupAddress,
			"start":     e.StartAt,
			"end":       e.EndAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": events})
}

type blackoutRequest struct {
	Date string `json:"date" validate:"required"`
}

func (h *Handler) BlackoutsList(c *gin.Context) {
	days, err := h.Store.ListBlackouts(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list blackouts", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": days})
}

// BlackoutAdd registers a fully-closed calendar day. Adding a date twice
// is a no-op, not an error.
func (h *Handler) BlackoutAdd(c *gin.Context) {
	var req blackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	date, err := tz.ParseCivilDate(req.Date)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be YYYY-MM-DD", req.Date)
		return
	}
	if err := h.Store.AddBlackout(c.Request.Context(), date); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to add blackout", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date})
}

func (h *Handler) BlackoutDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteBlackout(c.Request.Context(), id); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete blackout", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
