package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/thrifthaul/backend/internal/db"
	"github.com/thrifthaul/backend/internal/models"
	"github.com/thrifthaul/backend/internal/notify"
	"github.com/thrifthaul/backend/internal/service"
)

const maxTicketImages = 10

type Handler struct {
	Store           *db.Store
	Scheduler       *service.Scheduler
	Costing         *service.CostService
	Notifier        notify.Notifier
	Validator       *validator.Validate
	Logger          zerolog.Logger
	Zone            *time.Location
	UploadDir       string
	FuelCostPerMile float64
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type intakeForm struct {
	DonorName     string   `form:"donor_name" validate:"required"`
	DonorEmail    string   `form:"donor_email" validate:"required,email"`
	DonorPhone    string   `form:"donor_phone" validate:"required"`
	PickupAddress string   `form:"pickup_address" validate:"required"`
	City          string   `form:"city" validate:"required"`
	State         string   `form:"state" validate:"required"`
	Zip           string   `form:"zip" validate:"required"`
	Categories    []string `form:"categories" validate:"required,min=1"`
	Condition     string   `form:"condition"`
	ItemNotes     string   `form:"item_notes" validate:"required"`
	PreferredDate string   `form:"preferred_date" validate:"required"`
	PreferredTime string   `form:"preferred_time" validate:"required"`

	// Count and checkbox fields arrive as free text from donor forms;
	// unparsable values coerce to their defaults instead of rejecting.
	BagsCount      string `form:"bags_count"`
	FurnitureCount string `form:"furniture_count"`
	SmallDonation  string `form:"small_donation"`
}

// @Summary Create pickup ticket
// @Tags tickets
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/tickets [post]
func (h *Handler) TicketCreate(c *gin.Context) {
	var form intakeForm
	if err := c.ShouldBind(&form); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid form payload", err.Error())
		return
	}
	if err := h.Validator.Struct(form); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	images, err := h.saveImages(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "UPLOAD_ERROR", "Failed to store images", err.Error())
		return
	}

	t := models.Ticket{
		DonorName:       form.DonorName,
		DonorEmail:      form.DonorEmail,
		DonorPhone:      form.DonorPhone,
		PickupAddress:   form.PickupAddress,
		City:            form.City,
		State:           form.State,
		Zip:             form.Zip,
		Categories:      form.Categories,
		Condition:       form.Condition,
		ItemNotes:       form.ItemNotes,
		PreferredDate:   form.PreferredDate,
		PreferredTime:   form.PreferredTime,
		BagsCount:       atoiOrZero(form.BagsCount),
		FurnitureCount:  atoiOrZero(form.FurnitureCount),
		SmallDonation:   parseCheckbox(form.SmallDonation),
		CrewSize:        1,
		FuelCostPerMile: h.FuelCostPerMile,
		Images:          images,
		Status:          models.StatusNew,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := h.Store.InsertTicket(c.Request.Context(), t)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create ticket", err.Error())
		return
	}

	if err := h.Notifier.Publish(c.Request.Context(), notify.Event{
		Type:      notify.EventTicketCreated,
		TicketID:  id,
		DonorName: t.DonorName,
	}); err != nil {
		h.Logger.Warn().Err(err).Int64("ticket_id", id).Msg("created notification failed")
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) saveImages(c *gin.Context) ([]string, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		// Intake without images is a plain form post.
		return []string{}, nil
	}
	files := mf.File["item_images"]
	if len(files) > maxTicketImages {
		files = files[:maxTicketImages]
	}
	if len(files) > 0 {
		if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(f.Filename))
		if err := c.SaveUploadedFile(f, filepath.Join(h.UploadDir, name)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (h *Handler) TicketsList(c *gin.Context) {
	items, err := h.Store.ListTickets(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list tickets", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) TicketDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.Store.GetTicket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get ticket", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": t})
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TicketStatus is the manual lifecycle override: staff may set any of the
// four known statuses regardless of the current one.
func (h *Handler) TicketStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !models.ValidStatus(status) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status", status)
		return
	}
	if err := h.Store.UpdateTicketStatus(c.Request.Context(), id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

type timeCostRequest struct {
	DriveMinutes    float64 `json:"drive_minutes"`
	OnsiteMinutes   float64 `json:"onsite_minutes"`
	CrewSize        int     `json:"crew_size"`
	FuelCostPerMile float64 `json:"fuel_cost_per_mile"`
}

func (h *Handler) TicketTimeCost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req timeCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	breakdown, err := h.Costing.SetTimes(c.Request.Context(), id, req.DriveMinutes, req.OnsiteMinutes, req.CrewSize, req.FuelCostPerMile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update time and cost", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "estimate": breakdown})
}

// TicketRecalc refreshes mileage and drive time from the distance
// collaborator and re-runs crew sizing and the cost estimate. A failed
// lookup keeps the stored figures and the recalc still succeeds.
func (h *Handler) TicketRecalc(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, breakdown, err := h.Costing.Recalculate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to recalculate", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": t, "estimate": breakdown})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid id", c.Param("id"))
		return 0, false
	}
	return id, true
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
