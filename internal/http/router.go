package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/thrifthaul/backend/internal/config"
	"github.com/thrifthaul/backend/internal/db"
	"github.com/thrifthaul/backend/internal/http/handlers"
	"github.com/thrifthaul/backend/internal/http/middleware"
	"github.com/thrifthaul/backend/internal/notify"
	"github.com/thrifthaul/backend/internal/service"

	_ "github.com/thrifthaul/backend/docs"
)

func Router(cfg config.Config, store *db.Store, scheduler *service.Scheduler, costing *service.CostService, notifier notify.Notifier, zone *time.Location, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:           store,
		Scheduler:       scheduler,
		Costing:         costing,
		Notifier:        notifier,
		Validator:       validator.New(),
		Logger:          logger,
		Zone:            zone,
		UploadDir:       cfg.UploadDir,
		FuelCostPerMile: cfg.FuelCostPerMile,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/tickets", h.TicketCreate)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/tickets", h.TicketsList)
		admin.GET("/tickets/:id", h.TicketDetails)
		admin.POST("/tickets/:id/status", h.TicketStatus)
		admin.POST("/tickets/:id/timecost", h.TicketTimeCost)
		admin.POST("/tickets/:id/recalc", h.TicketRecalc)
		admin.POST("/tickets/:id/schedule", h.ScheduleBook)
		admin.GET("/schedule", h.ScheduleList)
		admin.POST("/schedule/:id/move", h.ScheduleMove)
		admin.GET("/blackouts", h.BlackoutsList)
		admin.POST("/blackouts", h.BlackoutAdd)
		admin.DELETE("/blackouts/:id", h.BlackoutDelete)
		admin.GET("/export.csv", h.ExportCSV)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
