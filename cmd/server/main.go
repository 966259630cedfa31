package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thrifthaul/backend/internal/config"
	"github.com/thrifthaul/backend/internal/db"
	"github.com/thrifthaul/backend/internal/distance"
	httpapi "github.com/thrifthaul/backend/internal/http"
	"github.com/thrifthaul/backend/internal/notify"
	"github.com/thrifthaul/backend/internal/service"
	"github.com/thrifthaul/backend/internal/tz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "pickup-backend").Logger()

	zone, err := tz.Load(cfg.OperatingTZ)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", cfg.OperatingTZ).Msg("failed to load operating zone")
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var lookup distance.Lookup
	if cfg.MapsAPIKey == "" {
		lookup = distance.MockLookup{Miles: 12, Minutes: 18}
		logger.Info().Msg("using mock distance lookup")
	} else {
		lookup = &distance.MatrixClient{APIKey: cfg.MapsAPIKey, BaseURL: cfg.MapsBaseURL}
	}

	var notifier notify.Notifier
	if cfg.KafkaBrokers == "" {
		notifier = notify.Outbox{Dir: cfg.OutboxDir}
	} else {
		notifier, err = notify.NewKafka(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect kafka")
		}
	}
	defer notifier.Close()

	scheduler := &service.Scheduler{Store: store, Zone: zone, Logger: logger}
	costing := &service.CostService{
		Store:      store,
		Distance:   lookup,
		Origin:     cfg.WarehouseAddress,
		HourlyRate: cfg.HourlyRate,
		Logger:     logger,
	}

	router := httpapi.Router(cfg, store, scheduler, costing, notifier, zone, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
