package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mnakahara/trade-journal-backend/internal/api"
	"github.com/mnakahara/trade-journal-backend/internal/config"
	"github.com/mnakahara/trade-journal-backend/internal/database"
	"github.com/mnakahara/trade-journal-backend/internal/marketdata"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Open database connection and bring the schema up to date
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories
	recordRepo := repository.NewRecordRepository(db)
	tagRepo := repository.NewTagRepository(db)
	securityRepo := repository.NewSecurityRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	recordService := service.NewRecordService(recordRepo, tagRepo)
	tagService := service.NewTagService(tagRepo)
	performanceService := service.NewPerformanceService(recordRepo)
	marketdataService := service.NewMarketdataService(
		marketdata.NewClient(cfg.MarketData.BaseURL),
		securityRepo,
		priceRepo,
		settingsRepo,
		cfg.MarketData.EncryptionKey,
	)

	// Nightly securities refresh; skipped silently until a token is stored.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.MarketData.RefreshSchedule, func() {
		if err := marketdataService.RefreshSecurities(); err != nil {
			log.Warn().Err(err).Msg("scheduled securities refresh failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.MarketData.RefreshSchedule).Msg("invalid refresh schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Record:      recordService,
		Tag:         tagService,
		Performance: performanceService,
		Marketdata:  marketdataService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
