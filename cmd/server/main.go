package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"nexdata/internal/config"
	"nexdata/internal/repository/mongodb"
	"nexdata/internal/repository/sheets"
	"nexdata/internal/repository/slot"
	"nexdata/internal/scheduler"
	"nexdata/internal/server/handlers"
	"nexdata/internal/server/router"
	extractionsvc "nexdata/internal/service/extraction"
	"nexdata/internal/service/inventory"
	reportingsvc "nexdata/internal/service/reporting"
	"nexdata/pkg/clients/gemini"
	"nexdata/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Pick the persistence slot backend.
	var slotRepo slot.Repository
	var summaries scheduler.SummaryWriter

	if cfg.MongoEnabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.Storage.SlotName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		slotRepo = mongoRepo
		summaries = mongoRepo
		baseLogger.Info("using mongodb persistence slot", zap.String("slot", cfg.Storage.SlotName))
	} else {
		fileRepo, err := slot.NewFileRepository(cfg.Storage.FilePath, baseLogger.Named("repo.slot"))
		if err != nil {
			baseLogger.Fatal("failed to init file slot", zap.Error(err))
		}
		slotRepo = fileRepo
		baseLogger.Info("using file persistence slot", zap.String("path", cfg.Storage.FilePath))
	}

	store := inventory.NewStore(slotRepo, baseLogger.Named("svc.inventory"))
	if err := store.Load(context.Background()); err != nil {
		baseLogger.Fatal("failed to load record store", zap.Error(err))
	}

	reportingSvc := reportingsvc.NewService(baseLogger.Named("svc.reporting"))

	// Initialize AI client
	var aiClient gemini.Client
	if cfg.AI.GeminiKey != "" {
		aiClient = gemini.NewClientWithConfig(gemini.Config{APIKey: cfg.AI.GeminiKey, Model: cfg.AI.Model})
		baseLogger.Info("gemini extraction client enabled", zap.String("model", cfg.AI.Model))
	} else {
		baseLogger.Warn("gemini api key missing, ai extraction disabled")
	}
	extractionSvc := extractionsvc.NewService(aiClient, store, baseLogger.Named("svc.extraction"))

	var exporter sheets.Repository
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	}

	recordHandler := handlers.NewRecordHandler(store, baseLogger.Named("handlers.records"))
	dashboardHandler := handlers.NewDashboardHandler(store, reportingSvc, baseLogger.Named("handlers.dashboard"))
	extractHandler := handlers.NewExtractHandler(extractionSvc, baseLogger.Named("handlers.extract"))
	engine := router.New(recordHandler, dashboardHandler, extractHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, store, reportingSvc, summaries, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
